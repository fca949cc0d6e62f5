package discover

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func quiet() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func touch(t *testing.T, path string, size int) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(path, make([]byte, size), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRun(t *testing.T) {
	root := t.TempDir()

	touch(t, filepath.Join(root, "b.csv"), 10)
	touch(t, filepath.Join(root, "a.JSON"), 20)
	touch(t, filepath.Join(root, "notes.txt"), 5)
	touch(t, filepath.Join(root, "sub", "c.csv.gz"), 30)
	touch(t, filepath.Join(root, "sub", "deep", "d.json.zst"), 40)

	tests := []struct {
		name  string
		depth int
		want  []string
	}{
		{"Unlimited", 0, []string{"a.JSON", "b.csv", "sub/c.csv.gz", "sub/deep/d.json.zst"}},
		{"Depth one", 1, []string{"a.JSON", "b.csv"}},
		{"Depth two", 2, []string{"a.JSON", "b.csv", "sub/c.csv.gz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Run(context.Background(), Options{Path: root, Depth: tt.depth}, quiet())
			if err != nil {
				t.Fatal(err)
			}

			if len(files) != len(tt.want) {
				t.Fatalf("got %v, wanted %v", files, tt.want)
			}

			for i, f := range files {
				rel, err := filepath.Rel(root, filepath.FromSlash(f.Path))
				if !filepath.IsAbs(filepath.FromSlash(f.Path)) {
					cwd, _ := os.Getwd()
					rel, err = filepath.Rel(root, filepath.Join(cwd, filepath.FromSlash(f.Path)))
				}

				if err != nil {
					t.Fatal(err)
				}

				if filepath.ToSlash(rel) != tt.want[i] {
					t.Errorf("file %d: got %q, wanted %q", i, filepath.ToSlash(rel), tt.want[i])
				}
			}
		})
	}
}

func TestRunSizes(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "x.csv"), 1234)

	files, err := Run(context.Background(), Options{Path: root}, quiet())
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || files[0].Size != 1234 {
		t.Errorf("got %+v", files)
	}
}

func TestRunRejectsFiles(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "x.csv")
	touch(t, file, 1)

	if _, err := Run(context.Background(), Options{Path: file}, quiet()); err == nil {
		t.Error("expected an error for a file root")
	}

	if _, err := Run(context.Background(), Options{Path: filepath.Join(root, "missing")}, quiet()); err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestCalculateDepth(t *testing.T) {
	sep := string(filepath.Separator)

	tests := []struct {
		path, root string
		want       int
	}{
		{"root", "root", 0},
		{"root" + sep + "a.csv", "root", 1},
		{"root" + sep + "sub" + sep + "a.csv", "root", 2},
	}

	for _, tt := range tests {
		if got := calculateDepth(tt.path, tt.root); got != tt.want {
			t.Errorf("calculateDepth(%q, %q) = %d, wanted %d", tt.path, tt.root, got, tt.want)
		}
	}
}

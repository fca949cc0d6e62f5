package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/datapreview/internal/preview"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "datapreview.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadAndApply(t *testing.T) {
	path := writeConfig(t, `
enforce_max_size: true
max_size: 2MiB
resolve_symlinks: false
exit_non_zero_on_error: false
preview_rows: 10
output: json
`)

	file, err := Load(path)
	if err != nil {
		t.Fatalf("expected valid config, got: %v", err)
	}

	opt := preview.DefaultOptions()
	if err := file.Apply(&opt); err != nil {
		t.Fatal(err)
	}

	want := preview.DefaultOptions()
	want.MaxSize = 2 * 1024 * 1024
	want.ResolveSymlinks = false
	want.ExitNonZeroOnError = false
	want.PreviewRows = 10
	want.Output = "json"

	if opt != want {
		t.Errorf("\ngot options %+v, wanted %+v", opt, want)
	}
}

func TestLoadEmptyKeepsDefaults(t *testing.T) {
	file, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}

	opt := preview.LenientOptions()
	if err := file.Apply(&opt); err != nil {
		t.Fatal(err)
	}

	if opt != preview.LenientOptions() {
		t.Errorf("got %+v", opt)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"Unknown key", func(t *testing.T) string { return writeConfig(t, "max_rows: 3\n") }},
		{"Wrong type", func(t *testing.T) string { return writeConfig(t, "preview_rows: many\n") }},
		{"Not YAML", func(t *testing.T) string { return writeConfig(t, "::: [\n") }},
		{"File Not Found", func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yaml") }},
		{"No path", func(*testing.T) string { return "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.path(t)); err == nil {
				t.Fatalf("expected an error, did not receive one")
			}
		})
	}
}

func TestApplyInvalidSize(t *testing.T) {
	file, err := Load(writeConfig(t, "max_size: huge\n"))
	if err != nil {
		t.Fatal(err)
	}

	opt := preview.DefaultOptions()
	if err := file.Apply(&opt); err == nil {
		t.Fatal("expected an error for an invalid max_size")
	}
}

func TestValidate(t *testing.T) {
	mutate := func(f func(*preview.Options)) preview.Options {
		opt := preview.DefaultOptions()
		f(&opt)

		return opt
	}

	tests := []struct {
		name    string
		opt     preview.Options
		wantErr bool
	}{
		{"Defaults", preview.DefaultOptions(), false},
		{"Lenient", preview.LenientOptions(), false},
		{"Bad output", mutate(func(o *preview.Options) { o.Output = "xml" }), true},
		{"Bad color", mutate(func(o *preview.Options) { o.Color = "sometimes" }), true},
		{"Negative rows", mutate(func(o *preview.Options) { o.PreviewRows = -1 }), true},
		{"Negative samples", mutate(func(o *preview.Options) { o.SampleValues = -1 }), true},
		{"Zero ceiling", mutate(func(o *preview.Options) { o.MaxSize = 0 }), true},
		{"Zero ceiling unenforced", mutate(func(o *preview.Options) { o.MaxSize = 0; o.EnforceMaxSize = false }), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.opt); (err != nil) != tt.wantErr {
				t.Errorf("got error %v, wanted error: %v", err, tt.wantErr)
			}
		})
	}
}

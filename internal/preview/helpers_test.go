package preview

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates name with content inside a fresh temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

// load validates and parses path with the default options.
func load(t *testing.T, path string) *Table {
	t.Helper()

	src, err := Validate(path, DefaultOptions())
	if err != nil {
		t.Fatalf("validate %s: %v", path, err)
	}

	table, err := Parse(src, DefaultOptions())
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}

	return table
}

func columnStrings(t *testing.T, table *Table, name string) []string {
	t.Helper()

	for _, c := range table.Columns() {
		if c.Name != name {
			continue
		}

		out := make([]string, len(c.Values))
		for i, v := range c.Values {
			out[i] = v.String()
		}

		return out
	}

	t.Fatalf("column %q not found in %v", name, table.Names())

	return nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

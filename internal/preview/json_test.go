package preview

import (
	"errors"
	"math"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseJSONShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		rows    int
		columns []string
	}{
		{"Root key unwrapping", `{"items": [{"a": 1}, {"a": 2}]}`, 2, []string{"a"}},
		{"Multi-key object", `{"a": 1, "b": 2}`, 1, []string{"a", "b"}},
		{"Single key object", `{"meta": {"x": 1, "y": {"z": true}}}`, 1, []string{"meta.x", "meta.y.z"}},
		{"Top-level list", `[{"a": 1, "b": {"c": "x"}}, {"b": {"c": "y"}, "d": null}]`, 2, []string{"a", "b.c", "d"}},
		{"Empty list", `[]`, 0, []string{}},
		{"Empty object", `{}`, 1, []string{}},
		{"Scalar", `42`, 1, []string{ScalarColumn}},
		{"List of scalars", `[1, "two", null]`, 3, []string{ScalarColumn}},
		{"Single key list of scalars", `{"ids": [1, 2, 3]}`, 3, []string{ScalarColumn}},
		{"Empty nested object", `[{"a": 1, "b": {}}]`, 1, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := load(t, writeFile(t, "doc.json", tt.content))

			if table.Rows() != tt.rows {
				t.Errorf("got %d rows, wanted %d", table.Rows(), tt.rows)
			}

			if !equal(table.Names(), tt.columns) {
				t.Errorf("got columns %v, wanted %v", table.Names(), tt.columns)
			}

			for _, c := range table.Columns() {
				if len(c.Values) != table.Rows() {
					t.Errorf("column %s has %d values for %d rows", c.Name, len(c.Values), table.Rows())
				}
			}
		})
	}
}

func TestParseJSONRootKeyValues(t *testing.T) {
	table := load(t, writeFile(t, "items.json", `{"items": [{"a": 1}, {"a": 2}]}`))

	if got := columnStrings(t, table, "a"); !equal(got, []string{"1", "2"}) {
		t.Errorf("got %v, wanted [1 2]", got)
	}

	if typ := table.Columns()[0].Type; typ != TypeInt64 {
		t.Errorf("got type %s, wanted %s", typ, TypeInt64)
	}
}

func TestParseJSONKeepsKeyOrder(t *testing.T) {
	table := load(t, writeFile(t, "order.json", `[{"zeta": 1, "alpha": 2, "mid": {"b": 1, "a": 2}}]`))

	want := []string{"zeta", "alpha", "mid.b", "mid.a"}
	if !equal(table.Names(), want) {
		t.Errorf("got %v, wanted %v", table.Names(), want)
	}
}

func TestParseJSONMissingFieldsAreNull(t *testing.T) {
	table := load(t, writeFile(t, "sparse.json", `[{"a": 1}, {"b": "x"}, {"a": 3, "b": "y"}]`))

	if got := columnStrings(t, table, "a"); !equal(got, []string{"1.0", "NaN", "3.0"}) {
		t.Errorf("column a: got %v", got)
	}

	if got := columnStrings(t, table, "b"); !equal(got, []string{"NaN", "x", "y"}) {
		t.Errorf("column b: got %v", got)
	}

	types := map[string]string{}
	for _, c := range table.Columns() {
		types[c.Name] = c.Type
	}

	if types["a"] != TypeFloat64 || types["b"] != TypeObject {
		t.Errorf("got types %v", types)
	}
}

func TestParseJSONNestedArrays(t *testing.T) {
	table := load(t, writeFile(t, "nested.json", `[{"tags": ["x", "y"], "pts": [{"k": 1}], "s": "a\"b"}]`))

	if got := columnStrings(t, table, "tags"); !equal(got, []string{`["x", "y"]`}) {
		t.Errorf("tags: got %v", got)
	}

	if got := columnStrings(t, table, "pts"); !equal(got, []string{`[{"k": 1}]`}) {
		t.Errorf("pts: got %v", got)
	}

	if got := columnStrings(t, table, "s"); !equal(got, []string{`a"b`}) {
		t.Errorf("s: got %v", got)
	}

	if kind := table.Columns()[0].Values[0].Kind(); kind != Nested {
		t.Errorf("got kind %s, wanted nested", kind)
	}
}

func TestParseJSONDuplicateKeysKeepLastValue(t *testing.T) {
	table := load(t, writeFile(t, "dupe.json", `{"a": 1, "b": 2, "a": 3}`))

	if !equal(table.Names(), []string{"a", "b"}) {
		t.Fatalf("got %v", table.Names())
	}

	if got := columnStrings(t, table, "a"); !equal(got, []string{"3"}) {
		t.Errorf("got %v, wanted [3]", got)
	}
}

func TestParseJSONNumberOutOfRange(t *testing.T) {
	table := load(t, writeFile(t, "huge.json", `[{"a": 1e400, "b": 1}, {"a": -1e400, "b": 2}]`))

	if got := columnStrings(t, table, "a"); !equal(got, []string{"inf", "-inf"}) {
		t.Errorf("column a: got %v", got)
	}

	a := table.Columns()[0]
	if a.Type != TypeFloat64 || !math.IsInf(a.Values[0].Float(), 1) || !math.IsInf(a.Values[1].Float(), -1) {
		t.Errorf("unexpected column %+v", a)
	}

	out, err := json.Marshal(a.Values[0])
	if err != nil {
		t.Fatal(err)
	}

	if string(out) != `"inf"` {
		t.Errorf("got %s, wanted \"inf\"", out)
	}
}

func TestParseJSONFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Empty", ""},
		{"Truncated", `{"a": [1, 2`},
		{"Trailing comma", `[1, 2,]`},
		{"Bare word", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Validate(writeFile(t, "bad.json", tt.content), DefaultOptions())
			if err != nil {
				t.Fatal(err)
			}

			if _, err := Parse(src, DefaultOptions()); !errors.Is(err, ErrParseFailure) {
				t.Fatalf("expected ParseFailure, got %v", err)
			}
		})
	}
}

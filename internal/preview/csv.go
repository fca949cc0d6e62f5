package preview

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// missingTokens are the cell texts read as missing values.
//
//nolint:gochecknoglobals // Lookup table
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// errNoColumns is returned for input without a header row.
var errNoColumns = errors.New("no columns to parse from file")

// parseCSV reads delimited text with a header row. Columns are typed as a
// whole: a column becomes numeric or boolean only when every non-missing
// cell parses as such, otherwise all of its cells stay text.
//
// Records shorter than the header are padded with missing cells and quotes
// inside unquoted fields are kept as text. A record longer than the header
// is an error.
func parseCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errNoColumns
	}

	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	names := dedupe(header)
	raw := make([][]string, len(names))

	rows := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading CSV record: %w", err)
		}

		if len(record) > len(names) {
			line, _ := reader.FieldPos(0)

			return nil, fmt.Errorf("reading CSV record: line %d: expected %d fields, saw %d", line, len(names), len(record))
		}

		for i := range names {
			field := ""
			if i < len(record) {
				field = record[i]
			}

			raw[i] = append(raw[i], field)
		}

		rows++
	}

	columns := make([]Column, len(names))
	for i, name := range names {
		columns[i] = newColumn(name, typeColumn(raw[i]))
	}

	return &Table{columns: columns, rows: rows}, nil
}

// dedupe makes header names unique by suffixing repeats with ".1", ".2", ...
func dedupe(header []string) []string {
	seen := make(map[string]int, len(header))
	names := make([]string, len(header))

	for i, name := range header {
		candidate := name

		for {
			if _, taken := seen[candidate]; !taken {
				break
			}

			seen[name]++
			candidate = name + "." + strconv.Itoa(seen[name])
		}

		seen[candidate] = 0
		names[i] = candidate
	}

	return names
}

// typeColumn converts the cells of one column, choosing the narrowest kind
// that every non-missing cell satisfies.
func typeColumn(cells []string) []Value {
	values := make([]Value, len(cells))

	numeric, boolean := true, true

	for _, c := range cells {
		if isMissing(c) {
			continue
		}

		if _, err := NumberValue(strings.TrimSpace(c)); err != nil {
			numeric = false
		}

		if _, ok := parseBool(c); !ok {
			boolean = false
		}
	}

	for i, c := range cells {
		switch {
		case isMissing(c):
			values[i] = NullValue()
		case numeric:
			v, _ := NumberValue(strings.TrimSpace(c)) //nolint:errcheck // Checked above
			values[i] = v
		case boolean:
			b, _ := parseBool(c)
			values[i] = BoolValue(b)
		default:
			values[i] = StringValue(c)
		}
	}

	return values
}

func isMissing(cell string) bool {
	_, ok := missingTokens[cell]

	return ok
}

// parseBool accepts true and false in any letter case.
func parseBool(cell string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

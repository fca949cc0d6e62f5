package preview

import (
	"fmt"
	"strings"
)

const (
	// SampleWidth is the longest sample string shown before truncation.
	SampleWidth = 50
	// sampleEllipsis marks a truncated sample string.
	sampleEllipsis = "..."
)

// FileInfo describes the previewed file.
type FileInfo struct {
	// Path is the resolved file path.
	Path string `json:"path"`
	// Type is the detected format label ("CSV" or "JSON").
	Type Format `json:"type"`
	// Compression is the detected compression, empty for plain files.
	Compression Compression `json:"compression,omitempty"`
	// Size is the human-readable file size.
	Size string `json:"size"`
	// Bytes is the file size in bytes.
	Bytes int64 `json:"bytes"`
	// Rows is the number of table rows.
	Rows int `json:"rows"`
	// Columns is the number of table columns.
	Columns int `json:"columns"`
}

// ColumnSummary holds the statistics of one column.
type ColumnSummary struct {
	// Name is the column name.
	Name string `json:"name"`
	// Type is the inferred type label.
	Type string `json:"type"`
	// NonNull is the number of non-null values.
	NonNull int `json:"non_null"`
	// Total is the number of rows.
	Total int `json:"total"`
	// Percent is NonNull as a percentage of Total, 0 for an empty table.
	Percent float64 `json:"percent"`
	// Samples are the first non-null values, joined and truncated.
	Samples string `json:"samples"`
}

// Count renders the non-null statistic as "count/total (pct%)".
func (c ColumnSummary) Count() string {
	return fmt.Sprintf("%d/%d (%.1f%%)", c.NonNull, c.Total, c.Percent)
}

// Summary is everything shown for one file.
type Summary struct {
	// File describes the file.
	File FileInfo `json:"file"`
	// Columns holds one entry per table column, in table order.
	Columns []ColumnSummary `json:"columns"`
	// Header lists the column names of the preview.
	Header []string `json:"header"`
	// Preview holds the first rows of the table.
	Preview [][]Value `json:"preview"`
}

// Summarize computes file information, column statistics and the preview rows.
func Summarize(src *Source, table *Table, opt Options) *Summary {
	summary := &Summary{
		File: FileInfo{
			Path:        src.Path,
			Type:        src.Format,
			Compression: src.Compression,
			Size:        FormatSize(src.Size),
			Bytes:       src.Size,
			Rows:        table.Rows(),
			Columns:     len(table.Columns()),
		},
		Columns: make([]ColumnSummary, 0, len(table.Columns())),
		Header:  table.Names(),
		Preview: table.Head(opt.PreviewRows),
	}

	for _, column := range table.Columns() {
		summary.Columns = append(summary.Columns, summarizeColumn(column, table.Rows(), opt.SampleValues))
	}

	return summary
}

func summarizeColumn(column Column, total, samples int) ColumnSummary {
	nonNull := column.NonNull()

	return ColumnSummary{
		Name:    column.Name,
		Type:    column.Type,
		NonNull: nonNull,
		Total:   total,
		Percent: Percent(nonNull, total),
		Samples: SampleString(column.Values, samples),
	}
}

// Percent returns part as a percentage of total, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(part) / float64(total) * 100 //nolint:mnd // Percentage
}

// SampleString joins the first n non-null values in row order with ", ".
// A result longer than SampleWidth characters is cut to SampleWidth-3
// characters followed by "...".
func SampleString(values []Value, n int) string {
	samples := make([]string, 0, n)

	for _, v := range values {
		if len(samples) == n {
			break
		}

		if !v.IsNull() {
			samples = append(samples, v.String())
		}
	}

	return Truncate(strings.Join(samples, ", "), SampleWidth)
}

// Truncate shortens s to width characters, ending in "..." when cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}

	return string(runes[:width-len(sampleEllipsis)]) + sampleEllipsis
}

// FormatSize renders a byte count with binary steps and two decimals,
// e.g. "500.00 B" or "2.00 KB".
func FormatSize(size int64) string {
	units := []string{"B", "KB", "MB", "GB", "TB"}

	value := float64(size)

	for _, unit := range units[:len(units)-1] {
		if value < 1024 { //nolint:mnd // Binary step
			return fmt.Sprintf("%.2f %s", value, unit)
		}

		value /= 1024
	}

	return fmt.Sprintf("%.2f %s", value, units[len(units)-1])
}

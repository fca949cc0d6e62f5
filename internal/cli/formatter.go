package cli

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"

	"github.com/idelchi/datapreview/internal/discover"
	"github.com/idelchi/datapreview/internal/preview"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// PrintJSON outputs the summary in JSON format.
func PrintJSON(summary *preview.Summary, writer io.Writer) error {
	return printJSON(summary, writer)
}

// PrintFilesJSON outputs discovered files in JSON format.
func PrintFilesJSON(files []discover.File, writer io.Writer) error {
	if files == nil {
		files = []discover.File{}
	}

	return printJSON(files, writer)
}

func printJSON(v any, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintFiles outputs discovered files with their sizes.
func PrintFiles(files []discover.File, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\n", f.Path, humanize.IBytes(uint64(f.Size))) //nolint:gosec // Sizes are never negative
	}

	return w.Flush()
}

// PrintTable outputs the summary as three sections: file information,
// column summary and data preview.
func PrintTable(summary *preview.Summary, writer io.Writer, s styles) error {
	printFileInfo(summary.File, writer, s)
	printColumns(summary.Columns, writer, s)

	fmt.Fprintln(writer)
	s.heading.Fprintf(writer, "Data Preview (first %d rows):\n", len(summary.Preview))

	return printPreview(summary.Header, summary.Preview, writer)
}

func printFileInfo(info preview.FileInfo, writer io.Writer, s styles) {
	rows := [][]string{
		{"File:", info.Path},
		{"Type:", string(info.Type)},
	}

	if info.Compression != preview.CompressionNone {
		rows = append(rows, []string{"Compression:", string(info.Compression)})
	}

	rows = append(rows,
		[]string{"Size:", info.Size},
		[]string{"Rows:", strconv.Itoa(info.Rows)},
		[]string{"Columns:", strconv.Itoa(info.Columns)},
	)

	lines := grid(rows, map[int]bool{0: true}, func(_, col int, cell string) string {
		if col == 0 {
			return s.key.Sprint(cell)
		}

		return s.value.Sprint(cell)
	})

	panel(writer, "File Information", lines, s.infoFrame)
}

func printColumns(columns []preview.ColumnSummary, writer io.Writer, s styles) {
	rows := [][]string{{"Column Name", "Data Type", "Non-Null Count", "Sample Values"}}

	for _, c := range columns {
		rows = append(rows, []string{flat(c.Name), c.Type, c.Count(), flat(c.Samples)})
	}

	lines := grid(rows, nil, func(row, _ int, cell string) string {
		if row == 0 {
			return s.header.Sprint(cell)
		}

		return cell
	})

	// Header, separator, then one line per column.
	out := make([]line, 0, len(lines)+1)
	out = append(out, lines[0], rule(lines))
	out = append(out, lines[1:]...)

	panel(writer, "Column Summary", out, s.colsFrame)
}

// printPreview renders rows as fixed-width text with a leading row index
// and right-aligned cells.
func printPreview(header []string, rows [][]preview.Value, writer io.Writer) error {
	if len(header) == 0 {
		fmt.Fprintf(writer, "Empty table\nColumns: []\nRows: %d\n", len(rows))

		return nil
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', tabwriter.AlignRight)

	fmt.Fprint(w, "\t")

	for _, name := range header {
		fmt.Fprintf(w, "%s\t", flat(name))
	}

	fmt.Fprintln(w)

	for i, row := range rows {
		fmt.Fprintf(w, "%d\t", i)

		for _, v := range row {
			fmt.Fprintf(w, "%s\t", flat(v.String()))
		}

		fmt.Fprintln(w)
	}

	return w.Flush()
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// styles holds the colors used by the table output.
type styles struct {
	key       *color.Color
	value     *color.Color
	header    *color.Color
	heading   *color.Color
	infoFrame *color.Color
	colsFrame *color.Color
}

func newStyles(enabled bool) styles {
	s := styles{
		key:       color.New(color.FgCyan),
		value:     color.New(color.FgGreen),
		header:    color.New(color.FgMagenta, color.Bold),
		heading:   color.New(color.FgCyan, color.Bold),
		infoFrame: color.New(color.FgBlue),
		colsFrame: color.New(color.FgGreen),
	}

	for _, c := range []*color.Color{s.key, s.value, s.header, s.heading, s.infoFrame, s.colsFrame} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

// line is one line of panel content. Widths are computed on plain text so
// that escape sequences in styled do not disturb alignment.
type line struct {
	plain  string
	styled string
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

// pad right-pads or left-pads s with spaces to n characters.
func pad(s string, n int, right bool) string {
	gap := n - width(s)
	if gap <= 0 {
		return s
	}

	if right {
		return strings.Repeat(" ", gap) + s
	}

	return s + strings.Repeat(" ", gap)
}

// panel draws a rounded box with a title around lines.
func panel(w io.Writer, title string, lines []line, frame *color.Color) {
	inner := width(title) + 4 //nolint:mnd // "─ " + title + " " + "─"

	for _, l := range lines {
		inner = max(inner, width(l.plain)+2) //nolint:mnd // One space each side
	}

	fmt.Fprintln(w,
		frame.Sprint("╭─ ")+title+frame.Sprint(" "+strings.Repeat("─", inner-width(title)-3)+"╮"))

	for _, l := range lines {
		fmt.Fprintln(w, frame.Sprint("│")+" "+l.styled+strings.Repeat(" ", inner-2-width(l.plain))+" "+frame.Sprint("│"))
	}

	fmt.Fprintln(w, frame.Sprint("╰"+strings.Repeat("─", inner)+"╯"))
}

// grid lays out rows of cells in aligned columns separated by TabSpacing
// spaces. Columns listed in rightAligned are padded on the left. The style
// function, if set, colors a cell by its row and column.
func grid(rows [][]string, rightAligned map[int]bool, style func(row, col int, s string) string) []line {
	widths := map[int]int{}

	for _, row := range rows {
		for j, c := range row {
			widths[j] = max(widths[j], width(c))
		}
	}

	lines := make([]line, 0, len(rows))
	gap := strings.Repeat(" ", TabSpacing)

	for i, row := range rows {
		plain := make([]string, len(row))
		styled := make([]string, len(row))

		for j, c := range row {
			padded := c
			if j < len(row)-1 || rightAligned[j] {
				padded = pad(c, widths[j], rightAligned[j])
			}

			plain[j] = padded
			styled[j] = padded

			if style != nil {
				styled[j] = style(i, j, padded)
			}
		}

		lines = append(lines, line{
			plain:  strings.Join(plain, gap),
			styled: strings.Join(styled, gap),
		})
	}

	return lines
}

// rule returns a horizontal separator as wide as the widest line.
func rule(lines []line) line {
	n := 0
	for _, l := range lines {
		n = max(n, width(l.plain))
	}

	s := strings.Repeat("─", n)

	return line{plain: s, styled: s}
}

// flat makes a cell printable on a single line.
func flat(s string) string {
	return strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`, "\t", `\t`).Replace(s)
}

package rows

import (
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	// ColumnGap separates right-aligned fields.
	ColumnGap = 2
	// BillableMarker flags an entry's billable state; its colour carries the value.
	BillableMarker = "$"
	ellipsis       = "…"
)

// PackRight places parts right-aligned against width, last part rightmost,
// separated by ColumnGap. It returns each part's start column in argument
// order and the total reserved width. Columns may be negative when the
// terminal is too narrow; Grid clips them.
func PackRight(width int, parts ...string) ([]int, int) {
	cols := make([]int, len(parts))
	reserved := 0
	edge := width
	for i := len(parts) - 1; i >= 0; i-- {
		w := runewidth.StringWidth(parts[i])
		edge -= w
		cols[i] = edge
		reserved += w
		if i > 0 {
			edge -= ColumnGap
			reserved += ColumnGap
		}
	}
	return cols, reserved
}

// Truncate shortens s to at most limit display columns, ending in an ellipsis
// when something was cut. A limit below 1 yields "".
func Truncate(s string, limit int) string {
	if limit < 1 {
		return ""
	}
	if runewidth.StringWidth(s) <= limit {
		return s
	}
	return runewidth.Truncate(s, limit, ellipsis)
}

// Cell is one terminal column of a laid-out row. Wide runes occupy their
// cell plus a following continuation cell with Rune 0.
type Cell struct {
	Rune  rune
	Style Style
}

// Grid renders a row into exactly width cells. Segments are drawn in column
// order and anything outside [0, width) is dropped.
func Grid(row DisplayRow, width int) []Cell {
	if width <= 0 {
		return nil
	}
	cells := make([]Cell, width)
	for i := range cells {
		cells[i] = Cell{Rune: ' '}
	}

	segments := row.Cells(width)
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Col < segments[j].Col })

	for _, seg := range segments {
		col := seg.Col
		for _, r := range seg.Text {
			w := runewidth.RuneWidth(r)
			if col >= 0 && col+w <= width {
				cells[col] = Cell{Rune: r, Style: seg.Style}
				if w == 2 {
					cells[col+1] = Cell{Rune: 0, Style: seg.Style}
				}
			}
			col += w
		}
	}
	return cells
}

// PlainLine renders a row as unstyled text with trailing blanks trimmed.
func PlainLine(row DisplayRow, width int) string {
	var b strings.Builder
	for _, c := range Grid(row, width) {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

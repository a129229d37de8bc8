// Package viewport tracks which slice of the row table is on screen and
// where the cursor sits.
//
// The last screen line belongs to the footer, so rows are drawn on lines
// 0..Height-2. Every transition returns true when the scroll offset moved
// and the whole table needs redrawing.
package viewport

import (
	"tempus/internal/domain"
	"tempus/internal/rows"
)

// Viewport is the list screen's scroll and cursor state
type Viewport struct {
	ScrollOffset int
	CursorRow    int
	CursorCol    int
	Width        int
	Height       int
}

// New creates a viewport for a terminal of the given size
func New(width, height int) *Viewport {
	return &Viewport{Width: width, Height: height}
}

// UsableRows is the number of table rows that fit above the footer
func (v *Viewport) UsableRows() int {
	if v.Height-1 < 1 {
		return 1
	}
	return v.Height - 1
}

// Index is the table row under the cursor
func (v *Viewport) Index() int {
	return v.ScrollOffset + v.CursorRow
}

// Visible returns the slice of table currently on screen
func (v *Viewport) Visible(table []rows.DisplayRow) []rows.DisplayRow {
	if v.ScrollOffset >= len(table) {
		return nil
	}
	end := v.ScrollOffset + v.UsableRows()
	if end > len(table) {
		end = len(table)
	}
	return table[v.ScrollOffset:end]
}

func (v *Viewport) bottom() int {
	return v.UsableRows() - 1
}

// MoveUp moves the cursor one row up, scrolling at the top edge
func (v *Viewport) MoveUp(table []rows.DisplayRow) bool {
	if len(table) == 0 || v.Index() <= 0 {
		return false
	}
	if v.CursorRow > 0 {
		v.CursorRow--
		return false
	}
	v.ScrollOffset--
	return true
}

// MoveDown moves the cursor one row down, scrolling at the bottom edge
func (v *Viewport) MoveDown(table []rows.DisplayRow) bool {
	if len(table) == 0 || v.Index() >= len(table)-1 {
		return false
	}
	if v.CursorRow < v.bottom() {
		v.CursorRow++
		return false
	}
	v.CursorRow = v.bottom()
	v.ScrollOffset++
	return true
}

// MoveLeft moves the cursor one column left
func (v *Viewport) MoveLeft() bool {
	if v.CursorCol > 0 {
		v.CursorCol--
	}
	return false
}

// MoveRight moves the cursor one column right, stopping at the terminal edge
func (v *Viewport) MoveRight() bool {
	if v.CursorCol < v.Width-1 {
		v.CursorCol++
	}
	return false
}

// JumpToGroup moves to the next (direction > 0) or previous group header.
// Without one in that direction nothing changes. The target is always on
// screen afterwards.
func (v *Viewport) JumpToGroup(table []rows.DisplayRow, direction int) bool {
	if len(table) == 0 || direction == 0 {
		return false
	}
	step := 1
	if direction < 0 {
		step = -1
	}

	target := -1
	for i := v.Index() + step; i >= 0 && i < len(table); i += step {
		if table[i].IsGroup() {
			target = i
			break
		}
	}
	if target < 0 {
		return false
	}

	switch {
	case target < v.ScrollOffset:
		v.ScrollOffset = target
		v.CursorRow = 0
		return true
	case target > v.ScrollOffset+v.bottom():
		v.ScrollOffset = target - v.bottom()
		v.CursorRow = v.bottom()
		return true
	default:
		v.CursorRow = target - v.ScrollOffset
		return false
	}
}

// Resize records a new terminal size and restores the invariants against table
func (v *Viewport) Resize(width, height int, table []rows.DisplayRow) bool {
	v.Width = width
	v.Height = height
	return v.Refresh(table)
}

// Refresh restores the invariants after the table was rebuilt or the screen
// resized. The cursor keeps its screen row unless that row no longer exists.
func (v *Viewport) Refresh(table []rows.DisplayRow) bool {
	before := v.ScrollOffset

	if v.CursorCol > v.Width-1 {
		v.CursorCol = v.Width - 1
	}
	if v.CursorCol < 0 {
		v.CursorCol = 0
	}

	if len(table) == 0 {
		v.ScrollOffset = 0
		v.CursorRow = 0
		return before != 0
	}

	if v.CursorRow > v.bottom() {
		v.CursorRow = v.bottom()
	}
	if v.CursorRow < 0 {
		v.CursorRow = 0
	}
	if v.ScrollOffset < 0 {
		v.ScrollOffset = 0
	}
	if v.Index() > len(table)-1 {
		v.ScrollOffset = len(table) - 1 - v.CursorRow
		if v.ScrollOffset < 0 {
			v.ScrollOffset = 0
			v.CursorRow = len(table) - 1
		}
	}

	return v.ScrollOffset != before
}

// SelectRow returns the entry shown on screenRow, if that row is an entry
func (v *Viewport) SelectRow(table []rows.DisplayRow, screenRow int) (domain.TimeEntry, bool) {
	i := screenRow + v.ScrollOffset
	if screenRow < 0 || i < 0 || i >= len(table) {
		return domain.TimeEntry{}, false
	}
	entryRow, ok := table[i].(*rows.EntryRow)
	if !ok {
		return domain.TimeEntry{}, false
	}
	return entryRow.Entry, true
}

// Selected returns the entry under the cursor, if any
func (v *Viewport) Selected(table []rows.DisplayRow) (domain.TimeEntry, bool) {
	return v.SelectRow(table, v.CursorRow)
}

// Package rows flattens aggregated days into the indexed table the list view
// draws and navigates.
package rows

import (
	"time"

	"tempus/internal/domain"
)

// Style tags a segment so the screen can colour it.
type Style int

const (
	StylePlain Style = iota
	StyleDescription
	StyleDay
	StyleGroup
	StyleBillable
	StyleNonBillable
)

// Segment is a run of text starting at a screen column.
type Segment struct {
	Col   int
	Text  string
	Style Style
}

// DisplayRow is one line of the list. The concrete kinds are
// *DaySeparator, *GroupHeader and *EntryRow.
type DisplayRow interface {
	// Index is the row's position in the table, dense from 0.
	Index() int
	// IsGroup reports whether group-jump navigation stops on this row.
	IsGroup() bool
	// Cells lays the row out for a terminal of the given width.
	Cells(width int) []Segment
}

// DaySeparator opens a calendar day and shows the day's total.
type DaySeparator struct {
	index int
	Date  time.Time
	Label string
	Total time.Duration
}

func (r *DaySeparator) Index() int    { return r.index }
func (r *DaySeparator) IsGroup() bool { return false }

func (r *DaySeparator) Cells(width int) []Segment {
	return labelAndTotal(width, r.Label, StyleDay, domain.FormatHHMMSS(r.Total))
}

// GroupHeader opens a project or project:task group.
type GroupHeader struct {
	index   int
	Key     string
	Elapsed time.Duration
}

func (r *GroupHeader) Index() int    { return r.index }
func (r *GroupHeader) IsGroup() bool { return true }

func (r *GroupHeader) Cells(width int) []Segment {
	return labelAndTotal(width, r.Key, StyleGroup, domain.FormatHHMMSS(r.Elapsed))
}

// EntryRow shows one stored entry and carries it for resumption.
type EntryRow struct {
	index             int
	Entry             domain.TimeEntry
	TimeRange         string
	ElapsedText       string
	descriptionColumn int
}

func (r *EntryRow) Index() int    { return r.index }
func (r *EntryRow) IsGroup() bool { return false }

func (r *EntryRow) Cells(width int) []Segment {
	markerStyle := StyleNonBillable
	if r.Entry.Billable {
		markerStyle = StyleBillable
	}

	cols, reserved := PackRight(width, BillableMarker, r.TimeRange, r.ElapsedText)
	segments := make([]Segment, 0, 4)

	limit := width - reserved - r.descriptionColumn - 1
	if desc := Truncate(r.Entry.Description, limit); desc != "" {
		segments = append(segments, Segment{Col: r.descriptionColumn, Text: desc, Style: StyleDescription})
	}

	return append(segments,
		Segment{Col: cols[0], Text: BillableMarker, Style: markerStyle},
		Segment{Col: cols[1], Text: r.TimeRange, Style: StylePlain},
		Segment{Col: cols[2], Text: r.ElapsedText, Style: StylePlain},
	)
}

func labelAndTotal(width int, label string, labelStyle Style, total string) []Segment {
	cols, _ := PackRight(width, total)
	segments := make([]Segment, 0, 2)
	if text := Truncate(label, cols[0]-1); text != "" {
		segments = append(segments, Segment{Col: 0, Text: text, Style: labelStyle})
	}
	return append(segments, Segment{Col: cols[0], Text: total, Style: StylePlain})
}

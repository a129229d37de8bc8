package rows

import (
	"testing"
	"time"

	"tempus/internal/domain"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackRight(t *testing.T) {
	tests := []struct {
		name             string
		width            int
		parts            []string
		expectedCols     []int
		expectedReserved int
	}{
		{"should pack a single part flush right", 20, []string{"00:30:00"}, []int{12}, 8},
		{"should separate parts by two columns", 40, []string{"$", "09:00 - 09:30", "00:30:00"}, []int{14, 17, 32}, 26},
		{"should go negative when too narrow", 10, []string{"$", "09:00 - 09:30", "00:30:00"}, []int{-16, -13, 2}, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, reserved := PackRight(tt.width, tt.parts...)
			assert.Equal(t, tt.expectedCols, cols)
			assert.Equal(t, tt.expectedReserved, reserved)
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"should keep short text", "Design", 10, "Design"},
		{"should keep text of exact width", "Design", 6, "Design"},
		{"should cut with an ellipsis", "Wireframes for app", 11, "Wireframes…"},
		{"should drop everything at zero", "Design", 0, ""},
		{"should drop everything below zero", "Design", -3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.limit))
		})
	}
}

func TestEntryRow_Layout(t *testing.T) {
	row := &EntryRow{
		Entry: domain.TimeEntry{
			ProjectName: "Acme",
			Description: "Wireframes for app",
			Billable:    true,
			StartTime:   time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC),
			Duration:    30 * time.Minute,
		},
		TimeRange:         "09:00 - 09:30",
		ElapsedText:       "00:30:00",
		descriptionColumn: 2,
	}

	segments := row.Cells(40)
	require.Len(t, segments, 4)
	assert.Equal(t, Segment{Col: 2, Text: "Wireframes…", Style: StyleDescription}, segments[0])
	assert.Equal(t, Segment{Col: 14, Text: "$", Style: StyleBillable}, segments[1])
	assert.Equal(t, Segment{Col: 17, Text: "09:00 - 09:30", Style: StylePlain}, segments[2])
	assert.Equal(t, Segment{Col: 32, Text: "00:30:00", Style: StylePlain}, segments[3])

	assert.Equal(t, "  Wireframes… $  09:00 - 09:30  00:30:00", PlainLine(row, 40))
}

func TestEntryRow_DescriptionNeverOverlapsReservedArea(t *testing.T) {
	row := &EntryRow{
		Entry:             domain.TimeEntry{Description: "a very long description that keeps going"},
		TimeRange:         "09:00 - 09:30",
		ElapsedText:       "00:30:00",
		descriptionColumn: 2,
	}

	shown := 0
	for width := 0; width <= 80; width++ {
		segments := row.Cells(width)
		_, reserved := PackRight(width, BillableMarker, row.TimeRange, row.ElapsedText)
		for _, seg := range segments {
			if seg.Style != StyleDescription {
				continue
			}
			shown++
			assert.Equal(t, 2, seg.Col)
			assert.Less(t, seg.Col+runewidth.StringWidth(seg.Text), width-reserved, "width %d", width)
		}
	}
	assert.Greater(t, shown, 0, "should show the description on wide rows")
}

func TestEntryRow_NarrowWidthsHideDescription(t *testing.T) {
	row := &EntryRow{
		Entry:             domain.TimeEntry{Description: "Wireframes"},
		TimeRange:         "09:00 - 09:30",
		ElapsedText:       "00:30:00",
		descriptionColumn: 2,
	}

	for _, width := range []int{10, 28} {
		for _, seg := range row.Cells(width) {
			assert.NotEqual(t, StyleDescription, seg.Style, "width %d", width)
		}
	}
}

func TestEntryRow_NonBillableMarker(t *testing.T) {
	row := &EntryRow{TimeRange: "09:00 - 09:30", ElapsedText: "00:30:00", descriptionColumn: 2}

	segments := row.Cells(40)
	require.Len(t, segments, 3)
	assert.Equal(t, StyleNonBillable, segments[0].Style)
}

func TestSeparatorAndHeaderLayout(t *testing.T) {
	day := &DaySeparator{Label: "Mon, Mar 11", Total: 45 * time.Minute}
	header := &GroupHeader{Key: "Acme:Design", Elapsed: 20 * time.Minute}

	assert.Equal(t, []Segment{
		{Col: 0, Text: "Mon, Mar 11", Style: StyleDay},
		{Col: 22, Text: "00:45:00", Style: StylePlain},
	}, day.Cells(30))
	assert.Equal(t, []Segment{
		{Col: 0, Text: "Acme:Design", Style: StyleGroup},
		{Col: 22, Text: "00:20:00", Style: StylePlain},
	}, header.Cells(30))

	assert.Equal(t, "Acme:Design  00:20:00", PlainLine(header, 21))
	assert.Equal(t, "Acme:Desi… 00:20:00", PlainLine(header, 19))
}

func TestGrid(t *testing.T) {
	header := &GroupHeader{Key: "日本", Elapsed: time.Second}

	cells := Grid(header, 14)
	require.Len(t, cells, 14)
	assert.Equal(t, Cell{Rune: '日', Style: StyleGroup}, cells[0])
	assert.Equal(t, Cell{Rune: 0, Style: StyleGroup}, cells[1])
	assert.Equal(t, Cell{Rune: '本', Style: StyleGroup}, cells[2])
	assert.Equal(t, Cell{Rune: ' '}, cells[4])
	assert.Equal(t, '0', cells[6].Rune)
	assert.Equal(t, "日本  00:00:01", PlainLine(header, 14))

	assert.Nil(t, Grid(header, 0))
}

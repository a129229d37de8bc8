package rows

import (
	"sort"
	"time"

	"tempus/internal/config"
	"tempus/internal/domain"
)

// ElapsedFunc returns the live day total for the group template belongs to.
type ElapsedFunc func(template domain.TimeEntry, date time.Time) time.Duration

// Builder turns aggregated days into a row table
type Builder struct {
	Location          *time.Location
	DayFormat         string
	ClockLayout       string
	DescriptionColumn int
	// GroupElapsed supplies group header totals. When nil the in-memory
	// group total is used.
	GroupElapsed ElapsedFunc
}

// NewBuilder creates a builder from the display configuration
func NewBuilder(display config.DisplayConfig, loc *time.Location, elapsed ElapsedFunc) *Builder {
	if loc == nil {
		loc = time.Local
	}
	return &Builder{
		Location:          loc,
		DayFormat:         display.DayFormat,
		ClockLayout:       display.ClockFormat,
		DescriptionColumn: display.DescriptionColumn,
		GroupElapsed:      elapsed,
	}
}

// Build emits, per day newest first, a DaySeparator, then per group a
// GroupHeader followed by one EntryRow per entry. Indices are dense from 0.
func (b *Builder) Build(days []*domain.DailyGroup) []DisplayRow {
	ordered := make([]*domain.DailyGroup, len(days))
	copy(ordered, days)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date)
	})

	size := 0
	for _, day := range ordered {
		size += 1 + len(day.Groups) + day.Len()
	}
	table := make([]DisplayRow, 0, size)
	for _, day := range ordered {
		table = append(table, &DaySeparator{
			index: len(table),
			Date:  day.Date,
			Label: day.Date.Format(b.dayFormat()),
			Total: day.Elapsed(),
		})

		for _, group := range day.Groups {
			if len(group.Entries) == 0 {
				continue
			}
			table = append(table, &GroupHeader{
				index:   len(table),
				Key:     group.Key,
				Elapsed: b.groupElapsed(group, day.Date),
			})

			for _, entry := range group.Entries {
				table = append(table, &EntryRow{
					index:             len(table),
					Entry:             entry,
					TimeRange:         domain.FormatTimeRange(entry, b.location(), b.ClockLayout),
					ElapsedText:       domain.FormatHHMMSS(entry.Duration),
					descriptionColumn: b.DescriptionColumn,
				})
			}
		}
	}
	return table
}

func (b *Builder) groupElapsed(group *domain.EntryGroup, date time.Time) time.Duration {
	if b.GroupElapsed == nil {
		return group.Elapsed()
	}
	return b.GroupElapsed(group.Entries[0], date)
}

func (b *Builder) dayFormat() string {
	if b.DayFormat == "" {
		return "Mon, Jan 2"
	}
	return b.DayFormat
}

func (b *Builder) location() *time.Location {
	if b.Location == nil {
		return time.Local
	}
	return b.Location
}

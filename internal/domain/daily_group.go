package domain

import "time"

// EntryGroup holds the entries of one groupKey within a day, newest first.
type EntryGroup struct {
	Key     string
	Entries []TimeEntry
}

// Elapsed sums the durations of the group's entries.
func (g *EntryGroup) Elapsed() time.Duration {
	var total time.Duration
	for _, e := range g.Entries {
		total += e.Duration
	}
	return total
}

// DailyGroup holds every entry that started on one calendar date,
// grouped by groupKey in first-seen order.
type DailyGroup struct {
	Date   time.Time
	Groups []*EntryGroup

	index map[string]*EntryGroup
}

// NewDailyGroup creates an empty group for the day containing date.
func NewDailyGroup(date time.Time) *DailyGroup {
	return &DailyGroup{
		Date:  StartOfDay(date),
		index: make(map[string]*EntryGroup),
	}
}

// Add appends an entry to its groupKey bucket, creating the bucket on first sight.
func (d *DailyGroup) Add(entry TimeEntry) {
	if d.index == nil {
		d.index = make(map[string]*EntryGroup)
	}
	key := entry.GroupKey()
	group, ok := d.index[key]
	if !ok {
		group = &EntryGroup{Key: key}
		d.index[key] = group
		d.Groups = append(d.Groups, group)
	}
	group.Entries = append(group.Entries, entry)
}

// Elapsed sums the durations of every entry of the day.
func (d *DailyGroup) Elapsed() time.Duration {
	var total time.Duration
	for _, g := range d.Groups {
		total += g.Elapsed()
	}
	return total
}

// Len returns the number of entries in the day.
func (d *DailyGroup) Len() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Entries)
	}
	return n
}

// StartOfDay returns midnight of t's date in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of t's date in t's location.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

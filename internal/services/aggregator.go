package services

import (
	"time"

	"tempus/internal/domain"
)

// Aggregate groups newest-first entries by local calendar day and then by groupKey
func Aggregate(entries []domain.TimeEntry) []*domain.DailyGroup {
	return AggregateIn(entries, time.Local)
}

// AggregateIn groups entries by calendar day in loc and then by groupKey.
//
// Days and keys keep first-seen order and the input is not re-sorted. An entry
// whose day was already seen joins that day's group even when other days came
// in between.
func AggregateIn(entries []domain.TimeEntry, loc *time.Location) []*domain.DailyGroup {
	if loc == nil {
		loc = time.Local
	}

	days := make([]*domain.DailyGroup, 0)
	byDate := make(map[string]*domain.DailyGroup)

	for _, entry := range entries {
		start := entry.StartTime.In(loc)
		key := start.Format(time.DateOnly)

		day, ok := byDate[key]
		if !ok {
			day = domain.NewDailyGroup(start)
			byDate[key] = day
			days = append(days, day)
		}
		day.Add(entry)
	}

	return days
}

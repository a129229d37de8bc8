package tui

import (
	"context"
	"sort"
	"sync"
	"time"

	"tempus/internal/domain"
)

// fakeStore keeps entries in memory and answers like the sqlite-backed service
type fakeStore struct {
	mu      sync.Mutex
	entries []domain.TimeEntry
	saves   int
}

func newFakeStore(entries ...domain.TimeEntry) *fakeStore {
	return &fakeStore{entries: entries}
}

func (f *fakeStore) Save(_ context.Context, entry domain.TimeEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	f.saves++
	return nil
}

func (f *fakeStore) FetchAll(_ context.Context) []domain.TimeEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.TimeEntry, len(f.entries))
	copy(out, f.entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out
}

func (f *fakeStore) ComputeDailyElapsed(_ context.Context, template domain.TimeEntry, date time.Time, matchTask bool) time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	from, to := domain.StartOfDay(date), domain.EndOfDay(date)
	var total time.Duration
	for _, e := range f.entries {
		if e.ProjectName != template.ProjectName {
			continue
		}
		if matchTask && e.Task != template.Task {
			continue
		}
		if e.StartTime.Before(from) || e.StartTime.After(to) {
			continue
		}
		total += e.Duration
	}
	return total
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves
}

func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.March, day, hour, minute, 0, 0, time.UTC)
}

func sampleEntries() []domain.TimeEntry {
	return []domain.TimeEntry{
		{ProjectName: "Acme", Task: "Design", Description: "Wireframes", StartTime: at(12, 14, 0), Duration: 30 * time.Minute, Billable: true},
		{ProjectName: "Acme", Task: "Design", Description: "Review", StartTime: at(12, 10, 0), Duration: time.Hour},
		{ProjectName: "Blog", Description: "Draft", StartTime: at(12, 9, 0), Duration: 15 * time.Minute},
		{ProjectName: "Acme", Task: "Design", Description: "Kickoff", StartTime: at(11, 9, 0), Duration: 45 * time.Minute},
	}
}

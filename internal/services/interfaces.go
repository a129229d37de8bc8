package services

import (
	"context"
	"time"

	"tempus/internal/domain"
)

// RecordStore is the persistence contract the list view and the stopwatch depend on.
//
// Failures are logged by the implementation. FetchAll then yields an empty
// slice and ComputeDailyElapsed yields zero, so callers can carry on drawing.
type RecordStore interface {
	// Save appends a finished entry. The returned error is informational.
	Save(ctx context.Context, entry domain.TimeEntry) error
	// FetchAll returns every stored entry, newest start first.
	FetchAll(ctx context.Context) []domain.TimeEntry
	// ComputeDailyElapsed sums the stored durations of entries sharing the
	// template's project (and task when matchTask is set) that started on
	// date's calendar day.
	ComputeDailyElapsed(ctx context.Context, template domain.TimeEntry, date time.Time, matchTask bool) time.Duration
}

// ServiceContainer wires the services a screen needs
type ServiceContainer struct {
	Store    RecordStore
	Location *time.Location
}

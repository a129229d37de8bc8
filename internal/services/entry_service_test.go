package services

import (
	"context"
	"testing"
	"time"

	"tempus/internal/config"
	"tempus/internal/domain"
	"tempus/internal/errors"
	"tempus/internal/repository/sqlite"
	"tempus/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEntryService(t *testing.T, cfg *config.Config) (*EntryService, sqlite.Repository) {
	t.Helper()
	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return NewEntryService(repo, cfg).WithLocation(time.UTC), repo
}

func at(day, hour, minute int) time.Time {
	return time.Date(time.Now().Year(), time.January, day, hour, minute, 0, 0, time.UTC)
}

func entry(project, task string, start time.Time, d time.Duration) domain.TimeEntry {
	return domain.TimeEntry{ProjectName: project, Task: task, StartTime: start, Duration: d, Tags: []string{}}
}

func TestEntryService_SaveAndFetchAll(t *testing.T) {
	service, _ := setupEntryService(t, nil)
	ctx := context.Background()

	first := entry("A", "", at(11, 9, 0), 30*time.Minute)
	first.Tags = []string{"x", "y"}
	first.Billable = true
	require.NoError(t, service.Save(ctx, first))
	require.NoError(t, service.Save(ctx, entry("B", "t", at(11, 11, 0), 10*time.Minute)))
	require.NoError(t, service.Save(ctx, entry("A", "", at(11, 10, 0), 15*time.Minute)))

	entries := service.FetchAll(ctx)
	require.Len(t, entries, 3)
	assert.Equal(t, "B", entries[0].ProjectName)
	assert.True(t, entries[1].StartTime.Equal(at(11, 10, 0)))
	assert.True(t, entries[2].StartTime.Equal(at(11, 9, 0)))
	assert.Equal(t, []string{"x", "y"}, entries[2].Tags)
	assert.True(t, entries[2].Billable)
	assert.Greater(t, entries[2].ID, int64(0))
}

func TestEntryService_SaveRejectsInvalidEntries(t *testing.T) {
	service, repo := setupEntryService(t, nil)
	ctx := context.Background()

	err := service.Save(ctx, entry("", "", at(11, 9, 0), time.Minute))
	assert.True(t, validation.IsValidationError(err))

	err = service.Save(ctx, entry("A", "", at(11, 9, 0), -time.Minute))
	assert.True(t, validation.IsValidationError(err))

	stored, err := repo.ListTimeEntries(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestEntryService_ComputeDailyElapsed(t *testing.T) {
	service, _ := setupEntryService(t, nil)
	ctx := context.Background()

	for _, e := range []domain.TimeEntry{
		entry("A", "", at(11, 9, 0), 30*time.Minute),
		entry("A", "", at(11, 10, 0), 15*time.Minute),
		entry("A", "review", at(11, 12, 0), 20*time.Minute),
		entry("B", "", at(11, 13, 0), 5*time.Minute),
		entry("A", "", at(12, 9, 0), time.Hour),
	} {
		require.NoError(t, service.Save(ctx, e))
	}

	tests := []struct {
		name      string
		template  domain.TimeEntry
		date      time.Time
		matchTask bool
		expected  time.Duration
	}{
		{"should sum project without task", entry("A", "", time.Time{}, 0), at(11, 17, 0), true, 45 * time.Minute},
		{"should sum project with task", entry("A", "review", time.Time{}, 0), at(11, 0, 0), true, 20 * time.Minute},
		{"should ignore task when not matching", entry("A", "review", time.Time{}, 0), at(11, 23, 59), false, 65 * time.Minute},
		{"should use the given day", entry("A", "", time.Time{}, 0), at(12, 8, 0), true, time.Hour},
		{"should be zero for an empty day", entry("A", "", time.Time{}, 0), at(13, 8, 0), true, 0},
		{"should be zero for an unknown project", entry("Z", "", time.Time{}, 0), at(11, 8, 0), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.ComputeDailyElapsed(ctx, tt.template, tt.date, tt.matchTask))
		})
	}
}

func TestEntryService_ElapsedCacheInvalidatedOnSave(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Stopwatch.CacheElapsed = true
	service, _ := setupEntryService(t, cfg)
	ctx := context.Background()

	template := entry("A", "", time.Time{}, 0)
	require.NoError(t, service.Save(ctx, entry("A", "", at(11, 9, 0), 30*time.Minute)))
	assert.Equal(t, 30*time.Minute, service.ComputeDailyElapsed(ctx, template, at(11, 0, 0), true))

	require.NoError(t, service.Save(ctx, entry("A", "", at(11, 10, 0), 15*time.Minute)))
	assert.Equal(t, 45*time.Minute, service.ComputeDailyElapsed(ctx, template, at(11, 0, 0), true))
}

func TestEntryService_ElapsedCacheServesRepeatQueries(t *testing.T) {
	repo := new(MockRepository)
	repo.On("SumDurations", mock.Anything, mock.Anything).Return(int64(60000), nil).Once()

	cfg := config.NewConfig()
	cfg.Stopwatch.CacheElapsed = true
	service := NewEntryService(repo, cfg).WithLocation(time.UTC)
	template := entry("A", "", time.Time{}, 0)

	assert.Equal(t, time.Minute, service.ComputeDailyElapsed(context.Background(), template, at(11, 9, 0), true))
	assert.Equal(t, time.Minute, service.ComputeDailyElapsed(context.Background(), template, at(11, 18, 0), true))
	repo.AssertNumberOfCalls(t, "SumDurations", 1)
}

func TestEntryService_StoreFailuresAreAbsorbed(t *testing.T) {
	dbErr := errors.NewDatabaseError("query", assert.AnError)
	repo := new(MockRepository)
	repo.On("ListTimeEntries", mock.Anything).Return(nil, dbErr)
	repo.On("SumDurations", mock.Anything, mock.Anything).Return(int64(0), dbErr)
	repo.On("CreateTimeEntry", mock.Anything, mock.Anything).Return(dbErr)

	service := NewEntryService(repo, nil)
	ctx := context.Background()

	entries := service.FetchAll(ctx)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)

	assert.Equal(t, time.Duration(0), service.ComputeDailyElapsed(ctx, entry("A", "", time.Time{}, 0), time.Now(), true))

	err := service.Save(ctx, entry("A", "", time.Now().Add(-time.Minute), time.Minute))
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeDatabase))
	repo.AssertExpectations(t)
}

func TestEntryService_SaveReadsStoredRowBack(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateTimeEntry", mock.Anything, mock.AnythingOfType("*sqlite.TimeEntry")).
		Run(func(args mock.Arguments) { args.Get(1).(*sqlite.TimeEntry).ID = 7 }).
		Return(nil)
	repo.On("GetTimeEntry", mock.Anything, int64(7)).
		Return(&sqlite.TimeEntry{ID: 7, ProjectName: "A", StartTimeMillis: at(11, 9, 0).UnixMilli(), DurationMillis: 60000}, nil)

	service := NewEntryService(repo, nil)

	require.NoError(t, service.Save(context.Background(), entry("A", "", at(11, 9, 0), time.Minute)))
	repo.AssertExpectations(t)
}

func TestEntryService_SaveSucceedsWhenReadBackFails(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CreateTimeEntry", mock.Anything, mock.Anything).Return(nil)
	repo.On("SumDurations", mock.Anything, mock.Anything).Return(int64(60000), nil)
	repo.On("GetTimeEntry", mock.Anything, mock.Anything).
		Return(nil, errors.NewNotFoundError("time entry", "0"))

	cfg := config.NewConfig()
	cfg.Stopwatch.CacheElapsed = true
	service := NewEntryService(repo, cfg).WithLocation(time.UTC)
	ctx := context.Background()
	template := entry("A", "", time.Time{}, 0)

	service.ComputeDailyElapsed(ctx, template, at(11, 0, 0), true)
	require.NoError(t, service.Save(ctx, entry("A", "", at(11, 9, 0), time.Minute)))
	service.ComputeDailyElapsed(ctx, template, at(11, 0, 0), true)

	repo.AssertNumberOfCalls(t, "SumDurations", 2)
	repo.AssertCalled(t, "GetTimeEntry", mock.Anything, mock.Anything)
}

func TestEntryService_ComputeDailyElapsedQuery(t *testing.T) {
	repo := new(MockRepository)
	dayStart := at(11, 0, 0).UnixMilli()
	dayEnd := at(12, 0, 0).UnixMilli() - 1
	project, task := "A", "review"
	repo.On("SumDurations", mock.Anything, sqlite.SearchOptions{
		ProjectName: &project,
		Task:        &task,
		StartMillis: &dayStart,
		EndMillis:   &dayEnd,
	}).Return(int64(1000), nil)

	service := NewEntryService(repo, nil).WithLocation(time.UTC)
	elapsed := service.ComputeDailyElapsed(context.Background(), entry("A", "review", at(3, 1, 0), 0), at(11, 15, 0), true)

	assert.Equal(t, time.Second, elapsed)
	repo.AssertExpectations(t)
}

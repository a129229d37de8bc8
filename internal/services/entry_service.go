package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tempus/internal/config"
	"tempus/internal/domain"
	"tempus/internal/logging"
	"tempus/internal/repository/sqlite"
	"tempus/internal/validation"
)

// EntryService implements RecordStore on top of the sqlite repository
type EntryService struct {
	repo      sqlite.Repository
	mapper    *domain.TimeEntryMapper
	validator *validation.TimeEntryValidator
	location  *time.Location
	cache     *elapsedCache
}

// NewEntryService creates an EntryService. A nil cfg uses the defaults.
func NewEntryService(repo sqlite.Repository, cfg *config.Config) *EntryService {
	s := &EntryService{
		repo:      repo,
		mapper:    domain.NewTimeEntryMapper(),
		validator: validation.NewTimeEntryValidator(),
		location:  time.Local,
	}
	if cfg != nil {
		s.validator = validation.NewTimeEntryValidatorWithConfig(cfg)
		if cfg.Stopwatch.CacheElapsed {
			s.cache = newElapsedCache()
		}
	}
	return s
}

// WithLocation sets the zone calendar days are computed in
func (s *EntryService) WithLocation(loc *time.Location) *EntryService {
	if loc != nil {
		s.location = loc
	}
	return s
}

// Location returns the zone calendar days are computed in
func (s *EntryService) Location() *time.Location {
	return s.location
}

// Save validates and stores a finished entry
func (s *EntryService) Save(ctx context.Context, entry domain.TimeEntry) error {
	if err := s.validator.ValidateTimeEntryForCreation(entry); err != nil {
		logging.Error("rejected time entry", err, slog.String("project", entry.ProjectName))
		return err
	}

	dbEntry := s.mapper.ToDatabase(entry)
	if err := s.repo.CreateTimeEntry(ctx, &dbEntry); err != nil {
		logging.Error("failed to save time entry", err, slog.String("project", entry.ProjectName))
		return err
	}

	s.cache.invalidate()

	stored, err := s.repo.GetTimeEntry(ctx, dbEntry.ID)
	if err != nil {
		logging.Error("saved time entry could not be read back", err, slog.Int64("id", dbEntry.ID))
		return nil
	}
	saved := s.mapper.FromDatabase(*stored)
	logging.Logger().Info("saved time entry",
		slog.Int64("id", saved.ID),
		slog.String("group", saved.GroupKey()),
		slog.Time("start", saved.StartTime),
		slog.Duration("duration", saved.Duration))
	return nil
}

// FetchAll returns every stored entry, newest first
func (s *EntryService) FetchAll(ctx context.Context) []domain.TimeEntry {
	dbEntries, err := s.repo.ListTimeEntries(ctx)
	if err != nil {
		logging.Error("failed to load time entries", err)
		return []domain.TimeEntry{}
	}
	return s.mapper.FromDatabaseSlice(dbEntries)
}

// ComputeDailyElapsed re-queries the store for the day total of template's project
func (s *EntryService) ComputeDailyElapsed(ctx context.Context, template domain.TimeEntry, date time.Time, matchTask bool) time.Duration {
	day := domain.StartOfDay(date.In(s.location))
	key := elapsedKey{day: day.Format(time.DateOnly), project: template.ProjectName, matchTask: matchTask}
	if matchTask {
		key.task = template.Task
	}
	if total, ok := s.cache.get(key); ok {
		return total
	}

	total, err := s.repo.SumDurations(ctx, s.mapper.DaySearchOptions(template, day, matchTask))
	if err != nil {
		logging.Error("failed to compute daily elapsed", err,
			slog.String("project", template.ProjectName),
			slog.String("day", key.day))
		return 0
	}

	elapsed := sqlite.MillisToDuration(total)
	s.cache.put(key, elapsed)
	return elapsed
}

type elapsedKey struct {
	day       string
	project   string
	task      string
	matchTask bool
}

// elapsedCache memoises day totals between saves. A nil cache is a no-op.
type elapsedCache struct {
	mu      sync.Mutex
	entries map[elapsedKey]time.Duration
}

func newElapsedCache() *elapsedCache {
	return &elapsedCache{entries: make(map[elapsedKey]time.Duration)}
}

func (c *elapsedCache) get(key elapsedKey) (time.Duration, bool) {
	if c == nil {
		return 0, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.entries[key]
	return d, ok
}

func (c *elapsedCache) put(key elapsedKey, d time.Duration) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = d
}

func (c *elapsedCache) invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[elapsedKey]time.Duration)
}

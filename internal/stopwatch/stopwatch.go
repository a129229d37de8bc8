// Package stopwatch times one work session at a time and turns it into a
// stored entry when stopped.
package stopwatch

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"tempus/internal/domain"
	"tempus/internal/logging"
)

// State is Idle or Running
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// DefaultInterval is how often the display cell is refreshed
const DefaultInterval = time.Second

// Saver persists finished entries
type Saver interface {
	Save(ctx context.Context, entry domain.TimeEntry) error
}

// Fields are the user-editable parts of an entry
type Fields struct {
	ProjectName string
	ClientName  string
	Description string
	Task        string
	Email       string
	Tags        string
	Billable    bool
}

// FieldsFrom copies an entry's fields for resumption
func FieldsFrom(entry domain.TimeEntry) Fields {
	return Fields{
		ProjectName: entry.ProjectName,
		ClientName:  entry.ClientName,
		Description: entry.Description,
		Task:        entry.Task,
		Email:       entry.Email,
		Tags:        domain.JoinTags(entry.Tags),
		Billable:    entry.Billable,
	}
}

// Option configures a Stopwatch
type Option func(*Stopwatch)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(s *Stopwatch) { s.now = now }
}

// WithInterval sets the display refresh interval
func WithInterval(d time.Duration) Option {
	return func(s *Stopwatch) {
		if d > 0 {
			s.interval = d
		}
	}
}

// withTickListener registers fn to run after every display refresh, on the ticker goroutine
func withTickListener(fn func()) Option {
	return func(s *Stopwatch) { s.onTick = fn }
}

// Stopwatch is the single session timer of a UI session
type Stopwatch struct {
	mu       sync.Mutex
	store    Saver
	now      func() time.Time
	interval time.Duration
	onTick   func()

	state   State
	start   time.Time
	session string
	fields  Fields
	ticker  *ticker

	generation atomic.Uint64
	display    atomic.Int64
}

// New creates an idle stopwatch saving into store
func New(store Saver, opts ...Option) *Stopwatch {
	s := &Stopwatch{
		store:    store,
		now:      time.Now,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins timing. A carried entry prefills the fields, otherwise the
// current fields are kept. Starting a running stopwatch does nothing.
func (s *Stopwatch) Start(carried *domain.TimeEntry) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Running {
		return false
	}
	if carried != nil {
		s.fields = FieldsFrom(*carried)
	}

	start := s.now()
	s.start = start
	s.session = uuid.NewString()
	s.state = Running
	s.display.Store(0)
	gen := s.generation.Add(1)

	s.ticker = startTicker(s.interval, func() {
		if s.generation.Load() != gen {
			return
		}
		s.display.Store(int64(s.now().Sub(start)))
		if s.onTick != nil {
			s.onTick()
		}
	})

	logging.Logger().Debug("stopwatch started",
		slog.String("session", s.session),
		slog.String("project", s.fields.ProjectName))
	return true
}

// Stop ends the session. The duration is taken from the clock now. A blank
// project drops the session without saving. The built entry is returned
// either way; saved reports whether it reached the store.
func (s *Stopwatch) Stop(ctx context.Context) (entry domain.TimeEntry, saved bool) {
	s.mu.Lock()
	if s.state != Running {
		s.mu.Unlock()
		return domain.TimeEntry{}, false
	}

	end := s.now()
	t := s.ticker
	s.ticker = nil
	s.generation.Add(1)
	s.state = Idle
	entry = s.buildEntry(end)
	session := s.session
	s.mu.Unlock()

	t.stop()
	s.display.Store(0)

	if strings.TrimSpace(entry.ProjectName) == "" {
		logging.Debugf("stopwatch session %s stopped without a project, dropped", session)
		return entry, false
	}

	if err := s.store.Save(ctx, entry); err != nil {
		logging.Logger().Warn("stopwatch session not saved",
			slog.String("session", session),
			slog.String("error", err.Error()))
		return entry, false
	}
	logging.Logger().Debug("stopwatch session saved",
		slog.String("session", session),
		slog.Duration("duration", entry.Duration))
	return entry, true
}

// Close stops the display ticker without saving
func (s *Stopwatch) Close() {
	s.mu.Lock()
	t := s.ticker
	s.ticker = nil
	s.generation.Add(1)
	s.state = Idle
	s.mu.Unlock()

	t.stop()
}

func (s *Stopwatch) buildEntry(end time.Time) domain.TimeEntry {
	duration := end.Sub(s.start)
	if duration < 0 {
		duration = 0
	}
	return domain.TimeEntry{
		ProjectName: strings.TrimSpace(s.fields.ProjectName),
		ClientName:  s.fields.ClientName,
		Description: s.fields.Description,
		Task:        s.fields.Task,
		Email:       strings.TrimSpace(s.fields.Email),
		Tags:        domain.ParseTags(s.fields.Tags),
		Billable:    s.fields.Billable,
		StartTime:   s.start,
		Duration:    duration,
	}
}

// SetFields replaces the editable fields, also while running
func (s *Stopwatch) SetFields(f Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields = f
}

// Fields returns the current editable fields
func (s *Stopwatch) Fields() Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// State returns Idle or Running
func (s *Stopwatch) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Running reports whether a session is being timed
func (s *Stopwatch) Running() bool {
	return s.State() == Running
}

// Generation changes on every Start and Stop. Display ticks stamped with an
// older generation are stale.
func (s *Stopwatch) Generation() uint64 {
	return s.generation.Load()
}

// Elapsed is the live session length, zero when idle
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Running {
		return 0
	}
	return s.now().Sub(s.start)
}

// Display is the last value written by the display ticker as HH:MM:SS
func (s *Stopwatch) Display() string {
	return domain.FormatHHMMSS(time.Duration(s.display.Load()))
}

// Session identifies the current or last timed session in the log
func (s *Stopwatch) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Interval is the display refresh interval
func (s *Stopwatch) Interval() time.Duration {
	return s.interval
}

// Summary formats the "Worked on" line for a finished session
func Summary(entry domain.TimeEntry) string {
	return "Worked on " + entry.Description + ":" + entry.Task +
		" (" + entry.ProjectName + ") for: " + domain.FormatHHMMSS(entry.Duration)
}

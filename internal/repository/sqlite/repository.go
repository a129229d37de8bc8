package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"tempus/internal/errors"
	"tempus/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the database operations on time entries.
// Entries are append-only: there is no update or delete.
type Repository interface {
	CreateTimeEntry(ctx context.Context, entry *TimeEntry) error
	// GetTimeEntry reads one stored row back by id, well-formed or not
	GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error)
	// ListTimeEntries returns every entry, newest start first
	ListTimeEntries(ctx context.Context) ([]*TimeEntry, error)
	// SumDurations totals duration_millis over the entries matching opts
	SumDurations(ctx context.Context, opts SearchOptions) (int64, error)

	Close() error
}

// Options tunes a repository. Zero timeouts disable the per-call deadline.
type Options struct {
	QueryTimeout time.Duration
	WriteTimeout time.Duration
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db   *sql.DB
	opts Options
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	return NewWithOptions(dbPath, Options{})
}

// NewWithOptions opens the database at dbPath, runs pending migrations and
// applies the given timeouts to every call
func NewWithOptions(dbPath string, opts Options) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db, opts: opts}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.QueryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.QueryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.opts.WriteTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.opts.WriteTimeout)
}

// CreateTimeEntry inserts a finished entry and sets its ID
func (r *SQLiteRepository) CreateTimeEntry(ctx context.Context, entry *TimeEntry) error {
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `
	INSERT INTO time_entries (project_name, client_name, description, task, email, tags, billable, start_time_millis, duration_millis)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entry.ProjectName,
		NullableText(entry.ClientName),
		NullableText(entry.Description),
		NullableText(entry.Task),
		NullableText(entry.Email),
		entry.Tags,
		entry.Billable,
		entry.StartTimeMillis,
		entry.DurationMillis,
	)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// GetTimeEntry retrieves a time entry by ID
func (r *SQLiteRepository) GetTimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTimeEntry, "time entry", fmt.Sprintf("%d", id), id)
}

// ListTimeEntries retrieves all time entries, newest first
func (r *SQLiteRepository) ListTimeEntries(ctx context.Context) ([]*TimeEntry, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries ORDER BY start_time_millis DESC, id DESC`
	return QueryMultiple(ctx, r.db, query, ScanTimeEntries, "time entries")
}

// SumDurations totals the durations of the entries matching opts
func (r *SQLiteRepository) SumDurations(ctx context.Context, opts SearchOptions) (int64, error) {
	ctx, cancel := r.queryContext(ctx)
	defer cancel()

	where, args := buildConditions(opts)
	query := `SELECT COALESCE(SUM(duration_millis), 0) FROM time_entries` + where

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, HandleDatabaseError(ctx, "sum durations", err)
	}
	return total, nil
}

// wellFormedCondition matches the rows ScanTimeEntries keeps, so sums agree with listings
const wellFormedCondition = "TRIM(project_name) <> '' AND start_time_millis > 0 AND duration_millis >= 0"

func buildConditions(opts SearchOptions) (string, []interface{}) {
	conditions := []string{wellFormedCondition}
	var args []interface{}

	if opts.ProjectName != nil {
		conditions = append(conditions, "project_name = ?")
		args = append(args, *opts.ProjectName)
	}
	if opts.Task != nil {
		conditions = append(conditions, "COALESCE(task, '') = ?")
		args = append(args, *opts.Task)
	}
	if opts.StartMillis != nil && opts.EndMillis != nil {
		conditions = append(conditions, "start_time_millis BETWEEN ? AND ?")
		args = append(args, *opts.StartMillis, *opts.EndMillis)
	} else if opts.StartMillis != nil {
		conditions = append(conditions, "start_time_millis >= ?")
		args = append(args, *opts.StartMillis)
	} else if opts.EndMillis != nil {
		conditions = append(conditions, "start_time_millis <= ?")
		args = append(args, *opts.EndMillis)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

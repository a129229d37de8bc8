package sqlite

import (
	"database/sql"
	"strings"

	"tempus/internal/logging"
)

// Scanner is the common scanning behaviour of sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows is the subset of sql.Rows the scanners need
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// timeEntryColumns lists the columns ScanTimeEntry expects, in order
const timeEntryColumns = `id, project_name, client_name, description, task, email, tags, billable, start_time_millis, duration_millis`

// ScanTimeEntry scans a single time entry from a database row
func ScanTimeEntry(scanner Scanner) (*TimeEntry, error) {
	entry := &TimeEntry{}
	var clientName, description, task, email, tags sql.NullString

	err := scanner.Scan(
		&entry.ID,
		&entry.ProjectName,
		&clientName,
		&description,
		&task,
		&email,
		&tags,
		&entry.Billable,
		&entry.StartTimeMillis,
		&entry.DurationMillis,
	)
	if err != nil {
		return nil, err
	}

	entry.ClientName = clientName.String
	entry.Description = description.String
	entry.Task = task.String
	entry.Email = email.String
	entry.Tags = tags.String

	return entry, nil
}

// ScanTimeEntries scans every row, skipping malformed records so a single bad
// row never hides the rest of the dataset
func ScanTimeEntries(rows Rows) ([]*TimeEntry, error) {
	entries := make([]*TimeEntry, 0)
	for rows.Next() {
		entry, err := ScanTimeEntry(rows)
		if err != nil {
			logging.Debugf("skipping unreadable time entry row: %v", err)
			continue
		}
		if !isWellFormed(entry) {
			logging.Debugf("skipping malformed time entry %d", entry.ID)
			continue
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func isWellFormed(entry *TimeEntry) bool {
	return strings.TrimSpace(entry.ProjectName) != "" && entry.StartTimeMillis > 0 && entry.DurationMillis >= 0
}

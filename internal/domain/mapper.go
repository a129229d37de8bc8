package domain

import (
	"time"

	"tempus/internal/repository/sqlite"
)

// TimeEntryMapper handles conversion between domain and database TimeEntry models.
type TimeEntryMapper struct{}

// NewTimeEntryMapper creates a new TimeEntryMapper instance.
func NewTimeEntryMapper() *TimeEntryMapper {
	return &TimeEntryMapper{}
}

// ToDatabase converts a domain TimeEntry to a database TimeEntry.
func (m *TimeEntryMapper) ToDatabase(domainEntry TimeEntry) sqlite.TimeEntry {
	return sqlite.TimeEntry{
		ID:              domainEntry.ID,
		ProjectName:     domainEntry.ProjectName,
		ClientName:      domainEntry.ClientName,
		Description:     domainEntry.Description,
		Task:            domainEntry.Task,
		Email:           domainEntry.Email,
		Tags:            JoinTags(domainEntry.Tags),
		Billable:        domainEntry.Billable,
		StartTimeMillis: sqlite.ToMillis(domainEntry.StartTime),
		DurationMillis:  sqlite.DurationToMillis(domainEntry.Duration),
	}
}

// FromDatabase converts a database TimeEntry to a domain TimeEntry.
func (m *TimeEntryMapper) FromDatabase(dbEntry sqlite.TimeEntry) TimeEntry {
	return TimeEntry{
		ID:          dbEntry.ID,
		ProjectName: dbEntry.ProjectName,
		ClientName:  dbEntry.ClientName,
		Description: dbEntry.Description,
		Task:        dbEntry.Task,
		Email:       dbEntry.Email,
		Tags:        ParseTags(dbEntry.Tags),
		Billable:    dbEntry.Billable,
		StartTime:   sqlite.FromMillis(dbEntry.StartTimeMillis),
		Duration:    sqlite.MillisToDuration(dbEntry.DurationMillis),
	}
}

// FromDatabaseSlice converts database TimeEntries to domain TimeEntries, keeping order.
func (m *TimeEntryMapper) FromDatabaseSlice(dbEntries []*sqlite.TimeEntry) []TimeEntry {
	domainEntries := make([]TimeEntry, 0, len(dbEntries))
	for _, entry := range dbEntries {
		if entry == nil {
			continue
		}
		domainEntries = append(domainEntries, m.FromDatabase(*entry))
	}
	return domainEntries
}

// DaySearchOptions builds the query selecting the entries of template's project
// (and task, when matchTask is set) that started on date's calendar day.
func (m *TimeEntryMapper) DaySearchOptions(template TimeEntry, date time.Time, matchTask bool) sqlite.SearchOptions {
	project := template.ProjectName
	start := sqlite.ToMillis(StartOfDay(date))
	end := sqlite.ToMillis(EndOfDay(date))

	opts := sqlite.SearchOptions{
		ProjectName: &project,
		StartMillis: &start,
		EndMillis:   &end,
	}
	if matchTask {
		task := template.Task
		opts.Task = &task
	}
	return opts
}

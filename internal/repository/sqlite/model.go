package sqlite

// TimeEntry is the stored form of a completed work session.
// Nullable text columns are read as empty strings.
type TimeEntry struct {
	ID              int64
	ProjectName     string
	ClientName      string
	Description     string
	Task            string
	Email           string
	Tags            string
	Billable        bool
	StartTimeMillis int64
	DurationMillis  int64
}

// SearchOptions narrows a time entry query. Nil fields are not filtered on.
type SearchOptions struct {
	ProjectName *string
	// Task matches COALESCE(task, ''), so an empty string selects entries without a task.
	Task        *string
	StartMillis *int64
	EndMillis   *int64
}

package domain

import (
	"strings"
	"time"
)

// TimeEntry is one completed timed work session.
// Entries are built once when a stopwatch session stops and never change afterwards.
type TimeEntry struct {
	ID          int64
	ProjectName string
	ClientName  string
	Description string
	Task        string
	Email       string
	Tags        []string
	Billable    bool
	StartTime   time.Time
	Duration    time.Duration
}

// GroupKey returns the label used to cluster entries: "project" or "project:task".
func GroupKey(projectName, task string) string {
	if task == "" {
		return projectName
	}
	return projectName + ":" + task
}

// GroupKey returns the entry's project/task label.
func (te TimeEntry) GroupKey() string {
	return GroupKey(te.ProjectName, te.Task)
}

// End returns the time the session stopped.
func (te TimeEntry) End() time.Time {
	return te.StartTime.Add(te.Duration)
}

// IsValid checks the invariants every stored entry must satisfy.
func (te TimeEntry) IsValid() bool {
	if strings.TrimSpace(te.ProjectName) == "" {
		return false
	}
	if te.StartTime.IsZero() {
		return false
	}
	return te.Duration >= 0
}

// ParseTags splits free-text tags on commas, trimming blanks and dropping empties.
// "a, b,c" yields [a b c]; an empty string yields an empty, non-nil slice.
func ParseTags(text string) []string {
	tags := make([]string, 0)
	for _, part := range strings.Split(text, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

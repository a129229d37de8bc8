package sqlite

import (
	"database/sql"
	"time"
)

// ToMillis converts a time to epoch milliseconds for storage
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts stored epoch milliseconds back to a local time
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// DurationToMillis converts a duration to whole milliseconds for storage
func DurationToMillis(d time.Duration) int64 {
	return d.Milliseconds()
}

// MillisToDuration converts stored milliseconds back to a duration
func MillisToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// NullableText stores empty strings as NULL, the way optional form fields arrive
func NullableText(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package domain

import (
	"fmt"
	"time"
)

// ClockLayout is the default hour:minute layout used for time ranges.
const ClockLayout = "15:04"

// FormatHHMMSS renders a duration as zero-padded HH:MM:SS with unbounded hours.
// Negative durations render as 00:00:00.
func FormatHHMMSS(d time.Duration) string {
	if d < 0 {
		return "00:00:00"
	}
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatTimeRange renders "HH:MM - HH:MM" for the entry in loc, seconds truncated.
// An empty layout means ClockLayout.
func FormatTimeRange(te TimeEntry, loc *time.Location, layout string) string {
	if layout == "" {
		layout = ClockLayout
	}
	return fmt.Sprintf("%s - %s",
		te.StartTime.In(loc).Format(layout),
		te.End().In(loc).Format(layout))
}

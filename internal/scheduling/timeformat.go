package scheduling

import (
	"time"

	errs "task-planner.com/task-planner/internal/errors"
)

// TimeLayout is the canonical wire form for all task timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// ParseTime parses a canonical timestamp as UTC.
func ParseTime(value string) (time.Time, error) {
	t, err := time.ParseInLocation(TimeLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, errs.ErrInvalidDate
	}
	return t, nil
}

// FormatTime renders a stored timestamp back to the canonical form; nil
// renders as the empty string so unscheduled tasks round-trip as absent.
func FormatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(TimeLayout)
}

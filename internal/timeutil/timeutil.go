package timeutil

import "time"

// DateLayout defines the canonical calendar-date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether value is a well-formed calendar date.
func ValidDate(value string) bool {
	_, err := ParseDate(value)
	return err == nil
}

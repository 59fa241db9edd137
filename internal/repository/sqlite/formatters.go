package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// FormatTimeForDB formats a time.Time value as RFC3339 string for consistent database storage
func FormatTimeForDB(t time.Time) string {
	return t.Format(time.RFC3339)
}

// FormatTimePtrForDB formats a *time.Time value as RFC3339 string, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// fallbackLayouts are accepted when reading rows written by hand or by
// older exports.
var fallbackLayouts = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999 -0700",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimeFromDB parses a stored timestamp. RFC3339 is the canonical form.
func ParseTimeFromDB(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, " m="); idx != -1 {
		s = s[:idx]
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse time format: %s", s)
}

// parseNullTime converts a nullable text column into an optional time.
func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := ParseTimeFromDB(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableInt64 converts an optional integer for a query argument.
func nullableInt64(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

package orchestrators

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a date field matches no accepted layout.
var ErrInvalidDate = errors.New("invalid date format")

// shotDateLayouts are tried in order. Layouts without a zone are read as UTC.
var shotDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // datetime-local input
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseShotDate parses a user-supplied shot date.
// PRE: raw is non-empty
// POST: returns a UTC time or ErrInvalidDate
func ParseShotDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range shotDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

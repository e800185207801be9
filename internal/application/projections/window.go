package projections

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidMonth = errors.New("month must be a number from 1 to 12")
	ErrInvalidDay   = errors.New("day must be formatted YYYY-MM-DD")
)

// DateWindow turns the month and day filters into a half-open UTC range.
// month selects that month of now's year; day selects one calendar day and wins over month.
// POST: both zero when neither filter is set
func DateWindow(month, day string, now time.Time) (from, to time.Time, err error) {
	if day = strings.TrimSpace(day); day != "" {
		d, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidDay
		}
		return d, d.AddDate(0, 0, 1), nil
	}
	if month = strings.TrimSpace(month); month != "" {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return time.Time{}, time.Time{}, ErrInvalidMonth
		}
		from = time.Date(now.Year(), time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0), nil
	}
	return time.Time{}, time.Time{}, nil
}

// sessionDay truncates t to its UTC calendar day.
func sessionDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sessionLabel formats a day the way the charts label sessions ("Jan 2").
func sessionLabel(d time.Time) string {
	return d.Format("Jan 2")
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}

// round rounds half away from zero to the given decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

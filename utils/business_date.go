package utils

import (
	"errors"
	"strings"
	"time"
)

const BusinessDateLayout = "2006-01-02"

var ErrInvalidBusinessDate = errors.New("business date must be YYYY-MM-DD")

//
// ===========================================================
//  BUSINESS DAY WINDOW
// ===========================================================
//

// BusinessDayWindow returns [midnight, next midnight) of the date in loc,
// both expressed in UTC. The next midnight is computed on the calendar, so
// DST days yield 23 or 25 hour windows.
func BusinessDayWindow(raw string, loc *time.Location) (start, end time.Time, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, time.Time{}, ErrInvalidBusinessDate
	}
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation(BusinessDateLayout, raw, loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidBusinessDate
	}
	start = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	end = time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC(), nil
}

// NormalizeBusinessDate validates raw and returns it in canonical form.
func NormalizeBusinessDate(raw string) (string, error) {
	t, err := time.Parse(BusinessDateLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", ErrInvalidBusinessDate
	}
	return t.Format(BusinessDateLayout), nil
}

// BusinessDateOf is the calendar date of the instant in loc.
func BusinessDateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(BusinessDateLayout)
}

package schedule

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, raw, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("date", "must be YYYY-MM-DD")
	}
	return d, nil
}

// ParseClock validates an HH:MM string.
func ParseClock(field, hm string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return time.Time{}, httperr.ErrValidation(field, "must be HH:MM")
	}
	return t, nil
}

// ClockOn places an HH:MM string on the calendar day of date, in date's location.
// Unparseable clocks land on midnight.
func ClockOn(date time.Time, hm string) time.Time {
	t, _ := time.Parse(ClockLayout, hm)
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	)
}

// DayOf truncates t to midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location loads tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); err == nil && tz != "" {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// Clock returns the current time. Use cases take one instead of calling
// time.Now so tests can pin the date.
type Clock func() time.Time

// ShopClock is the wall clock in the shop's timezone.
func ShopClock(tz string) Clock {
	loc := Location(tz)
	return func() time.Time {
		return time.Now().In(loc)
	}
}

// Fixed always returns t.
func Fixed(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// Location returns the location the clock reports times in.
func (c Clock) Location() *time.Location {
	return c().Location()
}

package schedule

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Reason string

const (
	ReasonNoSchedule          Reason = "no_schedule"
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonOnBreak             Reason = "on_break"
	ReasonTimeOff             Reason = "time_off"
	ReasonTimeConflict        Reason = "time_conflict"
)

// Interval is a half-open [Start, End) span of time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Day is everything the gate needs to know about one barber on one date.
type Day struct {
	// Schedule is the row for the date's weekday, nil when there is none.
	Schedule *models.BarberSchedule
	TimeOffs []models.BarberTimeOff
	// Bookings are the barber's non-cancelled bookings around the date.
	Bookings []Interval
}

// BookingIntervals keeps the bookings that still hold their slot.
func BookingIntervals(bookings []models.Booking) []Interval {
	out := make([]Interval, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.BookingCancelled {
			continue
		}
		out = append(out, Interval{Start: b.StartTime, End: b.EndTime})
	}
	return out
}

// Overlaps is the half-open interval overlap predicate.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// DateRangesOverlap compares two inclusive date ranges by turning them into
// [start, end+1day) and reusing Overlaps.
func DateRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return Overlaps(
		DayOf(aStart), DayOf(aEnd).AddDate(0, 0, 1),
		DayOf(bStart), DayOf(bEnd).AddDate(0, 0, 1),
	)
}

// Check runs the gate and returns the first reason the interval is not
// bookable, or "" when it is. start and end must be on the same calendar day.
func Check(day Day, start, end time.Time) Reason {
	s := day.Schedule
	if s == nil || !s.Active || s.StartTime == "" || s.EndTime == "" ||
		s.DayOfWeek != int(start.Weekday()) {
		return ReasonNoSchedule
	}

	workStart := ClockOn(start, s.StartTime)
	workEnd := ClockOn(start, s.EndTime)
	if start.Before(workStart) || end.After(workEnd) || !end.After(start) {
		return ReasonOutsideWorkingHours
	}

	if s.BreakStart != "" && s.BreakEnd != "" {
		if Overlaps(start, end, ClockOn(start, s.BreakStart), ClockOn(start, s.BreakEnd)) {
			return ReasonOnBreak
		}
	}

	if InTimeOff(day.TimeOffs, start) {
		return ReasonTimeOff
	}

	for _, b := range day.Bookings {
		if Overlaps(b.Start, b.End, start, end) {
			return ReasonTimeConflict
		}
	}

	return ""
}

// IsBookable reports whether [start, end) can be booked on day.
func IsBookable(day Day, start, end time.Time) bool {
	return Check(day, start, end) == ""
}

// InTimeOff reports whether date falls inside any inclusive time-off range.
func InTimeOff(offs []models.BarberTimeOff, date time.Time) bool {
	d := DayOf(date)
	for _, off := range offs {
		from, err1 := time.ParseInLocation(DateLayout, off.StartDate, d.Location())
		to, err2 := time.ParseInLocation(DateLayout, off.EndDate, d.Location())
		if err1 != nil || err2 != nil {
			continue
		}
		if !d.Before(from) && !d.After(to) {
			return true
		}
	}
	return false
}

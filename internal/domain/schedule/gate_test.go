package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// 2025-06-09 is a Monday.
func at(day int, hm string) time.Time {
	return ClockOn(time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC), hm)
}

func mondayNineToFive() *models.BarberSchedule {
	return &models.BarberSchedule{
		BarberID:  7,
		DayOfWeek: int(time.Monday),
		StartTime: "09:00",
		EndTime:   "17:00",
		Active:    true,
	}
}

func TestIsBookable_ScenarioE_NoScheduleOnTuesday(t *testing.T) {
	// the repository returns no row for Tuesday
	assert.False(t, IsBookable(Day{}, at(10, "10:00"), at(10, "10:30")))
	assert.Equal(t, ReasonNoSchedule, Check(Day{}, at(10, "10:00"), at(10, "10:30")))

	// a Monday row handed in for a Tuesday request still fails
	day := Day{Schedule: mondayNineToFive()}
	assert.Equal(t, ReasonNoSchedule, Check(day, at(10, "10:00"), at(10, "10:30")))

	assert.True(t, IsBookable(day, at(9, "10:00"), at(9, "10:30")))
}

func TestCheck_Reasons(t *testing.T) {
	withBreak := mondayNineToFive()
	withBreak.BreakStart = "12:00"
	withBreak.BreakEnd = "13:00"

	inactive := mondayNineToFive()
	inactive.Active = false

	cases := []struct {
		name       string
		day        Day
		start, end string
		want       Reason
	}{
		{"inactive row", Day{Schedule: inactive}, "10:00", "10:30", ReasonNoSchedule},
		{"before opening", Day{Schedule: mondayNineToFive()}, "08:45", "09:15", ReasonOutsideWorkingHours},
		{"past closing", Day{Schedule: mondayNineToFive()}, "16:45", "17:15", ReasonOutsideWorkingHours},
		{"ends at closing", Day{Schedule: mondayNineToFive()}, "16:30", "17:00", ""},
		{"starts at opening", Day{Schedule: mondayNineToFive()}, "09:00", "09:30", ""},
		{"empty interval", Day{Schedule: mondayNineToFive()}, "10:00", "10:00", ReasonOutsideWorkingHours},
		{"on break", Day{Schedule: withBreak}, "11:45", "12:15", ReasonOnBreak},
		{"right after break", Day{Schedule: withBreak}, "13:00", "13:30", ""},
		{"time off", Day{
			Schedule: mondayNineToFive(),
			TimeOffs: []models.BarberTimeOff{{StartDate: "2025-06-08", EndDate: "2025-06-09"}},
		}, "10:00", "10:30", ReasonTimeOff},
		{"overlapping booking", Day{
			Schedule: mondayNineToFive(),
			Bookings: []Interval{{Start: at(9, "10:00"), End: at(9, "10:45")}},
		}, "10:30", "11:00", ReasonTimeConflict},
		{"adjacent booking", Day{
			Schedule: mondayNineToFive(),
			Bookings: []Interval{{Start: at(9, "10:00"), End: at(9, "10:30")}},
		}, "10:30", "11:00", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Check(tc.day, at(9, tc.start), at(9, tc.end)))
		})
	}
}

func TestBookingIntervals_SkipsCancelled(t *testing.T) {
	got := BookingIntervals([]models.Booking{
		{Status: models.BookingPending, StartTime: at(9, "10:00"), EndTime: at(9, "10:30")},
		{Status: models.BookingCancelled, StartTime: at(9, "11:00"), EndTime: at(9, "11:30")},
		{Status: models.BookingInProgress, StartTime: at(9, "12:00"), EndTime: at(9, "12:30")},
	})

	assert.Len(t, got, 2)
	assert.True(t, IsBookable(Day{Schedule: mondayNineToFive(), Bookings: got}, at(9, "11:00"), at(9, "11:30")))
}

func TestOverlaps(t *testing.T) {
	a, b := at(9, "10:00"), at(9, "11:00")

	assert.True(t, Overlaps(a, b, at(9, "10:30"), at(9, "11:30")))
	assert.True(t, Overlaps(a, b, at(9, "09:00"), at(9, "12:00")))
	assert.False(t, Overlaps(a, b, b, at(9, "12:00")))
	assert.False(t, Overlaps(a, b, at(9, "09:00"), a))
}

func TestDateRangesOverlap_InclusiveEnds(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC) }

	assert.True(t, DateRangesOverlap(d(10), d(12), d(12), d(14)))
	assert.True(t, DateRangesOverlap(d(10), d(10), d(10), d(10)))
	assert.False(t, DateRangesOverlap(d(10), d(12), d(13), d(14)))
}

func TestFreeSlots(t *testing.T) {
	s := mondayNineToFive()
	s.EndTime = "11:00"
	s.BreakStart = "10:00"
	s.BreakEnd = "10:30"

	day := Day{
		Schedule: s,
		Bookings: []Interval{{Start: at(9, "09:30"), End: at(9, "10:00")}},
	}

	slots := FreeSlots(day, at(9, "00:00"), 30*time.Minute, time.Time{})

	assert.Equal(t, []TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "10:30", End: "11:00"},
	}, slots)
}

func TestFreeSlots_NotBeforeAndTimeOff(t *testing.T) {
	day := Day{Schedule: mondayNineToFive()}

	slots := FreeSlots(day, at(9, "00:00"), time.Hour, at(9, "15:30"))
	assert.Equal(t, []TimeSlot{{Start: "16:00", End: "17:00"}}, slots)

	day.TimeOffs = []models.BarberTimeOff{{StartDate: "2025-06-09", EndDate: "2025-06-09"}}
	assert.Empty(t, FreeSlots(day, at(9, "00:00"), time.Hour, time.Time{}))

	assert.Empty(t, FreeSlots(Day{}, at(9, "00:00"), time.Hour, time.Time{}))
}

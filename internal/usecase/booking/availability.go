package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// assertBookable locks the barber's schedule row for the weekday and runs the
// gate against the day's time-off and active bookings. skipBookingID excludes
// one booking from the overlap check (the one being reinstated).
// start and end are moved into loc first: weekday, date and working hours
// are all shop-local, whatever zone the database handed the times back in.
func assertBookable(
	ctx context.Context,
	repo schedule.Repository,
	loc *time.Location,
	barberID uint,
	start time.Time,
	end time.Time,
	skipBookingID uint,
) error {

	start, end = start.In(loc), end.In(loc)

	s, err := repo.LockSchedule(ctx, barberID, int(start.Weekday()))
	if err != nil {
		return err
	}

	date := start.Format(schedule.DateLayout)
	offs, err := repo.ListTimeOffsBetween(ctx, barberID, date, date)
	if err != nil {
		return err
	}

	dayStart := schedule.DayOf(start)
	bookings, err := repo.ListActiveBookings(ctx, barberID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	kept := bookings[:0]
	for _, b := range bookings {
		if b.ID != skipBookingID {
			kept = append(kept, b)
		}
	}

	reason := schedule.Check(schedule.Day{
		Schedule: s,
		TimeOffs: offs,
		Bookings: schedule.BookingIntervals(kept),
	}, start, end)

	switch reason {
	case "":
		return nil
	case schedule.ReasonTimeConflict:
		return httperr.ErrConflict(string(reason))
	default:
		return httperr.ErrBusiness(string(reason))
	}
}

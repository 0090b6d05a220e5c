package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Monday
var now = time.Date(2025, 6, 9, 8, 0, 0, 0, time.UTC)

type fixture struct {
	db     *gorm.DB
	repo   *repository.ScheduleGormRepository
	barber *models.User
	admin  *models.User
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:     db,
		repo:   repository.NewScheduleGormRepository(db),
		barber: testutil.User(t, db, models.RoleBarber),
		admin:  testutil.User(t, db, models.RoleAdmin),
	}
}

func week() []DayInput {
	return []DayInput{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00", BreakStart: "12:00", BreakEnd: "13:00", Active: true},
		{DayOfWeek: 2, StartTime: "10:00", EndTime: "14:00", Active: true},
	}
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

func TestSetWeeklySchedule_Replaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewSetWeeklySchedule(f.repo, nil)

	rows, err := uc.Execute(ctx, f.admin.ID, f.barber.ID, week())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].DayOfWeek)
	assert.Equal(t, "12:00", rows[0].BreakStart)

	rows, err = uc.Execute(ctx, f.admin.ID, f.barber.ID, []DayInput{
		{DayOfWeek: 5, StartTime: "08:00", EndTime: "12:00", Active: true},
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].DayOfWeek)

	listed, err := NewListWeeklySchedule(f.repo).Execute(ctx, f.barber.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestSetWeeklySchedule_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewSetWeeklySchedule(f.repo, nil)

	_, err := uc.Execute(ctx, f.admin.ID, f.barber.ID, []DayInput{
		{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00", Active: true},
	})
	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "end_time", ve.Field)

	_, err = uc.Execute(ctx, f.admin.ID, f.admin.ID, week())
	assert.True(t, httperr.IsBusiness(err, "barber_not_found"))

	// nothing was written by the failed calls
	var n int64
	require.NoError(t, f.db.Model(&models.BarberSchedule{}).Count(&n).Error)
	assert.Zero(t, n)
}

// ======================================================
// TIME OFF
// ======================================================

func TestCreateTimeOff_RejectsOverlap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCreateTimeOff(f.repo, nil)

	off, err := uc.Execute(ctx, f.barber.ID, f.barber.ID, TimeOffInput{
		StartDate: "2025-06-10", EndDate: "2025-06-12", Reason: " holiday ",
	})
	require.NoError(t, err)
	assert.NotZero(t, off.ID)
	assert.Equal(t, "holiday", off.Reason)

	_, err = uc.Execute(ctx, f.barber.ID, f.barber.ID, TimeOffInput{StartDate: "2025-06-12", EndDate: "2025-06-14"})
	assert.True(t, httperr.IsConflict(err, "time_off_overlap"))

	// the day after the range is free
	_, err = uc.Execute(ctx, f.barber.ID, f.barber.ID, TimeOffInput{StartDate: "2025-06-13", EndDate: "2025-06-13"})
	assert.NoError(t, err)

	_, err = uc.Execute(ctx, f.barber.ID, f.barber.ID, TimeOffInput{StartDate: "2025-06-20", EndDate: "2025-06-19"})
	var ve httperr.ValidationError
	assert.ErrorAs(t, err, &ve)

	list, err := NewListTimeOff(f.repo).Execute(ctx, f.barber.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteTimeOff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	other := testutil.User(t, f.db, models.RoleBarber)

	off, err := NewCreateTimeOff(f.repo, nil).Execute(ctx, f.barber.ID, f.barber.ID, TimeOffInput{
		StartDate: "2025-06-10", EndDate: "2025-06-10",
	})
	require.NoError(t, err)

	uc := NewDeleteTimeOff(f.repo, nil)

	// another barber cannot remove it
	err = uc.Execute(ctx, other.ID, other.ID, off.ID)
	assert.True(t, httperr.IsBusiness(err, "time_off_not_found"))

	require.NoError(t, uc.Execute(ctx, f.barber.ID, f.barber.ID, off.ID))

	err = uc.Execute(ctx, f.barber.ID, f.barber.ID, off.ID)
	assert.True(t, httperr.IsBusiness(err, "time_off_not_found"))
}

// ======================================================
// AVAILABILITY
// ======================================================

func (f *fixture) seedWeek(t *testing.T) {
	t.Helper()
	_, err := NewSetWeeklySchedule(f.repo, nil).Execute(context.Background(), f.admin.ID, f.barber.ID, week())
	require.NoError(t, err)
}

func TestCheckAvailability(t *testing.T) {
	f := newFixture(t)
	f.seedWeek(t)
	ctx := context.Background()

	customer := testutil.User(t, f.db, models.RoleCustomer)
	service := testutil.Service(t, f.db, 30, "100")
	require.NoError(t, f.db.Create(&models.Booking{
		CustomerID:  customer.ID,
		BarberID:    f.barber.ID,
		ServiceID:   service.ID,
		BookingDate: "2025-06-09",
		StartTime:   time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2025, 6, 9, 10, 30, 0, 0, time.UTC),
		Status:      "confirmed",
	}).Error)
	require.NoError(t, f.db.Create(&models.BarberTimeOff{
		BarberID: f.barber.ID, StartDate: "2025-06-17", EndDate: "2025-06-17",
	}).Error)

	uc := NewCheckAvailability(f.repo, timezone.Fixed(now))

	cases := []struct {
		date, start, end string
		reason           string
	}{
		{"2025-06-09", "09:00", "09:30", ""},
		{"2025-06-09", "10:15", "10:45", "time_conflict"},
		{"2025-06-09", "10:30", "11:00", ""},
		{"2025-06-09", "12:30", "13:00", "on_break"},
		{"2025-06-09", "16:45", "17:15", "outside_working_hours"},
		{"2025-06-11", "10:00", "10:30", "no_schedule"},
		{"2025-06-17", "10:00", "10:30", "time_off"},
	}
	for _, tc := range cases {
		res, err := uc.Execute(ctx, CheckAvailabilityInput{
			BarberID: f.barber.ID, Date: tc.date, Start: tc.start, End: tc.end,
		})
		require.NoError(t, err)
		assert.Equal(t, tc.reason == "", res.Bookable, "%s %s", tc.date, tc.start)
		assert.Equal(t, tc.reason, res.Reason, "%s %s", tc.date, tc.start)
	}

	_, err := uc.Execute(ctx, CheckAvailabilityInput{BarberID: f.barber.ID, Date: "2025-06-09", Start: "9h", End: "10:00"})
	var ve httperr.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestGetAvailability_FreeSlots(t *testing.T) {
	f := newFixture(t)
	f.seedWeek(t)
	ctx := context.Background()

	service := testutil.Service(t, f.db, 60, "100")
	services := repository.NewBookingGormRepository(f.db)

	// Tuesday 10:00-14:00, nothing booked
	uc := NewGetAvailability(f.repo, services, timezone.Fixed(now))
	slots, err := uc.Execute(ctx, GetAvailabilityInput{BarberID: f.barber.ID, ServiceID: service.ID, Date: "2025-06-10"})
	require.NoError(t, err)
	require.Len(t, slots, 4)
	assert.Equal(t, "10:00", slots[0].Start)
	assert.Equal(t, "14:00", slots[3].End)

	// slots already started are hidden
	late := NewGetAvailability(f.repo, services, timezone.Fixed(time.Date(2025, 6, 10, 11, 30, 0, 0, time.UTC)))
	slots, err = late.Execute(ctx, GetAvailabilityInput{BarberID: f.barber.ID, ServiceID: service.ID, Date: "2025-06-10"})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "12:00", slots[0].Start)

	slots, err = uc.Execute(ctx, GetAvailabilityInput{BarberID: f.barber.ID, ServiceID: service.ID, Date: "2025-06-11"})
	require.NoError(t, err)
	assert.Empty(t, slots)

	_, err = uc.Execute(ctx, GetAvailabilityInput{BarberID: f.barber.ID, ServiceID: 999, Date: "2025-06-10"})
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

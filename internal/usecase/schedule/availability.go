package schedule

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ServiceFinder loads catalog services.
type ServiceFinder interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
}

// loadDay gathers what the gate needs for one barber and calendar day.
func loadDay(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	date time.Time,
) (domain.Day, error) {

	if _, err := repo.GetBarber(ctx, barberID); err != nil {
		return domain.Day{}, notFound(err)
	}

	s, err := repo.GetSchedule(ctx, barberID, int(date.Weekday()))
	if err != nil {
		return domain.Day{}, err
	}

	iso := date.Format(domain.DateLayout)
	offs, err := repo.ListTimeOffsBetween(ctx, barberID, iso, iso)
	if err != nil {
		return domain.Day{}, err
	}

	day := domain.DayOf(date)
	bookings, err := repo.ListActiveBookings(ctx, barberID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return domain.Day{}, err
	}

	return domain.Day{
		Schedule: s,
		TimeOffs: offs,
		Bookings: domain.BookingIntervals(bookings),
	}, nil
}

// ======================================================
// CHECK AVAILABILITY
// ======================================================

type CheckAvailabilityInput struct {
	BarberID uint
	Date     string // YYYY-MM-DD
	Start    string // HH:MM
	End      string // HH:MM
}

type Availability struct {
	Bookable bool   `json:"bookable"`
	Reason   string `json:"reason,omitempty"`
}

type CheckAvailability struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewCheckAvailability(repo domain.Repository, clock timezone.Clock) *CheckAvailability {
	return &CheckAvailability{repo: repo, clock: clock}
}

func (uc *CheckAvailability) Execute(ctx context.Context, in CheckAvailabilityInput) (*Availability, error) {
	date, err := domain.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, err
	}
	if _, err := domain.ParseClock("start", in.Start); err != nil {
		return nil, err
	}
	if _, err := domain.ParseClock("end", in.End); err != nil {
		return nil, err
	}

	day, err := loadDay(ctx, uc.repo, in.BarberID, date)
	if err != nil {
		return nil, err
	}

	reason := domain.Check(day, domain.ClockOn(date, in.Start), domain.ClockOn(date, in.End))
	return &Availability{Bookable: reason == "", Reason: string(reason)}, nil
}

// ======================================================
// FREE SLOTS
// ======================================================

type GetAvailabilityInput struct {
	BarberID  uint
	ServiceID uint
	Date      string // YYYY-MM-DD
}

type GetAvailability struct {
	repo     domain.Repository
	services ServiceFinder
	clock    timezone.Clock
}

func NewGetAvailability(repo domain.Repository, services ServiceFinder, clock timezone.Clock) *GetAvailability {
	return &GetAvailability{repo: repo, services: services, clock: clock}
}

// Execute lists the free slots of the service's length on that day. Slots
// already in the past are left out.
func (uc *GetAvailability) Execute(ctx context.Context, in GetAvailabilityInput) ([]domain.TimeSlot, error) {
	date, err := domain.ParseDate(in.Date, uc.clock.Location())
	if err != nil {
		return nil, err
	}

	service, err := uc.services.GetService(ctx, in.ServiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !service.Active) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}

	day, err := loadDay(ctx, uc.repo, in.BarberID, date)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(service.DurationMin) * time.Minute
	return domain.FreeSlots(day, date, duration, uc.clock()), nil
}

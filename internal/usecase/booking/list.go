package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// scope restricts a listing to what the actor may see. Admins may narrow it
// to one barber.
func scope(actor domain.Actor, barberID uint) (domain.ListFilter, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return domain.ListFilter{BarberID: barberID}, nil
	case models.RoleBarber:
		return domain.ListFilter{BarberID: actor.ID}, nil
	case models.RoleCustomer:
		return domain.ListFilter{CustomerID: actor.ID}, nil
	}
	return domain.ListFilter{}, httperr.ErrForbidden("unknown_role")
}

type ListBookingsByDate struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListBookingsByDate(repo domain.Repository, clock timezone.Clock) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo, clock: clock}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	actor domain.Actor,
	barberID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	filter, err := scope(actor, barberID)
	if err != nil {
		return nil, err
	}

	loc := uc.clock.Location()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, filter, start, end)
	if err != nil {
		return nil, err
	}
	return dto.BookingList(bookings), nil
}

type ListBookingsByMonth struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListBookingsByMonth(repo domain.Repository, clock timezone.Clock) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo, clock: clock}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	actor domain.Actor,
	barberID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrValidation("month", "must be between 1 and 12")
	}

	filter, err := scope(actor, barberID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.clock.Location())
	end := start.AddDate(0, 1, 0)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, filter, start, end)
	if err != nil {
		return nil, err
	}
	return dto.BookingList(bookings), nil
}

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

// Execute returns the booking with its allowed next statuses. Bookings the
// actor may not see are reported as not found.
func (uc *GetBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) (*models.Booking, []domain.Status, error) {

	b, err := uc.repo.GetBooking(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, httperr.ErrBusiness("booking_not_found")
	}
	if err != nil {
		return nil, nil, err
	}
	if !domain.CanView(b, actor) {
		return nil, nil, httperr.ErrBusiness("booking_not_found")
	}

	return b, domain.AllowedTransitions(domain.Status(b.Status)), nil
}

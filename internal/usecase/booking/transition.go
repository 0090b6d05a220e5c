package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type TransitionInput struct {
	Actor     domain.Actor
	BookingID uint
	Status    string
	Reason    string
}

type TransitionBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute moves a booking through the state machine under a row lock.
// Reinstating a cancelled booking re-checks that its slot is still free.
func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Booking, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var b *models.Booking

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		b, err = tx.LockBooking(ctx, in.BookingID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("booking_not_found")
		}
		if err != nil {
			return err
		}

		if !domain.CanView(b, in.Actor) {
			return httperr.ErrBusiness("booking_not_found")
		}

		from := domain.Status(b.Status)
		if err := domain.Transition(b, to, in.Actor, in.Reason, uc.clock()); err != nil {
			return err
		}

		if from == domain.StatusCancelled {
			if err := assertBookable(ctx, tx.Schedules(), uc.clock.Location(), b.BarberID, b.StartTime, b.EndTime, b.ID); err != nil {
				return err
			}
		}

		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.ID,
		Action:   "booking_" + b.Status,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]string{"reason": b.CancellationReason},
	})

	return b, nil
}

package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves the booking to the requested status and sets or clears the
// fields that go with it. On error the booking is left untouched.
func Transition(
	b *models.Booking,
	to Status,
	actor Actor,
	reason string,
	now time.Time,
) error {
	if !to.IsValid() {
		return httperr.ErrValidation("status", "unknown booking status")
	}

	from := Status(b.Status)
	if !CanTransition(from, to) {
		return httperr.ErrInvalidTransition(string(from), string(to))
	}

	if err := Authorize(b, to, actor); err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if to == StatusCancelled && actor.IsAdmin() && reason == "" {
		return httperr.ErrValidation("cancellation_reason", "a cancellation reason is required")
	}

	switch to {
	case StatusCancelled:
		cancel(b, actor.ID, reason, now)
	case StatusCompleted:
		b.CompletedAt = &now
	}

	if from == StatusCancelled {
		b.CancellationReason = ""
		b.CancelledBy = nil
		b.CancelledAt = nil
	}

	b.Status = string(to)
	return nil
}

func cancel(b *models.Booking, by uint, reason string, now time.Time) {
	b.CancellationReason = reason
	b.CancelledBy = &by
	b.CancelledAt = &now
}

// ValidateInterval checks that a booking ends after it starts.
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrValidation("end_time", "must be after start_time")
	}
	return nil
}

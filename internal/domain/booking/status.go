package booking

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending    Status = models.BookingPending
	StatusConfirmed  Status = models.BookingConfirmed
	StatusInProgress Status = models.BookingInProgress
	StatusCompleted  Status = models.BookingCompleted
	StatusCancelled  Status = models.BookingCancelled
)

// transitions lists, per status, the statuses a booking may move to.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {StatusConfirmed},
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// ParseStatus turns a raw status into a Status, rejecting unknown values.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.IsValid() {
		return "", httperr.ErrValidation("status", "unknown booking status")
	}
	return s, nil
}

// AllowedTransitions returns the statuses reachable from s.
func AllowedTransitions(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is in the table. Same-status moves never are.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal is true for statuses with no forward transition. cancelled is
// not terminal because of reinstatement.
func IsTerminal(s Status) bool {
	return len(transitions[s]) == 0
}

// IsActive reports whether a booking in status s holds its time slot.
func IsActive(s Status) bool {
	return s != StatusCancelled
}

func InitialStatus() Status {
	return StatusPending
}

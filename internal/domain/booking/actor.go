package booking

import (
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Actor is the authenticated user driving a transition.
type Actor struct {
	ID   uint
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// barberMoves are the transitions the assigned barber may perform.
var barberMoves = map[Status]map[Status]bool{
	StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:  {StatusInProgress: true, StatusCancelled: true},
	StatusInProgress: {StatusCompleted: true, StatusCancelled: true},
	StatusCancelled:  {StatusConfirmed: true},
}

// Authorize checks that the actor may move b from its current status to to.
// The table check runs before this; Authorize only decides on permissions.
func Authorize(b *models.Booking, to Status, actor Actor) error {
	from := Status(b.Status)

	switch actor.Role {
	case models.RoleAdmin:
		return nil

	case models.RoleBarber:
		if b.BarberID != actor.ID {
			return httperr.ErrForbidden("not_assigned_barber")
		}
		if !barberMoves[from][to] {
			return httperr.ErrForbidden("transition_not_allowed_for_role")
		}
		return nil

	case models.RoleCustomer:
		if b.CustomerID != actor.ID {
			return httperr.ErrForbidden("not_booking_owner")
		}
		if to == StatusCancelled && (from == StatusPending || from == StatusConfirmed) {
			return nil
		}
		return httperr.ErrForbidden("transition_not_allowed_for_role")
	}

	return httperr.ErrForbidden("unknown_role")
}

// CanView reports whether the actor may read the booking.
func CanView(b *models.Booking, actor Actor) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleBarber:
		return b.BarberID == actor.ID
	case models.RoleCustomer:
		return b.CustomerID == actor.ID
	}
	return false
}

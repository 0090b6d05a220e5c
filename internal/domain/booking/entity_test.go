package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	now      = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)
	admin    = Actor{ID: 1, Role: models.RoleAdmin}
	barber   = Actor{ID: 2, Role: models.RoleBarber}
	customer = Actor{ID: 3, Role: models.RoleCustomer}
)

func newBooking(status Status) *models.Booking {
	return &models.Booking{
		ID:         10,
		CustomerID: customer.ID,
		BarberID:   barber.ID,
		Status:     string(status),
	}
}

func TestTransition_ScenarioD_PendingToCompletedRejected(t *testing.T) {
	b := newBooking(StatusPending)

	err := Transition(b, StatusCompleted, admin, "", now)

	var ite httperr.InvalidTransitionError
	require.ErrorAs(t, err, &ite)
	assert.Equal(t, "pending", ite.From)
	assert.Equal(t, "completed", ite.To)
	assert.Equal(t, string(StatusPending), b.Status)
	assert.Nil(t, b.CompletedAt)
}

func TestTransition_HappyPath(t *testing.T) {
	b := newBooking(StatusPending)

	require.NoError(t, Transition(b, StatusConfirmed, barber, "", now))
	require.NoError(t, Transition(b, StatusInProgress, barber, "", now))
	require.NoError(t, Transition(b, StatusCompleted, barber, "", now))

	assert.Equal(t, string(StatusCompleted), b.Status)
	require.NotNil(t, b.CompletedAt)
	assert.True(t, b.CompletedAt.Equal(now))
}

func TestTransition_CompletedIsTerminal(t *testing.T) {
	for _, to := range allStatuses {
		b := newBooking(StatusCompleted)
		err := Transition(b, to, admin, "reason", now)

		var ite httperr.InvalidTransitionError
		assert.ErrorAs(t, err, &ite, "completed -> %s", to)
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	b := newBooking(StatusPending)

	err := Transition(b, Status("archived"), admin, "", now)

	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "status", ve.Field)
}

func TestTransition_AdminCancelNeedsReason(t *testing.T) {
	b := newBooking(StatusConfirmed)

	err := Transition(b, StatusCancelled, admin, "   ", now)

	var ve httperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "cancellation_reason", ve.Field)
	assert.Equal(t, string(StatusConfirmed), b.Status)
}

func TestTransition_CancelThenReinstateClearsFields(t *testing.T) {
	b := newBooking(StatusConfirmed)

	require.NoError(t, Transition(b, StatusCancelled, admin, "customer called in sick", now))
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, "customer called in sick", b.CancellationReason)
	require.NotNil(t, b.CancelledBy)
	assert.Equal(t, admin.ID, *b.CancelledBy)
	require.NotNil(t, b.CancelledAt)

	require.NoError(t, Transition(b, StatusConfirmed, admin, "", now.Add(time.Hour)))
	assert.Equal(t, string(StatusConfirmed), b.Status)
	assert.Empty(t, b.CancellationReason)
	assert.Nil(t, b.CancelledBy)
	assert.Nil(t, b.CancelledAt)
}

func TestTransition_CustomerMayCancelWithoutReason(t *testing.T) {
	b := newBooking(StatusPending)

	require.NoError(t, Transition(b, StatusCancelled, customer, "", now))
	assert.Equal(t, customer.ID, *b.CancelledBy)
}

func TestTransition_Permissions(t *testing.T) {
	cases := []struct {
		name  string
		from  Status
		to    Status
		actor Actor
		code  string
	}{
		{"customer confirms", StatusPending, StatusConfirmed, customer, "transition_not_allowed_for_role"},
		{"customer cancels in progress", StatusInProgress, StatusCancelled, customer, "transition_not_allowed_for_role"},
		{"customer reinstates", StatusCancelled, StatusConfirmed, customer, "transition_not_allowed_for_role"},
		{"other customer cancels", StatusPending, StatusCancelled, Actor{ID: 99, Role: models.RoleCustomer}, "not_booking_owner"},
		{"other barber confirms", StatusPending, StatusConfirmed, Actor{ID: 98, Role: models.RoleBarber}, "not_assigned_barber"},
		{"unknown role", StatusPending, StatusConfirmed, Actor{ID: 2, Role: "guest"}, "unknown_role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBooking(tc.from)

			err := Transition(b, tc.to, tc.actor, "x", now)

			var fe httperr.ForbiddenError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.code, fe.Code)
			assert.Equal(t, string(tc.from), b.Status)
		})
	}
}

func TestTransition_TableCheckedBeforePermissions(t *testing.T) {
	b := newBooking(StatusCompleted)

	err := Transition(b, StatusCancelled, Actor{ID: 99, Role: models.RoleCustomer}, "", now)

	var ite httperr.InvalidTransitionError
	assert.ErrorAs(t, err, &ite)
}

func TestCanView(t *testing.T) {
	b := newBooking(StatusPending)

	assert.True(t, CanView(b, admin))
	assert.True(t, CanView(b, barber))
	assert.True(t, CanView(b, customer))
	assert.False(t, CanView(b, Actor{ID: 50, Role: models.RoleCustomer}))
	assert.False(t, CanView(b, Actor{ID: 51, Role: models.RoleBarber}))
}

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, ValidateInterval(now, now.Add(time.Minute)))
	assert.Error(t, ValidateInterval(now, now))
}

package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Log(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func TestDispatcher_DrainsOnClose(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec)

	for i := 0; i < 10; i++ {
		d.Dispatch(Event{Action: "booking_created"})
	}
	d.Close()
	d.Close()

	assert.Len(t, rec.events, 10)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
	d.Close()
}

func TestLogger_WritesRow(t *testing.T) {
	db := testutil.NewDB(t)
	userID, entityID := uint(4), uint(9)

	err := New(db).Log(context.Background(), Event{
		UserID:   &userID,
		Action:   "discount_redeemed",
		Entity:   "booking",
		EntityID: &entityID,
		Metadata: map[string]string{"code": "SAVE10"},
	})
	require.NoError(t, err)

	var row models.AuditLog
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, "discount_redeemed", row.Action)
	assert.JSONEq(t, `{"code":"SAVE10"}`, row.Metadata)
	assert.Equal(t, entityID, *row.EntityID)
}

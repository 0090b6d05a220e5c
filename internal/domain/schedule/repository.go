package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// Transaction runs fn with a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Barber --------
	GetBarber(ctx context.Context, barberID uint) (*models.User, error)
	// LockBarber serialises schedule writes for one barber.
	LockBarber(ctx context.Context, barberID uint) error

	// -------- Weekly schedule --------
	// GetSchedule returns nil, nil when the barber has no row for weekday.
	GetSchedule(ctx context.Context, barberID uint, weekday int) (*models.BarberSchedule, error)
	// LockSchedule is GetSchedule holding a row lock until the transaction ends.
	LockSchedule(ctx context.Context, barberID uint, weekday int) (*models.BarberSchedule, error)
	ListSchedules(ctx context.Context, barberID uint) ([]models.BarberSchedule, error)
	ReplaceSchedules(ctx context.Context, barberID uint, days []models.BarberSchedule) error

	// -------- Time off --------
	ListTimeOffs(ctx context.Context, barberID uint) ([]models.BarberTimeOff, error)
	// ListTimeOffsBetween returns ranges touching [from, to], both YYYY-MM-DD.
	ListTimeOffsBetween(ctx context.Context, barberID uint, from, to string) ([]models.BarberTimeOff, error)
	CreateTimeOff(ctx context.Context, off *models.BarberTimeOff) error
	DeleteTimeOff(ctx context.Context, barberID, id uint) (bool, error)

	// -------- Bookings --------
	// ListActiveBookings returns non-cancelled bookings of the barber starting in [start, end).
	ListActiveBookings(ctx context.Context, barberID uint, start, end time.Time) ([]models.Booking, error)
}

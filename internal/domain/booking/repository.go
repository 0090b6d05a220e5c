package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ListFilter narrows a period listing to a barber and/or a customer.
// Zero ids are ignored.
type ListFilter struct {
	BarberID   uint
	CustomerID uint
}

type Repository interface {
	// Transaction runs fn with a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// Discounts and Schedules share the repository's connection or transaction.
	Discounts() discount.Repository
	Schedules() schedule.Repository

	// -------- Catalog / users --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)
	LockBooking(ctx context.Context, id uint) (*models.Booking, error)
	UpdateBooking(ctx context.Context, b *models.Booking) error

	ListBookingsForPeriod(
		ctx context.Context,
		filter ListFilter,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}

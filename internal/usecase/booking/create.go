package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	discountdomain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	discountuc "github.com/BruksfildServices01/barber-booking/internal/usecase/discount"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CreateBookingInput struct {
	Actor domain.Actor

	// CustomerID is ignored for customers, who always book for themselves.
	CustomerID uint
	BarberID   uint
	ServiceID  uint

	Date  string // YYYY-MM-DD
	Time  string // HH:MM
	Notes string

	DiscountCode string
}

type CreateBookingOutput struct {
	Booking *models.Booking        `json:"booking"`
	Usage   *models.DiscountUsage `json:"discount_usage,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo       domain.Repository
	catalog    *discountuc.Catalog
	ledger     *discountuc.Ledger
	audit      *audit.Dispatcher
	clock      timezone.Clock
	minAdvance time.Duration
}

func NewCreateBooking(
	repo domain.Repository,
	catalog *discountuc.Catalog,
	ledger *discountuc.Ledger,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	minAdvance time.Duration,
) *CreateBooking {
	return &CreateBooking{
		repo:       repo,
		catalog:    catalog,
		ledger:     ledger,
		audit:      audit,
		clock:      clock,
		minAdvance: minAdvance,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*CreateBookingOutput, error) {

	// --------------------------------------------------
	// 1. Who books for whom
	// --------------------------------------------------
	switch in.Actor.Role {
	case models.RoleCustomer:
		in.CustomerID = in.Actor.ID
	case models.RoleBarber:
		if in.BarberID != in.Actor.ID {
			return nil, httperr.ErrForbidden("not_assigned_barber")
		}
	case models.RoleAdmin:
	default:
		return nil, httperr.ErrForbidden("unknown_role")
	}
	if in.CustomerID == 0 {
		return nil, httperr.ErrValidation("customer_id", "is required")
	}

	// --------------------------------------------------
	// 2. Date / time in the shop timezone
	// --------------------------------------------------
	now := uc.clock()
	start, err := time.ParseInLocation(
		schedule.DateLayout+" "+schedule.ClockLayout,
		in.Date+" "+in.Time,
		now.Location(),
	)
	if err != nil {
		return nil, httperr.ErrValidation("time", "date must be YYYY-MM-DD and time HH:MM")
	}

	// --------------------------------------------------
	// 3. Minimum advance (staff may book anything in the future)
	// --------------------------------------------------
	earliest := now
	if in.Actor.Role == models.RoleCustomer {
		earliest = now.Add(uc.minAdvance)
	}
	if start.Before(earliest) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Service, barber and customer
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !service.Active) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}

	if err := uc.requireRole(ctx, in.BarberID, models.RoleBarber, "barber_not_found"); err != nil {
		return nil, err
	}
	if err := uc.requireRole(ctx, in.CustomerID, models.RoleCustomer, "customer_not_found"); err != nil {
		return nil, err
	}

	end := start.Add(time.Duration(service.DurationMin) * time.Minute)
	if err := domain.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Discount code (preview lookup; redeemed below)
	// --------------------------------------------------
	var discount *models.Discount
	if code := strings.TrimSpace(in.DiscountCode); code != "" {
		discount, err = uc.catalog.ByCode(ctx, code)
		if err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 6. Availability + insert + redemption, atomically
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID:  in.CustomerID,
		BarberID:    in.BarberID,
		ServiceID:   service.ID,
		BookingDate: start.Format(schedule.DateLayout),
		StartTime:   start,
		EndTime:     end,
		TotalPrice:  service.Price,
		Status:      string(domain.InitialStatus()),
		Notes:       in.Notes,
	}
	var usage *models.DiscountUsage

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := assertBookable(ctx, tx.Schedules(), uc.clock.Location(), in.BarberID, start, end, 0); err != nil {
			return err
		}

		if err := tx.CreateBooking(ctx, b); err != nil {
			return err
		}

		if discount == nil {
			return nil
		}

		usage, err = uc.ledger.Redeem(ctx, tx.Discounts(), discountuc.RedeemInput{
			DiscountID: discount.ID,
			CustomerID: in.CustomerID,
			BookingID:  b.ID,
			Target: discountdomain.Target{
				ServiceID:  service.ID,
				CategoryID: service.CategoryRef(),
				BarberID:   in.BarberID,
			},
			OriginalAmount: service.Price,
			Now:            now,
		})
		if err != nil {
			return err
		}

		b.TotalPrice = usage.FinalAmount
		return tx.UpdateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Cache + audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	if usage != nil {
		uc.catalog.Invalidate(ctx, discount.Code)

		uc.audit.Dispatch(audit.Event{
			UserID:   &in.Actor.ID,
			Action:   "discount_redeemed",
			Entity:   "discount",
			EntityID: &discount.ID,
			Metadata: map[string]any{
				"booking_id":      b.ID,
				"discount_amount": usage.DiscountAmount.String(),
			},
		})
	}

	return &CreateBookingOutput{Booking: b, Usage: usage}, nil
}

func (uc *CreateBooking) requireRole(ctx context.Context, id uint, role models.Role, code string) error {
	u, err := uc.repo.GetUser(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && u.Role != role) {
		return httperr.ErrBusiness(code)
	}
	return err
}

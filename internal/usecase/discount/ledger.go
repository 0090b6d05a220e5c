package discount

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/money"
)

// ======================================================
// INPUT
// ======================================================

type RedeemInput struct {
	DiscountID     uint
	CustomerID     uint
	BookingID      uint
	Target         domain.Target
	OriginalAmount decimal.Decimal
	Now            time.Time
}

// ======================================================
// LEDGER
// ======================================================

// Ledger commits discount redemptions. It never opens a transaction itself:
// Redeem runs on the repository of the caller's transaction so the usage row
// and the booking are written together.
type Ledger struct {
	precision int32
}

func NewLedger(precision int32) *Ledger {
	return &Ledger{precision: precision}
}

// Redeem re-validates the discount under a row lock, consumes one unit of the
// global and per-customer quotas with conditional updates and records the usage.
func (l *Ledger) Redeem(
	ctx context.Context,
	tx domain.Repository,
	in RedeemInput,
) (*models.DiscountUsage, error) {

	// --------------------------------------------------
	// 1. Lock and reload
	// --------------------------------------------------
	d, err := tx.LockDiscount(ctx, in.DiscountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("discount_not_found")
	}
	if err != nil {
		return nil, err
	}

	grant, err := tx.GetCustomerDiscount(ctx, d.ID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	uses, err := tx.CountCustomerUsages(ctx, d.ID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Re-evaluate
	// --------------------------------------------------
	res := domain.Evaluate(domain.Input{
		Discount:     d,
		Target:       in.Target,
		Grant:        grant,
		CustomerUses: uses,
		OrderAmount:  in.OriginalAmount,
		Now:          in.Now,
		Precision:    l.precision,
	})
	if !res.IsEligible {
		if scope := res.Reason.QuotaScope(); scope != "" {
			return nil, httperr.ErrQuotaExceeded(scope)
		}
		return nil, httperr.ErrNotEligible(res.Message)
	}

	// --------------------------------------------------
	// 3. Global quota
	// --------------------------------------------------
	ok, err := tx.IncrementUsedCount(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrQuotaExceeded("global")
	}

	// --------------------------------------------------
	// 4. Per-customer quota
	// --------------------------------------------------
	if grant == nil {
		grant, err = tx.EnsureCustomerDiscount(ctx, d.ID, in.CustomerID, uses)
		if err != nil {
			return nil, err
		}
	}

	ok, err = tx.IncrementCustomerUsedCount(ctx, grant.ID, domain.CustomerLimit(d.CustomerUsageLimit, grant))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrQuotaExceeded("customer")
	}

	// --------------------------------------------------
	// 5. Usage record
	// --------------------------------------------------
	usage := &models.DiscountUsage{
		DiscountID:     d.ID,
		CustomerID:     in.CustomerID,
		BookingID:      in.BookingID,
		OriginalAmount: money.Round(in.OriginalAmount, l.precision),
		DiscountAmount: res.DiscountAmount,
		FinalAmount:    res.FinalAmount,
		UsedAt:         in.Now,
	}
	if err := tx.CreateUsage(ctx, usage); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrConflict("booking_already_discounted")
		}
		return nil, err
	}

	return usage, nil
}

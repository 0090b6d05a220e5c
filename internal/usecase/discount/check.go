package discount

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ServiceFinder loads catalog services.
type ServiceFinder interface {
	GetService(ctx context.Context, id uint) (*models.Service, error)
}

type CheckDiscountInput struct {
	Code       string
	ServiceID  uint
	BarberID   uint
	CustomerID uint
	// OrderAmount defaults to the service price when not set.
	OrderAmount decimal.NullDecimal
}

// CheckDiscount previews a discount for a prospective booking. It never
// touches the counters.
type CheckDiscount struct {
	repo      domain.Repository
	catalog   *Catalog
	services  ServiceFinder
	clock     timezone.Clock
	precision int32
}

func NewCheckDiscount(
	repo domain.Repository,
	catalog *Catalog,
	services ServiceFinder,
	clock timezone.Clock,
	precision int32,
) *CheckDiscount {
	return &CheckDiscount{
		repo:      repo,
		catalog:   catalog,
		services:  services,
		clock:     clock,
		precision: precision,
	}
}

func (uc *CheckDiscount) Execute(
	ctx context.Context,
	in CheckDiscountInput,
) (*domain.Eligibility, error) {

	d, err := uc.catalog.ByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}

	service, err := uc.services.GetService(ctx, in.ServiceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if err != nil {
		return nil, err
	}

	amount := service.Price
	if in.OrderAmount.Valid {
		if in.OrderAmount.Decimal.IsNegative() {
			return nil, httperr.ErrValidation("order_amount", "must not be negative")
		}
		amount = in.OrderAmount.Decimal
	}

	grant, err := uc.repo.GetCustomerDiscount(ctx, d.ID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	uses, err := uc.repo.CountCustomerUsages(ctx, d.ID, in.CustomerID)
	if err != nil {
		return nil, err
	}

	res := domain.Evaluate(domain.Input{
		Discount: d,
		Target: domain.Target{
			ServiceID:  service.ID,
			CategoryID: service.CategoryRef(),
			BarberID:   in.BarberID,
		},
		Grant:        grant,
		CustomerUses: uses,
		OrderAmount:  amount,
		Now:          uc.clock(),
		Precision:    uc.precision,
	})
	return &res, nil
}

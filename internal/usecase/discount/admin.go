package discount

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// generated codes are retried this many times on collision
const codeAttempts = 5

// ======================================================
// INPUT
// ======================================================

// DefinitionInput is the editable part of a discount.
type DefinitionInput struct {
	Code               string
	Name               string
	Description        string
	DiscountType       string
	DiscountValue      decimal.Decimal
	MaxDiscountAmount  decimal.NullDecimal
	MinOrderAmount     decimal.NullDecimal
	StartDate          time.Time
	EndDate            time.Time
	UsageLimit         *int
	CustomerUsageLimit *int
	IsActive           *bool
	AppliesTo          string
	Applicabilities    []domain.Applicability
}

func (in DefinitionInput) apply(d *models.Discount) {
	d.Code = domain.NormalizeCode(in.Code)
	d.Name = in.Name
	d.Description = in.Description
	d.DiscountType = in.DiscountType
	d.DiscountValue = in.DiscountValue
	d.MaxDiscountAmount = in.MaxDiscountAmount
	d.MinOrderAmount = in.MinOrderAmount
	d.StartDate = in.StartDate
	d.EndDate = in.EndDate
	d.UsageLimit = in.UsageLimit
	d.CustomerUsageLimit = in.CustomerUsageLimit

	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}

	d.AppliesTo = in.AppliesTo
	if d.AppliesTo == "" {
		d.AppliesTo = string(domain.ScopeAll)
	}

	d.Applicabilities = nil
	if domain.Scope(d.AppliesTo) == domain.ScopeSpecific {
		for _, a := range in.Applicabilities {
			d.Applicabilities = append(d.Applicabilities, models.DiscountApplicability{
				ApplicableType: string(a.Kind),
				ApplicableID:   a.ID,
			})
		}
	}
}

// ======================================================
// CREATE
// ======================================================

type CreateDiscount struct {
	repo    domain.Repository
	catalog *Catalog
	audit   *audit.Dispatcher
}

func NewCreateDiscount(repo domain.Repository, catalog *Catalog, audit *audit.Dispatcher) *CreateDiscount {
	return &CreateDiscount{repo: repo, catalog: catalog, audit: audit}
}

func (uc *CreateDiscount) Execute(
	ctx context.Context,
	adminID uint,
	in DefinitionInput,
) (*models.Discount, error) {

	d := &models.Discount{IsActive: true, CreatedBy: &adminID}
	in.apply(d)

	generated := d.Code == ""
	if generated {
		d.Code = domain.GenerateCode()
	}

	if err := domain.ValidateDefinition(d); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		err := uc.repo.CreateDiscount(ctx, d)
		if err == nil {
			break
		}
		if !httperr.IsUniqueViolation(err) {
			return nil, err
		}
		if !generated || attempt == codeAttempts {
			return nil, httperr.ErrConflict("code_taken")
		}

		d.ID = 0
		d.Code = domain.GenerateCode()
		for i := range d.Applicabilities {
			d.Applicabilities[i].ID = 0
			d.Applicabilities[i].DiscountID = 0
		}
	}

	uc.catalog.Invalidate(ctx, d.Code)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "discount_created",
		Entity:   "discount",
		EntityID: &d.ID,
		Metadata: map[string]string{"code": d.Code},
	})

	return d, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateDiscount struct {
	repo    domain.Repository
	catalog *Catalog
	audit   *audit.Dispatcher
}

func NewUpdateDiscount(repo domain.Repository, catalog *Catalog, audit *audit.Dispatcher) *UpdateDiscount {
	return &UpdateDiscount{repo: repo, catalog: catalog, audit: audit}
}

// Execute replaces the definition. used_count and history are kept;
// usage_limit may not drop below what was already redeemed.
func (uc *UpdateDiscount) Execute(
	ctx context.Context,
	adminID uint,
	id uint,
	in DefinitionInput,
) (*models.Discount, error) {

	var (
		updated *models.Discount
		oldCode string
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		d, err := tx.LockDiscount(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("discount_not_found")
		}
		if err != nil {
			return err
		}
		oldCode = d.Code

		if in.IsActive == nil {
			active := d.IsActive
			in.IsActive = &active
		}
		in.apply(d)
		if d.Code == "" {
			d.Code = oldCode
		}

		if err := domain.ValidateDefinition(d); err != nil {
			return err
		}
		if d.UsageLimit != nil && *d.UsageLimit < d.UsedCount {
			return httperr.ErrValidation("usage_limit", "must not be below the number of redemptions already made")
		}

		if err := tx.UpdateDiscount(ctx, d); err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrConflict("code_taken")
			}
			return err
		}

		updated = d
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx, oldCode, updated.Code)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "discount_updated",
		Entity:   "discount",
		EntityID: &updated.ID,
	})

	return updated, nil
}

// ======================================================
// TOGGLE
// ======================================================

type ToggleDiscount struct {
	repo    domain.Repository
	catalog *Catalog
	audit   *audit.Dispatcher
}

func NewToggleDiscount(repo domain.Repository, catalog *Catalog, audit *audit.Dispatcher) *ToggleDiscount {
	return &ToggleDiscount{repo: repo, catalog: catalog, audit: audit}
}

// Execute flips is_active.
func (uc *ToggleDiscount) Execute(
	ctx context.Context,
	adminID uint,
	id uint,
) (*models.Discount, error) {

	var d *models.Discount

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		d, err = tx.LockDiscount(ctx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("discount_not_found")
		}
		if err != nil {
			return err
		}

		d.IsActive = !d.IsActive
		return tx.SetDiscountActive(ctx, d.ID, d.IsActive)
	})
	if err != nil {
		return nil, err
	}

	uc.catalog.Invalidate(ctx, d.Code)

	action := "discount_deactivated"
	if d.IsActive {
		action = "discount_activated"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   action,
		Entity:   "discount",
		EntityID: &d.ID,
	})

	return d, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteDiscount struct {
	repo    domain.Repository
	catalog *Catalog
	audit   *audit.Dispatcher
}

func NewDeleteDiscount(repo domain.Repository, catalog *Catalog, audit *audit.Dispatcher) *DeleteDiscount {
	return &DeleteDiscount{repo: repo, catalog: catalog, audit: audit}
}

// Execute removes a discount that was never redeemed, with its
// applicabilities and grants.
func (uc *DeleteDiscount) Execute(
	ctx context.Context,
	adminID uint,
	id uint,
) error {

	d, err := uc.repo.GetDiscount(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("discount_not_found")
	}
	if err != nil {
		return err
	}

	deleted, err := uc.repo.DeleteUnusedDiscount(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("discount_not_found")
	}
	if err != nil {
		return err
	}
	if !deleted {
		return httperr.ErrConflict("discount_in_use")
	}

	uc.catalog.Invalidate(ctx, d.Code)

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "discount_deleted",
		Entity:   "discount",
		EntityID: &id,
		Metadata: map[string]string{"code": d.Code},
	})

	return nil
}

// ======================================================
// ASSIGN TO CUSTOMER
// ======================================================

type AssignInput struct {
	DiscountID uint
	CustomerID uint
	MaxUsage   *int
	ExpiresAt  *time.Time
}

type AssignToCustomer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignToCustomer(repo domain.Repository, audit *audit.Dispatcher) *AssignToCustomer {
	return &AssignToCustomer{repo: repo, audit: audit}
}

// Execute grants the discount to a customer. An existing grant has its
// max_usage and expires_at replaced; otherwise a new one is inserted with the
// customer's past redemptions as its counter.
func (uc *AssignToCustomer) Execute(
	ctx context.Context,
	adminID uint,
	in AssignInput,
) (*models.CustomerDiscount, error) {

	if in.MaxUsage != nil && *in.MaxUsage < 1 {
		return nil, httperr.ErrValidation("max_usage", "must be at least 1")
	}

	var grant *models.CustomerDiscount

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.LockDiscount(ctx, in.DiscountID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("discount_not_found")
			}
			return err
		}

		ok, err := tx.CustomerExists(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.ErrBusiness("customer_not_found")
		}

		existing, err := tx.GetCustomerDiscount(ctx, in.DiscountID, in.CustomerID)
		if err != nil {
			return err
		}

		if existing != nil {
			existing.MaxUsage = in.MaxUsage
			existing.ExpiresAt = in.ExpiresAt
			grant = existing
			return tx.UpdateCustomerDiscount(ctx, existing)
		}

		uses, err := tx.CountCustomerUsages(ctx, in.DiscountID, in.CustomerID)
		if err != nil {
			return err
		}

		grant = &models.CustomerDiscount{
			DiscountID: in.DiscountID,
			CustomerID: in.CustomerID,
			UsedCount:  uses,
			MaxUsage:   in.MaxUsage,
			ExpiresAt:  in.ExpiresAt,
		}
		return tx.CreateCustomerDiscount(ctx, grant)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "discount_assigned",
		Entity:   "discount",
		EntityID: &in.DiscountID,
		Metadata: map[string]uint{"customer_id": in.CustomerID},
	})

	return grant, nil
}

// ======================================================
// READS
// ======================================================

type ListDiscounts struct {
	repo domain.Repository
}

func NewListDiscounts(repo domain.Repository) *ListDiscounts {
	return &ListDiscounts{repo: repo}
}

func (uc *ListDiscounts) Execute(ctx context.Context, filter domain.ListFilter) ([]models.Discount, error) {
	return uc.repo.ListDiscounts(ctx, filter)
}

type GetDiscount struct {
	repo domain.Repository
}

func NewGetDiscount(repo domain.Repository) *GetDiscount {
	return &GetDiscount{repo: repo}
}

func (uc *GetDiscount) Execute(ctx context.Context, id uint) (*models.Discount, error) {
	d, err := uc.repo.GetDiscount(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("discount_not_found")
	}
	return d, err
}

type ListUsages struct {
	repo domain.Repository
}

func NewListUsages(repo domain.Repository) *ListUsages {
	return &ListUsages{repo: repo}
}

// Execute returns the redemption history of a discount, newest first.
func (uc *ListUsages) Execute(ctx context.Context, discountID uint) ([]models.DiscountUsage, error) {
	if _, err := uc.repo.GetDiscount(ctx, discountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("discount_not_found")
		}
		return nil, err
	}
	return uc.repo.ListUsages(ctx, discountID)
}

package discount

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ListFilter struct {
	Query  string
	Active *bool
}

type Repository interface {
	// Transaction runs fn with a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	// -------- Discount --------
	CreateDiscount(ctx context.Context, d *models.Discount) error
	UpdateDiscount(ctx context.Context, d *models.Discount) error
	GetDiscount(ctx context.Context, id uint) (*models.Discount, error)
	GetDiscountByCode(ctx context.Context, code string) (*models.Discount, error)
	LockDiscount(ctx context.Context, id uint) (*models.Discount, error)
	ListDiscounts(ctx context.Context, filter ListFilter) ([]models.Discount, error)
	SetDiscountActive(ctx context.Context, id uint, active bool) error

	// DeleteUnusedDiscount removes the discount and its applicabilities and
	// grants only while used_count = 0. It reports whether a row was deleted.
	DeleteUnusedDiscount(ctx context.Context, id uint) (bool, error)

	// -------- Quota --------
	// IncrementUsedCount increments used_count only while it is below usage_limit.
	IncrementUsedCount(ctx context.Context, discountID uint) (bool, error)
	// IncrementCustomerUsedCount increments the grant counter only while it is below limit.
	IncrementCustomerUsedCount(ctx context.Context, grantID uint, limit *int) (bool, error)

	// -------- CustomerDiscount --------
	// CustomerExists reports whether id is a user with the customer role.
	CustomerExists(ctx context.Context, id uint) (bool, error)
	GetCustomerDiscount(ctx context.Context, discountID, customerID uint) (*models.CustomerDiscount, error)
	CreateCustomerDiscount(ctx context.Context, cd *models.CustomerDiscount) error
	UpdateCustomerDiscount(ctx context.Context, cd *models.CustomerDiscount) error
	// EnsureCustomerDiscount inserts a zero-grant row unless one exists and returns the stored row.
	EnsureCustomerDiscount(ctx context.Context, discountID, customerID uint, usedCount int) (*models.CustomerDiscount, error)

	// -------- Usage --------
	CountCustomerUsages(ctx context.Context, discountID, customerID uint) (int, error)
	CreateUsage(ctx context.Context, u *models.DiscountUsage) error
	ListUsages(ctx context.Context, discountID uint) ([]models.DiscountUsage, error)
}

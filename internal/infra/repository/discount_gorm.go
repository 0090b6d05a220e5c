package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type DiscountGormRepository struct {
	db *gorm.DB
}

func NewDiscountGormRepository(db *gorm.DB) *DiscountGormRepository {
	return &DiscountGormRepository{db: db}
}

func (r *DiscountGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&DiscountGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Discount
// --------------------------------------------------

func (r *DiscountGormRepository) CreateDiscount(
	ctx context.Context,
	d *models.Discount,
) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// UpdateDiscount saves the discount columns and replaces its applicabilities.
// Callers run it inside Transaction.
func (r *DiscountGormRepository) UpdateDiscount(
	ctx context.Context,
	d *models.Discount,
) error {
	db := r.db.WithContext(ctx)

	if err := db.Omit(clause.Associations).Save(d).Error; err != nil {
		return err
	}

	if err := db.
		Where("discount_id = ?", d.ID).
		Delete(&models.DiscountApplicability{}).Error; err != nil {
		return err
	}

	if len(d.Applicabilities) == 0 {
		return nil
	}

	for i := range d.Applicabilities {
		d.Applicabilities[i].ID = 0
		d.Applicabilities[i].DiscountID = d.ID
	}
	return db.Create(&d.Applicabilities).Error
}

func (r *DiscountGormRepository) GetDiscount(
	ctx context.Context,
	id uint,
) (*models.Discount, error) {

	var d models.Discount
	if err := r.db.WithContext(ctx).
		Preload("Applicabilities").
		First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DiscountGormRepository) GetDiscountByCode(
	ctx context.Context,
	code string,
) (*models.Discount, error) {

	var d models.Discount
	if err := r.db.WithContext(ctx).
		Preload("Applicabilities").
		Where("code = ?", code).
		First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// LockDiscount reads the discount holding a row lock until the transaction ends.
func (r *DiscountGormRepository) LockDiscount(
	ctx context.Context,
	id uint,
) (*models.Discount, error) {

	var d models.Discount
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&d, id).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("discount_id = ?", id).
		Find(&d.Applicabilities).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DiscountGormRepository) ListDiscounts(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Discount, error) {

	q := r.db.WithContext(ctx).Preload("Applicabilities")

	if s := strings.TrimSpace(filter.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(code) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}
	if filter.Active != nil {
		q = q.Where("is_active = ?", *filter.Active)
	}

	var out []models.Discount
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DiscountGormRepository) SetDiscountActive(
	ctx context.Context,
	id uint,
	active bool,
) error {
	res := r.db.WithContext(ctx).
		Model(&models.Discount{}).
		Where("id = ?", id).
		Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *DiscountGormRepository) DeleteUnusedDiscount(
	ctx context.Context,
	id uint,
) (bool, error) {

	deleted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var d models.Discount
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&d, id).Error; err != nil {
			return err
		}
		if d.UsedCount > 0 {
			return nil
		}

		if err := tx.Where("discount_id = ?", id).Delete(&models.DiscountApplicability{}).Error; err != nil {
			return err
		}
		if err := tx.Where("discount_id = ?", id).Delete(&models.CustomerDiscount{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND used_count = 0", id).Delete(&models.Discount{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected == 1
		return nil
	})

	return deleted, err
}

// --------------------------------------------------
// Quota
// --------------------------------------------------

func (r *DiscountGormRepository) IncrementUsedCount(
	ctx context.Context,
	discountID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Discount{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", discountID).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *DiscountGormRepository) IncrementCustomerUsedCount(
	ctx context.Context,
	grantID uint,
	limit *int,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.CustomerDiscount{}).
		Where("id = ?", grantID)
	if limit != nil {
		q = q.Where("used_count < ?", *limit)
	}

	res := q.UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// CustomerDiscount
// --------------------------------------------------

func (r *DiscountGormRepository) CustomerExists(
	ctx context.Context,
	id uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleCustomer).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DiscountGormRepository) GetCustomerDiscount(
	ctx context.Context,
	discountID uint,
	customerID uint,
) (*models.CustomerDiscount, error) {

	var cd models.CustomerDiscount
	err := r.db.WithContext(ctx).
		Where("discount_id = ? AND customer_id = ?", discountID, customerID).
		First(&cd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cd, nil
}

func (r *DiscountGormRepository) CreateCustomerDiscount(
	ctx context.Context,
	cd *models.CustomerDiscount,
) error {
	return r.db.WithContext(ctx).Create(cd).Error
}

func (r *DiscountGormRepository) UpdateCustomerDiscount(
	ctx context.Context,
	cd *models.CustomerDiscount,
) error {
	return r.db.WithContext(ctx).Save(cd).Error
}

func (r *DiscountGormRepository) EnsureCustomerDiscount(
	ctx context.Context,
	discountID uint,
	customerID uint,
	usedCount int,
) (*models.CustomerDiscount, error) {

	cd := models.CustomerDiscount{
		DiscountID: discountID,
		CustomerID: customerID,
		UsedCount:  usedCount,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "discount_id"}, {Name: "customer_id"}},
			DoNothing: true,
		}).
		Create(&cd).Error; err != nil {
		return nil, err
	}

	var stored models.CustomerDiscount
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("discount_id = ? AND customer_id = ?", discountID, customerID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// --------------------------------------------------
// Usage
// --------------------------------------------------

func (r *DiscountGormRepository) CountCustomerUsages(
	ctx context.Context,
	discountID uint,
	customerID uint,
) (int, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.DiscountUsage{}).
		Where("discount_id = ? AND customer_id = ?", discountID, customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *DiscountGormRepository) CreateUsage(
	ctx context.Context,
	u *models.DiscountUsage,
) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *DiscountGormRepository) ListUsages(
	ctx context.Context,
	discountID uint,
) ([]models.DiscountUsage, error) {

	var out []models.DiscountUsage
	if err := r.db.WithContext(ctx).
		Where("discount_id = ?", discountID).
		Order("used_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*DiscountGormRepository)(nil)

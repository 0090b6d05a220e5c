package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

var now = time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

func TestIncrementUsedCount_StopsAtLimit(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, func(d *models.Discount) { d.UsageLimit = testutil.IntPtr(2) })

	for i := 0; i < 2; i++ {
		ok, err := repo.IncrementUsedCount(ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := repo.IncrementUsedCount(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	stored, err := repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.UsedCount)
}

func TestIncrementUsedCount_Unlimited(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, nil)

	for i := 0; i < 5; i++ {
		ok, err := repo.IncrementUsedCount(ctx, d.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestIncrementCustomerUsedCount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, nil)
	customer := testutil.User(t, db, models.RoleCustomer)

	grant, err := repo.EnsureCustomerDiscount(ctx, d.ID, customer.ID, 0)
	require.NoError(t, err)

	ok, err := repo.IncrementCustomerUsedCount(ctx, grant.ID, testutil.IntPtr(1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IncrementCustomerUsedCount(ctx, grant.ID, testutil.IntPtr(1))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.IncrementCustomerUsedCount(ctx, grant.ID, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEnsureCustomerDiscount_KeepsExistingRow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, nil)
	customer := testutil.User(t, db, models.RoleCustomer)

	first, err := repo.EnsureCustomerDiscount(ctx, d.ID, customer.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.UsedCount)

	second, err := repo.EnsureCustomerDiscount(ctx, d.ID, customer.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.UsedCount)

	none, err := repo.GetCustomerDiscount(ctx, d.ID, customer.ID+100)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCreateCustomerDiscount_DuplicatePair(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, nil)
	customer := testutil.User(t, db, models.RoleCustomer)

	require.NoError(t, repo.CreateCustomerDiscount(ctx, &models.CustomerDiscount{DiscountID: d.ID, CustomerID: customer.ID}))

	err := repo.CreateCustomerDiscount(ctx, &models.CustomerDiscount{DiscountID: d.ID, CustomerID: customer.ID})
	assert.True(t, httperr.IsUniqueViolation(err), "got %v", err)
}

func TestDeleteUnusedDiscount(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	customer := testutil.User(t, db, models.RoleCustomer)

	unused := testutil.Discount(t, db, now, func(d *models.Discount) {
		d.AppliesTo = "specific"
		d.Applicabilities = []models.DiscountApplicability{{ApplicableType: "service", ApplicableID: 1}}
	})
	_, err := repo.EnsureCustomerDiscount(ctx, unused.ID, customer.ID, 0)
	require.NoError(t, err)

	deleted, err := repo.DeleteUnusedDiscount(ctx, unused.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var rules, grants int64
	db.Model(&models.DiscountApplicability{}).Where("discount_id = ?", unused.ID).Count(&rules)
	db.Model(&models.CustomerDiscount{}).Where("discount_id = ?", unused.ID).Count(&grants)
	assert.Zero(t, rules)
	assert.Zero(t, grants)

	used := testutil.Discount(t, db, now, func(d *models.Discount) { d.UsedCount = 1 })
	deleted, err = repo.DeleteUnusedDiscount(ctx, used.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.DeleteUnusedDiscount(ctx, 9999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestUpdateDiscount_ReplacesApplicabilities(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, func(d *models.Discount) {
		d.AppliesTo = "specific"
		d.Applicabilities = []models.DiscountApplicability{
			{ApplicableType: "service", ApplicableID: 1},
			{ApplicableType: "barber", ApplicableID: 2},
		}
	})

	d.Name = "Renamed"
	d.IsActive = false
	d.Applicabilities = []models.DiscountApplicability{{ApplicableType: "category", ApplicableID: 3}}

	require.NoError(t, repo.Transaction(ctx, func(tx domain.Repository) error {
		return tx.UpdateDiscount(ctx, d)
	}))

	stored, err := repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
	assert.False(t, stored.IsActive)
	require.Len(t, stored.Applicabilities, 1)
	assert.Equal(t, "category", stored.Applicabilities[0].ApplicableType)
}

func TestListDiscounts_Filters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	testutil.Discount(t, db, now, func(d *models.Discount) { d.Code = "SUMMER25"; d.Name = "Summer" })
	testutil.Discount(t, db, now, func(d *models.Discount) { d.Code = "WINTER"; d.Name = "Winter"; d.IsActive = false })

	all, err := repo.ListDiscounts(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := repo.ListDiscounts(ctx, domain.ListFilter{Query: "summ"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "SUMMER25", found[0].Code)

	inactive := false
	off, err := repo.ListDiscounts(ctx, domain.ListFilter{Active: &inactive})
	require.NoError(t, err)
	require.Len(t, off, 1)
	assert.Equal(t, "WINTER", off[0].Code)
}

func TestSetDiscountActive(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, nil)

	require.NoError(t, repo.SetDiscountActive(ctx, d.ID, false))
	stored, err := repo.GetDiscountByCode(ctx, d.Code)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	assert.ErrorIs(t, repo.SetDiscountActive(ctx, 9999, true), gorm.ErrRecordNotFound)
}

func TestTransaction_RollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewDiscountGormRepository(db)
	ctx := context.Background()

	d := testutil.Discount(t, db, now, nil)
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx domain.Repository) error {
		if _, err := tx.IncrementUsedCount(ctx, d.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.UsedCount)
}

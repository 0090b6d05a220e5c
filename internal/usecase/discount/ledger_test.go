package discount

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/discount"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/testutil"
)

var now = time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	db       *gorm.DB
	repo     *repository.DiscountGormRepository
	ledger   *Ledger
	customer *models.User
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:       db,
		repo:     repository.NewDiscountGormRepository(db),
		ledger:   NewLedger(2),
		customer: testutil.User(t, db, models.RoleCustomer),
	}
}

func (f *fixture) redeem(ctx context.Context, in RedeemInput) (*models.DiscountUsage, error) {
	var usage *models.DiscountUsage
	err := f.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		usage, err = f.ledger.Redeem(ctx, tx, in)
		return err
	})
	return usage, err
}

func redeemInput(discountID, customerID, bookingID uint, amount string) RedeemInput {
	return RedeemInput{
		DiscountID:     discountID,
		CustomerID:     customerID,
		BookingID:      bookingID,
		Target:         domain.Target{ServiceID: 1, BarberID: 2},
		OriginalAmount: dec(amount),
		Now:            now,
	}
}

func TestRedeem_RecordsUsageAndCounters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, func(d *models.Discount) {
		d.MaxDiscountAmount = decimal.NewNullDecimal(dec("5000"))
		d.MinOrderAmount = decimal.NewNullDecimal(dec("50000"))
	})

	usage, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 100, "200000"))
	require.NoError(t, err)
	assert.True(t, usage.DiscountAmount.Equal(dec("5000")))
	assert.True(t, usage.FinalAmount.Equal(dec("195000")))
	assert.True(t, usage.OriginalAmount.Equal(usage.FinalAmount.Add(usage.DiscountAmount)))

	stored, err := f.repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsedCount)

	grant, err := f.repo.GetCustomerDiscount(ctx, d.ID, f.customer.ID)
	require.NoError(t, err)
	require.NotNil(t, grant)
	assert.Equal(t, 1, grant.UsedCount)
	assert.Nil(t, grant.MaxUsage)
}

func TestRedeem_RoundsOriginalToPrecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, nil)

	usage, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 100, "100.005"))
	require.NoError(t, err)
	assert.True(t, usage.OriginalAmount.Equal(dec("100.01")), usage.OriginalAmount.String())
	assert.True(t, usage.DiscountAmount.Equal(dec("10")), usage.DiscountAmount.String())
	assert.True(t, usage.FinalAmount.Equal(dec("90.01")), usage.FinalAmount.String())

	var stored models.DiscountUsage
	require.NoError(t, f.db.First(&stored, usage.ID).Error)
	assert.True(t, stored.OriginalAmount.Equal(stored.FinalAmount.Add(stored.DiscountAmount)))
}

func TestRedeem_ScenarioC_ConcurrentAttemptsOnLastUnit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, func(d *models.Discount) { d.UsageLimit = testutil.IntPtr(1) })
	other := testutil.User(t, f.db, models.RoleCustomer)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	customers := []uint{f.customer.ID, other.ID}

	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.redeem(ctx, redeemInput(d.ID, customers[i], uint(200+i), "100"))
		}(i)
	}
	wg.Wait()

	succeeded, quota := 0, 0
	for _, err := range errs {
		var qe httperr.QuotaExceededError
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorAs(t, err, &qe):
			assert.Equal(t, "global", qe.Scope)
			quota++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, quota)

	stored, err := f.repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsedCount)

	var usages int64
	f.db.Model(&models.DiscountUsage{}).Count(&usages)
	assert.Equal(t, int64(1), usages)
}

func TestRedeem_NeverExceedsLimitUnderLoad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const limit, attempts = 3, 10
	d := testutil.Discount(t, f.db, now, func(d *models.Discount) { d.UsageLimit = testutil.IntPtr(limit) })

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, uint(300+i), "100")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, limit, ok)

	stored, err := f.repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, limit, stored.UsedCount)
}

func TestRedeem_PerCustomerLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, func(d *models.Discount) { d.CustomerUsageLimit = testutil.IntPtr(1) })
	other := testutil.User(t, f.db, models.RoleCustomer)

	_, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 1, "100"))
	require.NoError(t, err)

	_, err = f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 2, "100"))
	var qe httperr.QuotaExceededError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "customer", qe.Scope)

	_, err = f.redeem(ctx, redeemInput(d.ID, other.ID, 3, "100"))
	assert.NoError(t, err)

	stored, err := f.repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.UsedCount)
}

func TestRedeem_GrantOverridesDiscountLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, func(d *models.Discount) { d.CustomerUsageLimit = testutil.IntPtr(1) })
	require.NoError(t, f.repo.CreateCustomerDiscount(ctx, &models.CustomerDiscount{
		DiscountID: d.ID,
		CustomerID: f.customer.ID,
		MaxUsage:   testutil.IntPtr(2),
	}))

	_, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 1, "100"))
	require.NoError(t, err)
	_, err = f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 2, "100"))
	require.NoError(t, err)

	_, err = f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 3, "100"))
	var qe httperr.QuotaExceededError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "customer", qe.Scope)
}

func TestRedeem_NotEligible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, func(d *models.Discount) { d.EndDate = now.Add(-time.Hour) })

	_, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 1, "100"))

	var ne httperr.NotEligibleError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, domain.ReasonExpired.Message(), ne.Message)
}

func TestRedeem_UnknownDiscount(t *testing.T) {
	f := newFixture(t)

	_, err := f.redeem(context.Background(), redeemInput(999, f.customer.ID, 1, "100"))
	assert.True(t, httperr.IsBusiness(err, "discount_not_found"))
}

func TestRedeem_SameBookingTwiceRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, nil)

	_, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 1, "100"))
	require.NoError(t, err)

	_, err = f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 1, "100"))
	assert.True(t, httperr.IsConflict(err, "booking_already_discounted"), "got %v", err)

	stored, err := f.repo.GetDiscount(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.UsedCount)
}

// staleRepo hands the ledger a discount read before a concurrent redemption
// consumed the last unit, so only the conditional update can catch it.
type staleRepo struct {
	domain.Repository
	snapshot *models.Discount
}

func (r staleRepo) LockDiscount(context.Context, uint) (*models.Discount, error) {
	cp := *r.snapshot
	return &cp, nil
}

func TestRedeem_ConditionalUpdateCatchesStaleRead(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := testutil.Discount(t, f.db, now, func(d *models.Discount) { d.UsageLimit = testutil.IntPtr(1) })
	snapshot := *d

	_, err := f.redeem(ctx, redeemInput(d.ID, f.customer.ID, 1, "100"))
	require.NoError(t, err)

	err = f.repo.Transaction(ctx, func(tx domain.Repository) error {
		_, err := f.ledger.Redeem(ctx, staleRepo{Repository: tx, snapshot: &snapshot}, redeemInput(d.ID, f.customer.ID, 2, "100"))
		return err
	})

	var qe httperr.QuotaExceededError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, "global", qe.Scope)

	var usages int64
	f.db.Model(&models.DiscountUsage{}).Count(&usages)
	assert.Equal(t, int64(1), usages)
}

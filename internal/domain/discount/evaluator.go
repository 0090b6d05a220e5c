package discount

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/money"
)

// Evaluate decides whether the discount applies and prices the order.
// Checks run in a fixed order and the first failure is reported.
// It never mutates its input. The order amount is rounded to the precision
// first so that final = amount - discount holds exactly.
func Evaluate(in Input) Eligibility {
	d := in.Discount
	amount := money.Round(in.OrderAmount, in.Precision)

	if in.Now.Before(d.StartDate) {
		return reject(ReasonNotYetActive, amount)
	}
	if in.Now.After(d.EndDate) {
		return reject(ReasonExpired, amount)
	}

	if !d.IsActive {
		return reject(ReasonInactive, amount)
	}

	if !InScope(d, in.Target) {
		return reject(ReasonNotApplicable, amount)
	}

	if d.MinOrderAmount.Valid && amount.LessThan(d.MinOrderAmount.Decimal) {
		return reject(ReasonMinOrderNotMet, amount)
	}

	if d.UsageLimit != nil && d.UsedCount >= *d.UsageLimit {
		return reject(ReasonUsageLimitReached, amount)
	}

	if in.Grant != nil && in.Grant.ExpiresAt != nil && in.Grant.ExpiresAt.Before(in.Now) {
		return reject(ReasonGrantExpired, amount)
	}
	if limit := CustomerLimit(d.CustomerUsageLimit, in.Grant); limit != nil && in.CustomerUses >= *limit {
		return reject(ReasonCustomerLimitReached, amount)
	}

	discountAmount := Calculate(Type(d.DiscountType), d.DiscountValue, d.MaxDiscountAmount, amount, in.Precision)

	return Eligibility{
		IsEligible:     true,
		Message:        "Discount applied.",
		DiscountAmount: discountAmount,
		FinalAmount:    amount.Sub(discountAmount),
	}
}

// CustomerLimit resolves the per-customer cap: the grant's max_usage wins over
// the discount's customer_usage_limit. nil means unlimited.
func CustomerLimit(discountLimit *int, grant *models.CustomerDiscount) *int {
	if grant != nil && grant.MaxUsage != nil {
		return grant.MaxUsage
	}
	return discountLimit
}

// Calculate returns the discount amount for an order, never above the order amount.
func Calculate(
	t Type,
	value decimal.Decimal,
	maxDiscount decimal.NullDecimal,
	amount decimal.Decimal,
	precision int32,
) decimal.Decimal {
	var raw decimal.Decimal

	switch t {
	case TypePercentage:
		raw = money.Percent(amount, value)
		if maxDiscount.Valid && raw.GreaterThan(maxDiscount.Decimal) {
			raw = maxDiscount.Decimal
		}
	case TypeFixedAmount:
		raw = value
	default:
		return decimal.Zero
	}

	raw = money.Clamp(raw, decimal.Zero, amount)
	return money.Min(money.Round(raw, precision), amount)
}

func reject(r Reason, amount decimal.Decimal) Eligibility {
	return Eligibility{
		IsEligible:     false,
		Reason:         r,
		Message:        r.Message(),
		DiscountAmount: decimal.Zero,
		FinalAmount:    amount,
	}
}

package money

import "github.com/shopspring/decimal"

// DefaultPrecision is the number of minor-unit digits used when no
// currency precision is configured.
const DefaultPrecision int32 = 2

// MaxPrecision is the scale of the numeric(12,2) amount columns. Amounts
// computed at a finer precision would be rounded again by the database.
const MaxPrecision int32 = 2

// IsValidPrecision reports whether p minor-unit digits can be stored as is.
func IsValidPrecision(p int32) bool {
	return p >= 0 && p <= MaxPrecision
}

var hundred = decimal.NewFromInt(100)

// Round rounds half-up to the given number of decimal places.
// Amounts handled here are never negative, so half away from zero is half-up.
func Round(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// Percent returns amount × rate / 100 without rounding.
func Percent(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(hundred)
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	if d.LessThan(lo) {
		return lo
	}
	if d.GreaterThan(hi) {
		return hi
	}
	return d
}

// IsValidRate reports whether rate is a usable percentage, i.e. in (0, 100].
func IsValidRate(rate decimal.Decimal) bool {
	return rate.IsPositive() && rate.LessThanOrEqual(hundred)
}

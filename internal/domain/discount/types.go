package discount

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Type string

const (
	TypePercentage  Type = "percentage"
	TypeFixedAmount Type = "fixed_amount"
)

func (t Type) IsValid() bool {
	return t == TypePercentage || t == TypeFixedAmount
}

// Scope is the applies_to column of a discount.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopeSpecific Scope = "specific"
)

// Target is what a booking is about: the service, its category and the barber.
// Zero ids mean "none".
type Target struct {
	ServiceID  uint `json:"service_id"`
	CategoryID uint `json:"category_id"`
	BarberID   uint `json:"barber_id"`
}

// Input gathers everything Evaluate needs. Callers load it; Evaluate only reads it.
type Input struct {
	Discount *models.Discount
	Target   Target

	// Grant is the customer's CustomerDiscount row, nil when none exists.
	Grant *models.CustomerDiscount
	// CustomerUses is the number of DiscountUsage rows for this customer and discount.
	CustomerUses int

	OrderAmount decimal.Decimal
	Now         time.Time
	Precision   int32
}

// Eligibility is the evaluation result. On failure DiscountAmount is zero and
// FinalAmount equals the order amount.
type Eligibility struct {
	IsEligible     bool            `json:"is_eligible"`
	Reason         Reason          `json:"reason,omitempty"`
	Message        string          `json:"message"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalAmount    decimal.Decimal `json:"final_amount"`
}

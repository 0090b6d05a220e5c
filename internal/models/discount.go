package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Discount struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code        string `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	DiscountType      string              `gorm:"size:20;not null" json:"discount_type"`
	DiscountValue     decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"discount_value"`
	MaxDiscountAmount decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"max_discount_amount"`
	MinOrderAmount    decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"min_order_amount"`

	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null" json:"end_date"`

	UsageLimit         *int `json:"usage_limit"`
	UsedCount          int  `gorm:"not null;default:0" json:"used_count"`
	CustomerUsageLimit *int `json:"customer_usage_limit"`

	// no gorm default: a default would swallow an explicit false on insert
	IsActive  bool   `gorm:"not null" json:"is_active"`
	AppliesTo string `gorm:"size:20;not null;default:'all'" json:"applies_to"`

	Applicabilities []DiscountApplicability `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"applicabilities,omitempty"`

	CreatedBy *uint `json:"created_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountApplicability scopes a "specific" discount to a service, a service
// category or a barber.
type DiscountApplicability struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DiscountID uint `gorm:"index" json:"discount_id"`

	ApplicableType string `gorm:"size:20;not null" json:"applicable_type"`
	ApplicableID   uint   `gorm:"not null" json:"applicable_id"`

	CreatedAt time.Time `json:"created_at"`
}

// CustomerDiscount is the per-customer grant and usage counter of a discount.
type CustomerDiscount struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DiscountID uint `gorm:"uniqueIndex:idx_discount_customer" json:"discount_id"`
	CustomerID uint `gorm:"uniqueIndex:idx_discount_customer" json:"customer_id"`

	UsedCount int        `gorm:"not null;default:0" json:"used_count"`
	MaxUsage  *int       `json:"max_usage"`
	ExpiresAt *time.Time `json:"expires_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscountUsage is the immutable audit record of one redemption.
type DiscountUsage struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	DiscountID uint `gorm:"index" json:"discount_id"`
	CustomerID uint `gorm:"index" json:"customer_id"`
	BookingID  uint `gorm:"uniqueIndex" json:"booking_id"`

	OriginalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"original_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	FinalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"final_amount"`

	UsedAt time.Time `json:"used_at"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ServiceCategory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Service is a bookable item of the catalog (haircut, beard trim...).
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CategoryID *uint            `gorm:"index" json:"category_id"`
	Category   *ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	DurationMin int             `json:"duration_min"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Active      bool            `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryRef returns the category id, or zero when the service is uncategorized.
func (s *Service) CategoryRef() uint {
	if s.CategoryID == nil {
		return 0
	}
	return *s.CategoryID
}

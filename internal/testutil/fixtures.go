package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("failed to seed %T: %v", v, err)
	}
}

func User(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	var n int64
	db.Model(&models.User{}).Count(&n)

	u := &models.User{
		Name:         fmt.Sprintf("%s %d", role, n+1),
		Email:        fmt.Sprintf("%s%d@example.com", role, n+1),
		PasswordHash: "x",
		Role:         role,
	}
	mustCreate(t, db, u)
	return u
}

// Service seeds an active service in a fresh category.
func Service(t *testing.T, db *gorm.DB, durationMin int, price string) *models.Service {
	t.Helper()

	var n int64
	db.Model(&models.ServiceCategory{}).Count(&n)

	cat := &models.ServiceCategory{Name: fmt.Sprintf("category %d", n+1)}
	mustCreate(t, db, cat)

	s := &models.Service{
		CategoryID:  &cat.ID,
		Name:        "Haircut",
		DurationMin: durationMin,
		Price:       decimal.RequireFromString(price),
		Active:      true,
	}
	mustCreate(t, db, s)
	return s
}

// Schedule seeds an active working day for the barber.
func Schedule(t *testing.T, db *gorm.DB, barberID uint, weekday time.Weekday, start, end string) *models.BarberSchedule {
	t.Helper()

	s := &models.BarberSchedule{
		BarberID:  barberID,
		DayOfWeek: int(weekday),
		StartTime: start,
		EndTime:   end,
		Active:    true,
	}
	mustCreate(t, db, s)
	return s
}

// Discount seeds an active, all-scope discount valid around now.
// mutate may adjust it before insert.
func Discount(t *testing.T, db *gorm.DB, now time.Time, mutate func(d *models.Discount)) *models.Discount {
	t.Helper()

	var n int64
	db.Model(&models.Discount{}).Count(&n)

	d := &models.Discount{
		Code:          fmt.Sprintf("CODE%04d", n+1),
		Name:          "Promo",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(0, 1, 0),
		IsActive:      true,
		AppliesTo:     "all",
	}
	if mutate != nil {
		mutate(d)
	}
	mustCreate(t, db, d)
	return d
}

func IntPtr(v int) *int {
	return &v
}

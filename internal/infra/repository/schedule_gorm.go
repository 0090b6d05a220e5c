package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBarber(
	ctx context.Context,
	barberID uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *ScheduleGormRepository) LockBarber(
	ctx context.Context,
	barberID uint,
) error {

	var u models.User
	return r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND role = ?", barberID, models.RoleBarber).
		First(&u).Error
}

// --------------------------------------------------
// Weekly schedule
// --------------------------------------------------

func (r *ScheduleGormRepository) GetSchedule(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.BarberSchedule, error) {
	return r.findSchedule(r.db.WithContext(ctx), barberID, weekday)
}

func (r *ScheduleGormRepository) LockSchedule(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.BarberSchedule, error) {
	return r.findSchedule(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		barberID,
		weekday,
	)
}

func (r *ScheduleGormRepository) findSchedule(
	db *gorm.DB,
	barberID uint,
	weekday int,
) (*models.BarberSchedule, error) {

	var s models.BarberSchedule
	err := db.
		Where("barber_id = ? AND day_of_week = ?", barberID, weekday).
		First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) ListSchedules(
	ctx context.Context,
	barberID uint,
) ([]models.BarberSchedule, error) {

	var out []models.BarberSchedule
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("day_of_week ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceSchedules drops every row of the barber and inserts days.
// Callers run it inside Transaction.
func (r *ScheduleGormRepository) ReplaceSchedules(
	ctx context.Context,
	barberID uint,
	days []models.BarberSchedule,
) error {
	db := r.db.WithContext(ctx)

	if err := db.
		Where("barber_id = ?", barberID).
		Delete(&models.BarberSchedule{}).Error; err != nil {
		return err
	}

	if len(days) == 0 {
		return nil
	}

	for i := range days {
		days[i].ID = 0
		days[i].BarberID = barberID
	}
	return db.Create(&days).Error
}

// --------------------------------------------------
// Time off
// --------------------------------------------------

func (r *ScheduleGormRepository) ListTimeOffs(
	ctx context.Context,
	barberID uint,
) ([]models.BarberTimeOff, error) {

	var out []models.BarberTimeOff
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("start_date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ScheduleGormRepository) ListTimeOffsBetween(
	ctx context.Context,
	barberID uint,
	from string,
	to string,
) ([]models.BarberTimeOff, error) {

	// ISO dates compare correctly as strings
	var out []models.BarberTimeOff
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND start_date <= ? AND end_date >= ?", barberID, to, from).
		Order("start_date ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ScheduleGormRepository) CreateTimeOff(
	ctx context.Context,
	off *models.BarberTimeOff,
) error {
	return r.db.WithContext(ctx).Create(off).Error
}

func (r *ScheduleGormRepository) DeleteTimeOff(
	ctx context.Context,
	barberID uint,
	id uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", id, barberID).
		Delete(&models.BarberTimeOff{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (r *ScheduleGormRepository) ListActiveBookings(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "barber_id", "start_time", "end_time", "status").
		Where(
			"barber_id = ? AND status <> ? AND start_time >= ? AND start_time < ?",
			barberID, models.BookingCancelled, start, end,
		).
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)

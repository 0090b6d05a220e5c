package schedule

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type DayInput struct {
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     bool   `json:"active"`
}

type SetWeeklySchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSetWeeklySchedule(repo domain.Repository, audit *audit.Dispatcher) *SetWeeklySchedule {
	return &SetWeeklySchedule{repo: repo, audit: audit}
}

// Execute replaces the whole week of a barber. Weekdays missing from days
// become non-working days.
func (uc *SetWeeklySchedule) Execute(
	ctx context.Context,
	actorID uint,
	barberID uint,
	days []DayInput,
) ([]models.BarberSchedule, error) {

	rows := make([]models.BarberSchedule, 0, len(days))
	for _, d := range days {
		rows = append(rows, models.BarberSchedule{
			DayOfWeek:  d.DayOfWeek,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			BreakStart: d.BreakStart,
			BreakEnd:   d.BreakEnd,
			Active:     d.Active,
		})
	}

	if err := domain.ValidateWeek(rows); err != nil {
		return nil, err
	}

	var out []models.BarberSchedule
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := lockBarber(ctx, tx, barberID); err != nil {
			return err
		}
		if err := tx.ReplaceSchedules(ctx, barberID, rows); err != nil {
			return err
		}

		var err error
		out, err = tx.ListSchedules(ctx, barberID)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "schedule_updated",
		Entity:   "barber",
		EntityID: &barberID,
		Metadata: map[string]any{"days": len(rows)},
	})

	return out, nil
}

type ListWeeklySchedule struct {
	repo domain.Repository
}

func NewListWeeklySchedule(repo domain.Repository) *ListWeeklySchedule {
	return &ListWeeklySchedule{repo: repo}
}

func (uc *ListWeeklySchedule) Execute(ctx context.Context, barberID uint) ([]models.BarberSchedule, error) {
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, notFound(err)
	}
	return uc.repo.ListSchedules(ctx, barberID)
}

func lockBarber(ctx context.Context, tx domain.Repository, barberID uint) error {
	return notFound(tx.LockBarber(ctx, barberID))
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("barber_not_found")
	}
	return err
}

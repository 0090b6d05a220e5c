package schedule

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type TimeOffInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type CreateTimeOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateTimeOff(repo domain.Repository, audit *audit.Dispatcher) *CreateTimeOff {
	return &CreateTimeOff{repo: repo, audit: audit}
}

func (uc *CreateTimeOff) Execute(
	ctx context.Context,
	actorID uint,
	barberID uint,
	in TimeOffInput,
) (*models.BarberTimeOff, error) {

	off := &models.BarberTimeOff{
		BarberID:  barberID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Reason:    strings.TrimSpace(in.Reason),
	}

	from, to, err := domain.ValidateTimeOff(off)
	if err != nil {
		return nil, err
	}

	// the barber row lock serialises concurrent inserts for the same barber
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := lockBarber(ctx, tx, barberID); err != nil {
			return err
		}

		existing, err := tx.ListTimeOffsBetween(ctx, barberID, off.StartDate, off.EndDate)
		if err != nil {
			return err
		}
		if domain.OverlappingTimeOff(existing, from, to) != nil {
			return httperr.ErrConflict("time_off_overlap")
		}

		return tx.CreateTimeOff(ctx, off)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "time_off_created",
		Entity:   "time_off",
		EntityID: &off.ID,
		Metadata: map[string]string{"start_date": off.StartDate, "end_date": off.EndDate},
	})

	return off, nil
}

type DeleteTimeOff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteTimeOff(repo domain.Repository, audit *audit.Dispatcher) *DeleteTimeOff {
	return &DeleteTimeOff{repo: repo, audit: audit}
}

func (uc *DeleteTimeOff) Execute(ctx context.Context, actorID, barberID, id uint) error {
	deleted, err := uc.repo.DeleteTimeOff(ctx, barberID, id)
	if err != nil {
		return err
	}
	if !deleted {
		return httperr.ErrBusiness("time_off_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "time_off_deleted",
		Entity:   "time_off",
		EntityID: &id,
	})
	return nil
}

type ListTimeOff struct {
	repo domain.Repository
}

func NewListTimeOff(repo domain.Repository) *ListTimeOff {
	return &ListTimeOff{repo: repo}
}

func (uc *ListTimeOff) Execute(ctx context.Context, barberID uint) ([]models.BarberTimeOff, error) {
	if _, err := uc.repo.GetBarber(ctx, barberID); err != nil {
		return nil, notFound(err)
	}
	return uc.repo.ListTimeOffs(ctx, barberID)
}

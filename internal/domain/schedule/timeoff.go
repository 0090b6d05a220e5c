package schedule

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ValidateTimeOff parses the range of off and checks start_date <= end_date.
func ValidateTimeOff(off *models.BarberTimeOff) (from, to time.Time, err error) {
	off.StartDate = strings.TrimSpace(off.StartDate)
	off.EndDate = strings.TrimSpace(off.EndDate)

	from, err = time.Parse(DateLayout, off.StartDate)
	if err != nil {
		return from, to, httperr.ErrValidation("start_date", "must be YYYY-MM-DD")
	}
	to, err = time.Parse(DateLayout, off.EndDate)
	if err != nil {
		return from, to, httperr.ErrValidation("end_date", "must be YYYY-MM-DD")
	}
	if to.Before(from) {
		return from, to, httperr.ErrValidation("end_date", "must not be before start_date")
	}
	return from, to, nil
}

// OverlappingTimeOff returns the first existing range that overlaps [from, to], or nil.
func OverlappingTimeOff(existing []models.BarberTimeOff, from, to time.Time) *models.BarberTimeOff {
	for i := range existing {
		s, err1 := time.Parse(DateLayout, existing[i].StartDate)
		e, err2 := time.Parse(DateLayout, existing[i].EndDate)
		if err1 != nil || err2 != nil {
			continue
		}
		if DateRangesOverlap(s, e, from, to) {
			return &existing[i]
		}
	}
	return nil
}

package schedule

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ValidateDay checks one weekly schedule row: known weekday, HH:MM clocks,
// start before end and, when set, a break inside the working hours.
func ValidateDay(s models.BarberSchedule) error {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return httperr.ErrValidation("day_of_week", "must be between 0 (Sunday) and 6 (Saturday)")
	}
	if !s.Active {
		return nil
	}

	start, err := ParseClock("start_time", s.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock("end_time", s.EndTime)
	if err != nil {
		return err
	}
	if !end.After(start) {
		return httperr.ErrValidation("end_time", "must be after start_time")
	}

	if s.BreakStart == "" && s.BreakEnd == "" {
		return nil
	}
	if s.BreakStart == "" || s.BreakEnd == "" {
		return httperr.ErrValidation("break_start", "break_start and break_end go together")
	}

	bs, err := ParseClock("break_start", s.BreakStart)
	if err != nil {
		return err
	}
	be, err := ParseClock("break_end", s.BreakEnd)
	if err != nil {
		return err
	}
	if !be.After(bs) || bs.Before(start) || be.After(end) {
		return httperr.ErrValidation("break_start", "break must sit inside working hours")
	}
	return nil
}

// ValidateWeek validates every row and rejects duplicate weekdays.
func ValidateWeek(days []models.BarberSchedule) error {
	seen := map[int]bool{}
	for _, d := range days {
		if err := ValidateDay(d); err != nil {
			return err
		}
		if seen[d.DayOfWeek] {
			return httperr.ErrValidation("day_of_week", fmt.Sprintf("weekday %d listed twice", d.DayOfWeek))
		}
		seen[d.DayOfWeek] = true
	}
	return nil
}

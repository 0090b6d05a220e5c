package schedule

import "time"

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots lists consecutive slots of the given duration inside the working
// day of date that pass the gate. Slots starting before notBefore are skipped.
func FreeSlots(day Day, date time.Time, duration time.Duration, notBefore time.Time) []TimeSlot {
	slots := []TimeSlot{}

	s := day.Schedule
	if s == nil || !s.Active || duration <= 0 || InTimeOff(day.TimeOffs, date) {
		return slots
	}

	dayStart := ClockOn(date, s.StartTime)
	dayEnd := ClockOn(date, s.EndTime)

	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(duration) {
		end := cur.Add(duration)

		if cur.Before(notBefore) {
			continue
		}

		if IsBookable(day, cur, end) {
			slots = append(slots, TimeSlot{
				Start: cur.Format(ClockLayout),
				End:   end.Format(ClockLayout),
			})
		}
	}

	return slots
}

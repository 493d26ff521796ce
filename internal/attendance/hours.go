package attendance

import "time"

// DayHours is the working-time breakdown for one employee on one date.
type DayHours struct {
	WorkedHours     float64 `json:"worked_hours"`
	LunchHours      float64 `json:"lunch_hours"`
	OtherBreakHours float64 `json:"other_break_hours"`
	Closed          bool    `json:"is_closed"`
}

// OvertimeHours is the time worked beyond the standard day, never negative.
func (d DayHours) OvertimeHours() float64 {
	if d.WorkedHours <= StandardWorkHours {
		return 0
	}
	return d.WorkedHours - StandardWorkHours
}

// ComputeDayHours derives worked, lunch and other-break hours for a date
// from its IN/OUT pair. The end instant for an open session is the OUT
// time when present, the default auto-checkout time for past dates, and
// now for today. Pure: no store access, no mutation.
func ComputeDayHours(in, out *AttendanceRecord, date, now time.Time) DayHours {
	if in == nil {
		return DayHours{}
	}

	lunch, other := in.Breaks.Durations()

	start := CombineDateClock(date, ClockOf(in.Time))

	var end time.Time
	closed := false
	switch {
	case out != nil:
		end = CombineDateClock(date, ClockOf(out.Time))
		closed = true
	case DateOnly(date).Before(DateOnly(now)):
		// Past day that was never checked out: assume the default
		// auto-checkout time, but the day still counts as not closed.
		end = CombineDateClock(date, OutTimeDefault)
	default:
		end = now
	}

	worked := end.Sub(start) - lunch - other
	if worked < 0 {
		worked = 0
	}

	return DayHours{
		WorkedHours:     worked.Seconds() / 3600.0,
		LunchHours:      lunch.Seconds() / 3600.0,
		OtherBreakHours: other.Seconds() / 3600.0,
		Closed:          closed,
	}
}

package attendance

import "time"

// Office attendance policy. Fixed values, not runtime configuration.
const (
	InTimeStart    = 10 * time.Hour
	InTimeEnd      = 11 * time.Hour
	LunchTimeStart = 13*time.Hour + 30*time.Minute
	LunchTimeEnd   = 14*time.Hour + 30*time.Minute
	OutTimeMin     = 19 * time.Hour
	OutTimeDefault = 19*time.Hour + 15*time.Minute

	StandardWorkHours = 9.0
)

const clockLayout = "15:04:05"

// ClockOf returns the time-of-day of t as an offset from midnight.
func ClockOf(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second
}

func FormatClock(t time.Time) string {
	return t.Format(clockLayout)
}

// FormatClockOffset renders a midnight offset as a wire clock string.
func FormatClockOffset(clock time.Duration) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(clock).Format(clockLayout)
}

// ParseClock parses a "15:04:05" clock string into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return ClockOf(t), nil
}

// CombineDateClock pins a clock offset onto a calendar date in date's
// location.
func CombineDateClock(date time.Time, clock time.Duration) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location()).Add(clock)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

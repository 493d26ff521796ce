package attendance

import "time"

// PeriodDates maps a reference date and a period keyword to an inclusive
// [start, end] range. Weeks start on Monday; months are calendar months.
// Unknown periods fall back to a single day, so this never fails.
func PeriodDates(reference time.Time, period string) (start, end time.Time) {
	ref := DateOnly(reference)

	switch period {
	case "week":
		offset := (int(ref.Weekday()) + 6) % 7 // Monday = 0
		start = ref.AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 6)
	case "month":
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		end = start.AddDate(0, 1, -1)
	case "year":
		start = time.Date(ref.Year(), time.January, 1, 0, 0, 0, 0, ref.Location())
		end = time.Date(ref.Year(), time.December, 31, 0, 0, 0, 0, ref.Location())
	default: // "day" or anything unrecognized
		start = ref
		end = ref
	}
	return start, end
}

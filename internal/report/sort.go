package report

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Sort keys accepted by SortRows.
const (
	SortByID       = "employee_id"
	SortByName     = "name"
	SortByDate     = "date"
	SortByInTime   = "in_time"
	SortByOutTime  = "out_time"
	SortByWorked   = "worked_hours"
	SortByLunch    = "lunch_hours"
	SortByBreaks   = "other_break_hours"
	SortByOvertime = "overtime_hours"
)

// SortRows orders rows in place by the given key. Rows whose value is
// missing or non-numeric ("In progress...", "-") sort below every real
// value so they end up last in descending reports.
func SortRows(rows []Row, key string, descending bool) {
	less := lessFunc(key)
	if less == nil {
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func lessFunc(key string) func(a, b Row) bool {
	switch key {
	case SortByID:
		return func(a, b Row) bool { return a.EmployeeID < b.EmployeeID }
	case SortByName:
		return func(a, b Row) bool { return a.EmployeeName < b.EmployeeName }
	case SortByDate:
		return func(a, b Row) bool { return a.Date < b.Date }
	case SortByInTime:
		return func(a, b Row) bool { return clockKey(a.InTime) < clockKey(b.InTime) }
	case SortByOutTime:
		return func(a, b Row) bool { return clockKey(a.OutTime) < clockKey(b.OutTime) }
	case SortByWorked:
		return func(a, b Row) bool { return hoursKey(a.WorkedHours) < hoursKey(b.WorkedHours) }
	case SortByLunch:
		return func(a, b Row) bool { return hoursKey(a.LunchHours) < hoursKey(b.LunchHours) }
	case SortByBreaks:
		return func(a, b Row) bool { return hoursKey(a.OtherBreakHours) < hoursKey(b.OtherBreakHours) }
	case SortByOvertime:
		return func(a, b Row) bool { return hoursKey(a.OvertimeHours) < hoursKey(b.OvertimeHours) }
	default:
		return nil
	}
}

func clockKey(display string) float64 {
	t, err := time.Parse("03:04 PM", display)
	if err != nil {
		return math.Inf(-1)
	}
	return float64(t.Hour()*60 + t.Minute())
}

func hoursKey(display string) float64 {
	value, _, found := strings.Cut(display, " ")
	if !found {
		return math.Inf(-1)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.Inf(-1)
	}
	return v
}

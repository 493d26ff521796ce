package attendance

import (
	"context"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/google/uuid"
)

// Summary builds one row per IN record inside [start, end], joined with its
// OUT record and computed hours. An empty employeeCodes slice means all
// employees; maxHours keeps only rows whose worked hours stay strictly
// under the threshold.
func (s *service) Summary(ctx context.Context, startStr, endStr string, employeeCodes []string, maxHours *float64) ([]SummaryRow, error) {
	loc := s.nowFn().Location()
	start, err := time.ParseInLocation("2006-01-02", startStr, loc)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, loc)
	if err != nil {
		return nil, attendanceerrors.ErrInvalidDate
	}
	if end.Before(start) {
		return nil, attendanceerrors.ErrInvalidDate
	}
	if maxHours != nil && *maxHours <= 0 {
		return nil, attendanceerrors.ErrInvalidHoursFilter
	}

	ins, err := s.repo.FindInRange(ctx, start, end, TypeIn, employeeCodes)
	if err != nil {
		return nil, err
	}
	outs, err := s.repo.FindInRange(ctx, start, end, TypeOut, employeeCodes)
	if err != nil {
		return nil, err
	}

	type dayKey struct {
		employee uuid.UUID
		date     string
	}
	outByDay := make(map[dayKey]*AttendanceRecord, len(outs))
	for i := range outs {
		rec := &outs[i]
		outByDay[dayKey{rec.EmployeeID, rec.Date.Format("2006-01-02")}] = rec
	}

	now := s.nowFn()
	rows := make([]SummaryRow, 0, len(ins))
	for i := range ins {
		in := &ins[i]
		out := outByDay[dayKey{in.EmployeeID, in.Date.Format("2006-01-02")}]

		hours := ComputeDayHours(in, out, in.Date, now)
		if maxHours != nil && hours.WorkedHours >= *maxHours {
			continue
		}

		row := SummaryRow{
			Date:            in.Date.Format("2006-01-02"),
			InTime:          FormatClock(in.Time),
			Breaks:          in.Breaks,
			WorkedHours:     hours.WorkedHours,
			LunchHours:      hours.LunchHours,
			OtherBreakHours: hours.OtherBreakHours,
			Closed:          hours.Closed,
		}
		if in.Employee != nil {
			row.EmployeeCode = in.Employee.Code
			row.EmployeeName = in.Employee.Name
		}
		if out != nil {
			outTime := FormatClock(out.Time)
			row.OutTime = &outTime
		}
		rows = append(rows, row)
	}

	return rows, nil
}

package report

import (
	"context"
	"fmt"
	"time"

	"go-attendance/internal/attendance"

	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Rows(ctx context.Context, q Query) ([]Row, error)
	CSV(ctx context.Context, q Query) ([]byte, error)
	XLSX(ctx context.Context, q Query) ([]byte, error)
	PDF(ctx context.Context, q Query) ([]byte, error)
}

type service struct {
	attendance attendance.Service
	logger     *zap.Logger
	nowFn      func() time.Time
}

func NewService(att attendance.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	return &service{attendance: att, logger: l, nowFn: time.Now}
}

func (s *service) Rows(ctx context.Context, q Query) ([]Row, error) {
	summary, err := s.attendance.Summary(ctx, q.StartDate, q.EndDate, q.EmployeeIDs, q.MaxHours)
	if err != nil {
		return nil, err
	}

	today := s.nowFn().Format("2006-01-02")
	rows := make([]Row, 0, len(summary))
	for _, item := range summary {
		rows = append(rows, buildRow(item, today))
	}

	SortRows(rows, q.SortBy, q.Descending)
	return rows, nil
}

func buildRow(item attendance.SummaryRow, today string) Row {
	row := Row{
		EmployeeID:      item.EmployeeCode,
		EmployeeName:    item.EmployeeName,
		Date:            item.Date,
		InTime:          displayClock(item.InTime),
		WorkedHours:     fmt.Sprintf("%.2f hours", item.WorkedHours),
		LunchHours:      fmt.Sprintf("%.2f hours", item.LunchHours),
		OtherBreakHours: fmt.Sprintf("%.2f hours", item.OtherBreakHours),
		Status:          "On time",
	}

	if in, err := attendance.ParseClock(item.InTime); err == nil && in > attendance.InTimeEnd {
		row.Status = "Late entry"
	}

	overtime := item.WorkedHours - attendance.StandardWorkHours
	if overtime < 0 {
		overtime = 0
	}
	row.OvertimeHours = fmt.Sprintf("%.2f hours", overtime)

	switch {
	case item.OutTime != nil:
		row.OutTime = displayClock(*item.OutTime)
	case item.Date < today:
		// Never checked out; hours were settled at the default out time.
		row.OutTime = displayClock(attendance.FormatClockOffset(attendance.OutTimeDefault))
	default:
		row.OutTime = "In progress..."
		row.WorkedHours = "In progress..."
		row.OvertimeHours = "-"
	}

	return row
}

// displayClock converts a wire clock ("19:15:00") to its 12-hour display
// form ("07:15 PM"). Unparseable input passes through untouched.
func displayClock(clock string) string {
	d, err := attendance.ParseClock(clock)
	if err != nil {
		return clock
	}
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(d).Format("03:04 PM")
}

package leave

import (
	"context"
	"fmt"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"

	"go.uber.org/zap"
)

type LeaveSummaryResponse struct {
	EmployeeID      string `json:"employeeId"`
	EmployeeName    string `json:"employeeName"`
	AccruedThisYear int    `json:"totalLeavesAccruedThisYear"`
	TakenThisYear   int    `json:"leavesTakenThisYear"`
	Remaining       int    `json:"leavesRemaining"`
	CurrentMonth    string `json:"currentMonth"`
}

type RecordLeaveRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required"`
	Month       string `json:"month" binding:"required"`
	LeavesTaken *int   `json:"leaves_taken" binding:"required"`
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	// EmployeeSummary computes this year's accrual (one day per elapsed
	// month), taken and remaining counts for one employee.
	EmployeeSummary(ctx context.Context, employeeCode string) (LeaveSummaryResponse, error)
	Record(ctx context.Context, req RecordLeaveRequest) error
}

type service struct {
	repo      Repository
	directory attendance.Repository
	logger    *zap.Logger
	nowFn     func() time.Time
}

func NewService(repo Repository, directory attendance.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{repo: repo, directory: directory, logger: l, nowFn: time.Now}
}

func (s *service) EmployeeSummary(ctx context.Context, employeeCode string) (LeaveSummaryResponse, error) {
	ref, err := s.directory.FindEmployeeByCode(ctx, employeeCode)
	if err != nil {
		s.logger.Warn("leave summary employee lookup failed",
			zap.String("employee_id", employeeCode),
			zap.Error(err),
		)
		return LeaveSummaryResponse{}, attendanceerrors.ErrEmployeeNotFound
	}

	now := s.nowFn()
	accrued := int(now.Month()) // one leave day accrues per elapsed month

	taken64, err := s.repo.SumForEmployeeYear(ctx, ref.ID, now.Year())
	if err != nil {
		s.logger.Error("leave summary aggregate failed", zap.Error(err))
		return LeaveSummaryResponse{}, err
	}
	taken := int(taken64)

	remaining := accrued - taken
	if remaining < 0 {
		remaining = 0
	}

	return LeaveSummaryResponse{
		EmployeeID:      ref.Code,
		EmployeeName:    ref.Name,
		AccruedThisYear: accrued,
		TakenThisYear:   taken,
		Remaining:       remaining,
		CurrentMonth:    fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month())),
	}, nil
}

func (s *service) Record(ctx context.Context, req RecordLeaveRequest) error {
	ref, err := s.directory.FindEmployeeByCode(ctx, req.EmployeeID)
	if err != nil {
		return attendanceerrors.ErrEmployeeNotFound
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return attendanceerrors.ErrInvalidDate
	}

	row := &LeaveHistory{
		EmployeeID:  ref.ID,
		Month:       req.Month,
		LeavesTaken: *req.LeavesTaken,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		s.logger.Error("record leave failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("month", req.Month),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("leave recorded",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month", req.Month),
		zap.Int("leaves_taken", *req.LeavesTaken),
	)
	return nil
}

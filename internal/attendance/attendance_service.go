package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/settings"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeaveTotaler is the slice of the leave store the trend aggregator needs.
type LeaveTotaler interface {
	SumAll(ctx context.Context) (int64, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	// Mark runs the attendance state machine for one recognized identity:
	// exactly one of IN, OUT, BREAK_IN, BREAK_OUT, or an informational
	// no-op. All mutations of one evaluation commit atomically.
	Mark(ctx context.Context, req MarkRequest) (MarkResult, error)
	WorkingHours(ctx context.Context, employeeCode, dateStr string) (WorkingHoursResponse, error)
	Summary(ctx context.Context, startStr, endStr string, employeeCodes []string, maxHours *float64) ([]SummaryRow, error)
	Trends(ctx context.Context, kind string, start, end time.Time, interval string) (TrendsResponse, error)
	RecentActivity(ctx context.Context) ([]RecentActivityRow, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	office   settings.Repository
	leaves   LeaveTotaler
	outbox   kafka.OutboxRepository
	logger   *zap.Logger
	dayLocks keyedMutex
	nowFn    func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	office settings.Repository,
	leaves LeaveTotaler,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		office: office,
		leaves: leaves,
		outbox: outbox,
		logger: l,
		nowFn:  time.Now,
	}
}

// keyedMutex serializes evaluations per employee per day. The state
// machine's read-decide-write sequence spans two records plus an embedded
// array; two unserialized evaluations for the same employee could
// double-create an IN record or corrupt the break sequence.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *service) Mark(ctx context.Context, req MarkRequest) (MarkResult, error) {
	now := s.nowFn()
	name := strings.TrimSpace(req.RecognizedName)

	// Unresolved identity: informational, nothing to mutate.
	if name == "" || strings.EqualFold(name, "unknown") {
		s.logger.Info("unknown person detected or name missing")
		return MarkResult{
			Status:         StatusInfo,
			Message:        "Unknown person or name missing.",
			RecognizedName: "Unknown",
		}, nil
	}

	employee, err := s.repo.FindEmployeeByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("employee not found for attendance marking", zap.String("name", name))
			return MarkResult{
				Status:         StatusFailure,
				Message:        fmt.Sprintf("Employee %q not found in database.", name),
				RecognizedName: name,
			}, nil
		}
		return MarkResult{}, err
	}

	// Geofence check. Skipping (unconfigured office or missing device
	// location) is annotated on the message but does not block the action.
	locationSuffix := ""
	office, err := s.office.Get(ctx)
	if err != nil {
		s.logger.Error("load office location failed", zap.Error(err))
		return MarkResult{}, err
	}
	switch {
	case office == nil:
		locationSuffix = " (No office location set by admin, location check skipped)."
	case req.Latitude == nil || req.Longitude == nil:
		locationSuffix = " (Your device location not available, location check skipped)."
	default:
		distance := DistanceMeters(office.Latitude, office.Longitude, *req.Latitude, *req.Longitude)
		if distance > float64(office.RadiusMeters) {
			s.logger.Info("attendance rejected outside geofence",
				zap.String("employee_id", employee.Code),
				zap.Float64("distance_meters", distance),
				zap.Int("radius_meters", office.RadiusMeters),
			)
			return MarkResult{
				Status: StatusInfo,
				Message: fmt.Sprintf(
					"You are %dm away from the office. Attendance can only be marked within %dm.",
					int(distance), office.RadiusMeters,
				),
				RecognizedName: employee.Name,
				DistanceMeters: &distance,
			}, nil
		}
	}

	today := DateOnly(now)
	unlock := s.dayLocks.lock(employee.ID.String() + "@" + today.Format("2006-01-02"))
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return MarkResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inRecord, err := qtx.FindDayRecord(ctx, employee.ID, today, TypeIn)
	if err != nil {
		return MarkResult{}, err
	}
	outRecord, err := qtx.FindDayRecord(ctx, employee.ID, today, TypeOut)
	if err != nil {
		return MarkResult{}, err
	}

	clock := ClockOf(now)
	result := MarkResult{RecognizedName: employee.Name}

	switch {
	case inRecord == nil:
		// First action of the day.
		result.IsLate = clock > InTimeEnd
		remarks := "On time"
		if result.IsLate {
			remarks = "Late entry"
		}
		rec := &AttendanceRecord{
			ID:         uuid.New(),
			EmployeeID: employee.ID,
			Date:       today,
			Type:       TypeIn,
			Time:       now,
			Remarks:    remarks,
		}
		if req.EmotionalState != nil && *req.EmotionalState != "" {
			rec.EmotionalState = req.EmotionalState
		}
		if err := qtx.Create(ctx, rec); err != nil {
			return MarkResult{}, mapRepositoryError(err)
		}
		result.Status = StatusSuccess
		result.Action = ActionIn
		result.Message = fmt.Sprintf("In Time. Welcome, %s!", employee.Name)

	case outRecord == nil:
		if clock >= OutTimeMin {
			rec := &AttendanceRecord{
				ID:         uuid.New(),
				EmployeeID: employee.ID,
				Date:       today,
				Type:       TypeOut,
				Time:       now,
				Remarks:    "Out Time",
			}
			if err := qtx.Create(ctx, rec); err != nil {
				return MarkResult{}, mapRepositoryError(err)
			}
			result.Status = StatusSuccess
			result.Action = ActionOut
			result.Message = fmt.Sprintf("Out Time. Goodbye, %s!", employee.Name)
		} else if closed, ok := inRecord.Breaks.CloseOpen(now); ok {
			if err := qtx.Update(ctx, inRecord); err != nil {
				return MarkResult{}, err
			}
			result.Status = StatusSuccess
			result.Action = ActionBreakOut
			result.Message = fmt.Sprintf("%s Break Out recorded.", titleCase(string(closed.Type)))
		} else {
			breakType := BreakOther
			if clock >= LunchTimeStart && clock <= LunchTimeEnd {
				breakType = BreakLunch
			}
			if err := inRecord.Breaks.Open(now, breakType); err != nil {
				// CloseOpen just reported no open break, so this cannot
				// happen while the day lock is held.
				return MarkResult{}, err
			}
			if err := qtx.Update(ctx, inRecord); err != nil {
				return MarkResult{}, err
			}
			result.Status = StatusSuccess
			result.Action = ActionBreakIn
			result.Message = fmt.Sprintf("%s Break In recorded.", titleCase(string(breakType)))
		}

	default:
		// Terminal state for the day.
		if err := tx.Commit(); err != nil {
			return MarkResult{}, err
		}
		result.Status = StatusInfo
		result.Message = fmt.Sprintf("You have already checked out for today, %s.", employee.Name)
		return result, nil
	}

	if err := qtx.UpdateEmployeeLastSeen(ctx, employee.ID, now); err != nil {
		return MarkResult{}, err
	}

	if s.outbox != nil {
		if err := s.queueMarkedEvent(ctx, tx, employee, today, result, now); err != nil {
			return MarkResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return MarkResult{}, err
	}

	result.Message += locationSuffix
	s.logger.Info("attendance marked",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", employee.Code),
		zap.String("action", result.Action),
		zap.Bool("is_late", result.IsLate),
	)
	return result, nil
}

func (s *service) queueMarkedEvent(
	ctx context.Context,
	tx *sql.Tx,
	employee *EmployeeRef,
	date time.Time,
	result MarkResult,
	now time.Time,
) error {
	event := events.AttendanceMarkedEvent{
		EventType:  "attendance_marked",
		RequestID:  contextutil.GetRequestID(ctx),
		EmployeeID: employee.ID.String(),
		Date:       date.Format("2006-01-02"),
		Action:     result.Action,
		IsLate:     result.IsLate,
		OccurredAt: now.UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "attendance",
		AggregateID:   employee.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AttendanceMarkedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) WorkingHours(ctx context.Context, employeeCode, dateStr string) (WorkingHoursResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, s.nowFn().Location())
	if err != nil {
		return WorkingHoursResponse{}, attendanceerrors.ErrInvalidDate
	}

	employee, err := s.repo.FindEmployeeByCode(ctx, employeeCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkingHoursResponse{}, attendanceerrors.ErrEmployeeNotFound
		}
		return WorkingHoursResponse{}, err
	}

	inRecord, err := s.repo.FindDayRecord(ctx, employee.ID, date, TypeIn)
	if err != nil {
		return WorkingHoursResponse{}, err
	}
	outRecord, err := s.repo.FindDayRecord(ctx, employee.ID, date, TypeOut)
	if err != nil {
		return WorkingHoursResponse{}, err
	}

	return WorkingHoursResponse{
		EmployeeID: employeeCode,
		Date:       dateStr,
		DayHours:   ComputeDayHours(inRecord, outRecord, date, s.nowFn()),
	}, nil
}

func (s *service) RecentActivity(ctx context.Context) ([]RecentActivityRow, error) {
	now := s.nowFn()
	cutoff := DateOnly(now).AddDate(0, 0, -7)

	employees, err := s.repo.FindEmployeesSeenSince(ctx, cutoff, 10)
	if err != nil {
		return nil, err
	}

	rows := make([]RecentActivityRow, 0, len(employees))
	for _, emp := range employees {
		latest, err := s.repo.FindLatestRecord(ctx, emp.ID)
		if err != nil {
			return nil, err
		}
		if latest == nil {
			continue
		}
		date := latest.Date

		inRecord, err := s.repo.FindDayRecord(ctx, emp.ID, date, TypeIn)
		if err != nil {
			return nil, err
		}
		outRecord, err := s.repo.FindDayRecord(ctx, emp.ID, date, TypeOut)
		if err != nil {
			return nil, err
		}

		hours := ComputeDayHours(inRecord, outRecord, date, now)

		row := RecentActivityRow{
			EmployeeName: emp.Name,
			EmployeeCode: emp.Code,
			Date:         date.Format("2006-01-02"),
			InTime:       "-",
			OutTime:      "-",
			LunchInTime:  "-",
			LunchOutTime: "-",
			WorkedHours:  "In progress...",
			BreakHours:   "-",
		}
		if inRecord != nil {
			row.InTime = inRecord.Time.Format("03:04 PM")
			row.IsLate = ClockOf(inRecord.Time) > InTimeEnd
			row.EmotionalState = inRecord.EmotionalState
			row.Remarks = inRecord.Remarks
			row.LunchInTime, row.LunchOutTime = lunchBounds(inRecord.Breaks)
		}
		if outRecord != nil {
			row.OutTime = outRecord.Time.Format("03:04 PM")
		}
		if hours.Closed || date.Before(DateOnly(now)) {
			row.WorkedHours = fmt.Sprintf("%.2f hours", hours.WorkedHours)
		}
		if total := hours.LunchHours + hours.OtherBreakHours; total > 0 {
			row.BreakHours = fmt.Sprintf("%.2f hours", total)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// lunchBounds returns the first lunch break-in and last lunch break-out of
// a day, formatted for display.
func lunchBounds(breaks BreakList) (in, out string) {
	in, out = "-", "-"
	var firstIn, lastOut *time.Duration
	for _, b := range breaks {
		if b.Type != BreakLunch {
			continue
		}
		if v, err := ParseClock(b.BreakIn); err == nil {
			if firstIn == nil || v < *firstIn {
				firstIn = &v
			}
		}
		if b.BreakOut != nil {
			if v, err := ParseClock(*b.BreakOut); err == nil {
				if lastOut == nil || v > *lastOut {
					lastOut = &v
				}
			}
		}
	}
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if firstIn != nil {
		in = base.Add(*firstIn).Format("03:04 PM")
	}
	if lastOut != nil {
		out = base.Add(*lastOut).Format("03:04 PM")
	}
	return in, out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

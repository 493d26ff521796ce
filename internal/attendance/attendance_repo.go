package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, rec *AttendanceRecord) error
	Update(ctx context.Context, rec *AttendanceRecord) error
	FindDayRecord(ctx context.Context, employeeID uuid.UUID, date time.Time, typ AttendanceType) (*AttendanceRecord, error)
	FindInRange(ctx context.Context, start, end time.Time, typ AttendanceType, employeeCodes []string) ([]AttendanceRecord, error)
	FindLatestRecord(ctx context.Context, employeeID uuid.UUID) (*AttendanceRecord, error)

	FindEmployeeByName(ctx context.Context, name string) (*EmployeeRef, error)
	FindEmployeeByCode(ctx context.Context, code string) (*EmployeeRef, error)
	FindEmployeesSeenSince(ctx context.Context, cutoff time.Time, limit int) ([]EmployeeRef, error)
	CountEmployees(ctx context.Context) (int64, error)
	UpdateEmployeeLastSeen(ctx context.Context, employeeID uuid.UUID, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto an externally managed transaction so
// the service can commit attendance rows and outbox events together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) Update(ctx context.Context, rec *AttendanceRecord) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *repository) FindDayRecord(ctx context.Context, employeeID uuid.UUID, date time.Time, typ AttendanceType) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		Where("attendance_type = ?", typ).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindInRange(ctx context.Context, start, end time.Time, typ AttendanceType, employeeCodes []string) ([]AttendanceRecord, error) {
	q := r.db.WithContext(ctx).
		Model(&AttendanceRecord{}).
		Preload("Employee").
		Joins("JOIN employees ON employees.id = attendance_records.employee_id").
		Where("attendance_records.date BETWEEN ? AND ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Where("attendance_records.attendance_type = ?", typ)

	if len(employeeCodes) > 0 {
		q = q.Where("employees.employee_id IN ?", employeeCodes)
	}

	var rows []AttendanceRecord
	err := q.Order("attendance_records.date ASC, employees.name ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindLatestRecord(ctx context.Context, employeeID uuid.UUID) (*AttendanceRecord, error) {
	var rec AttendanceRecord
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC, event_time DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *repository) FindEmployeeByName(ctx context.Context, name string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) FindEmployeeByCode(ctx context.Context, code string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).Where("employee_id = ?", code).First(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) FindEmployeesSeenSince(ctx context.Context, cutoff time.Time, limit int) ([]EmployeeRef, error) {
	var refs []EmployeeRef
	err := r.db.WithContext(ctx).
		Where("last_seen >= ?", cutoff).
		Order("last_seen DESC").
		Limit(limit).
		Find(&refs).Error
	return refs, err
}

func (r *repository) CountEmployees(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&EmployeeRef{}).Count(&n).Error
	return n, err
}

func (r *repository) UpdateEmployeeLastSeen(ctx context.Context, employeeID uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeRef{}).
		Where("id = ?", employeeID).
		Update("last_seen", at).Error
}

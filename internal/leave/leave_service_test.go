package leave

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-attendance/internal/attendance"
	attendanceerrors "go-attendance/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeLeaveRepo struct {
	upserted []*LeaveHistory
	sumAll   int64
	sumYear  int64
}

func (f *fakeLeaveRepo) Upsert(ctx context.Context, row *LeaveHistory) error {
	f.upserted = append(f.upserted, row)
	return nil
}

func (f *fakeLeaveRepo) SumAll(ctx context.Context) (int64, error) { return f.sumAll, nil }

func (f *fakeLeaveRepo) SumForEmployeeYear(ctx context.Context, employeeID uuid.UUID, year int) (int64, error) {
	return f.sumYear, nil
}

// fakeDirectory satisfies the employee-lookup slice of the attendance
// repository; everything else is unused here.
type fakeDirectory struct {
	employees map[string]*attendance.EmployeeRef
}

func (f *fakeDirectory) WithTx(tx *sql.Tx) attendance.Repository { return f }
func (f *fakeDirectory) Create(ctx context.Context, rec *attendance.AttendanceRecord) error {
	return nil
}
func (f *fakeDirectory) Update(ctx context.Context, rec *attendance.AttendanceRecord) error {
	return nil
}
func (f *fakeDirectory) FindDayRecord(ctx context.Context, employeeID uuid.UUID, date time.Time, typ attendance.AttendanceType) (*attendance.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeDirectory) FindInRange(ctx context.Context, start, end time.Time, typ attendance.AttendanceType, codes []string) ([]attendance.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeDirectory) FindLatestRecord(ctx context.Context, employeeID uuid.UUID) (*attendance.AttendanceRecord, error) {
	return nil, nil
}
func (f *fakeDirectory) FindEmployeeByName(ctx context.Context, name string) (*attendance.EmployeeRef, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDirectory) FindEmployeeByCode(ctx context.Context, code string) (*attendance.EmployeeRef, error) {
	if emp, ok := f.employees[code]; ok {
		return emp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeDirectory) FindEmployeesSeenSince(ctx context.Context, cutoff time.Time, limit int) ([]attendance.EmployeeRef, error) {
	return nil, nil
}
func (f *fakeDirectory) CountEmployees(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeDirectory) UpdateEmployeeLastSeen(ctx context.Context, employeeID uuid.UUID, at time.Time) error {
	return nil
}

func newLeaveTestService(repo *fakeLeaveRepo, dir *fakeDirectory, now time.Time) *service {
	svc := NewService(repo, dir).(*service)
	svc.nowFn = func() time.Time { return now }
	return svc
}

func directoryWith(code, name string) (*fakeDirectory, *attendance.EmployeeRef) {
	emp := &attendance.EmployeeRef{ID: uuid.New(), Code: code, Name: name}
	return &fakeDirectory{employees: map[string]*attendance.EmployeeRef{code: emp}}, emp
}

func TestService_EmployeeSummary(t *testing.T) {
	dir, _ := directoryWith("EMP001", "Alice")
	repo := &fakeLeaveRepo{sumYear: 3}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	svc := newLeaveTestService(repo, dir, now)

	resp, err := svc.EmployeeSummary(context.Background(), "EMP001")
	require.NoError(t, err)
	assert.Equal(t, "Alice", resp.EmployeeName)
	assert.Equal(t, 6, resp.AccruedThisYear) // June: six months elapsed
	assert.Equal(t, 3, resp.TakenThisYear)
	assert.Equal(t, 3, resp.Remaining)
	assert.Equal(t, "2024-06", resp.CurrentMonth)
}

func TestService_EmployeeSummary_RemainingClampedAtZero(t *testing.T) {
	dir, _ := directoryWith("EMP001", "Alice")
	repo := &fakeLeaveRepo{sumYear: 10}
	now := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	svc := newLeaveTestService(repo, dir, now)

	resp, err := svc.EmployeeSummary(context.Background(), "EMP001")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.AccruedThisYear)
	assert.Equal(t, 0, resp.Remaining)
}

func TestService_EmployeeSummary_UnknownEmployee(t *testing.T) {
	svc := newLeaveTestService(&fakeLeaveRepo{}, &fakeDirectory{}, time.Now())

	_, err := svc.EmployeeSummary(context.Background(), "NOPE")
	assert.ErrorIs(t, err, attendanceerrors.ErrEmployeeNotFound)
}

func TestService_Record(t *testing.T) {
	dir, emp := directoryWith("EMP001", "Alice")
	repo := &fakeLeaveRepo{}
	svc := newLeaveTestService(repo, dir, time.Now())

	taken := 2
	err := svc.Record(context.Background(), RecordLeaveRequest{
		EmployeeID: "EMP001", Month: "2024-05", LeavesTaken: &taken,
	})
	require.NoError(t, err)
	require.Len(t, repo.upserted, 1)
	assert.Equal(t, emp.ID, repo.upserted[0].EmployeeID)
	assert.Equal(t, "2024-05", repo.upserted[0].Month)
	assert.Equal(t, 2, repo.upserted[0].LeavesTaken)
}

func TestService_Record_InvalidMonth(t *testing.T) {
	dir, _ := directoryWith("EMP001", "Alice")
	svc := newLeaveTestService(&fakeLeaveRepo{}, dir, time.Now())

	taken := 2
	err := svc.Record(context.Background(), RecordLeaveRequest{
		EmployeeID: "EMP001", Month: "May 2024", LeavesTaken: &taken,
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
}

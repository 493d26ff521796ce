package attendance

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-attendance/internal/settings"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	employees map[string]*EmployeeRef
	records   map[string]*AttendanceRecord
	lastSeen  map[uuid.UUID]time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		employees: make(map[string]*EmployeeRef),
		records:   make(map[string]*AttendanceRecord),
		lastSeen:  make(map[uuid.UUID]time.Time),
	}
}

func (f *fakeRepo) key(employeeID uuid.UUID, date time.Time, typ AttendanceType) string {
	return employeeID.String() + date.Format("2006-01-02") + string(typ)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, rec *AttendanceRecord) error {
	cp := *rec
	f.records[f.key(rec.EmployeeID, rec.Date, rec.Type)] = &cp
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, rec *AttendanceRecord) error {
	cp := *rec
	f.records[f.key(rec.EmployeeID, rec.Date, rec.Type)] = &cp
	return nil
}

func (f *fakeRepo) FindDayRecord(ctx context.Context, employeeID uuid.UUID, date time.Time, typ AttendanceType) (*AttendanceRecord, error) {
	rec, ok := f.records[f.key(employeeID, date, typ)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeRepo) FindInRange(ctx context.Context, start, end time.Time, typ AttendanceType, codes []string) ([]AttendanceRecord, error) {
	var out []AttendanceRecord
	for _, rec := range f.records {
		if rec.Type != typ {
			continue
		}
		if rec.Date.Before(start) || rec.Date.After(end) {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (f *fakeRepo) FindLatestRecord(ctx context.Context, employeeID uuid.UUID) (*AttendanceRecord, error) {
	var latest *AttendanceRecord
	for _, rec := range f.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if latest == nil || rec.Date.After(latest.Date) {
			cp := *rec
			latest = &cp
		}
	}
	return latest, nil
}

func (f *fakeRepo) FindEmployeeByName(ctx context.Context, name string) (*EmployeeRef, error) {
	if emp, ok := f.employees[name]; ok {
		return emp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindEmployeeByCode(ctx context.Context, code string) (*EmployeeRef, error) {
	for _, emp := range f.employees {
		if emp.Code == code {
			return emp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindEmployeesSeenSince(ctx context.Context, cutoff time.Time, limit int) ([]EmployeeRef, error) {
	var out []EmployeeRef
	for _, emp := range f.employees {
		if emp.LastSeen != nil && !emp.LastSeen.Before(cutoff) {
			out = append(out, *emp)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountEmployees(ctx context.Context) (int64, error) {
	return int64(len(f.employees)), nil
}

func (f *fakeRepo) UpdateEmployeeLastSeen(ctx context.Context, employeeID uuid.UUID, at time.Time) error {
	f.lastSeen[employeeID] = at
	return nil
}

type fakeSettings struct {
	setting *settings.LocationSetting
}

func (f *fakeSettings) Get(ctx context.Context) (*settings.LocationSetting, error) {
	return f.setting, nil
}

func (f *fakeSettings) Save(ctx context.Context, s *settings.LocationSetting) error {
	f.setting = s
	return nil
}

type fakeLeaves struct{ total int64 }

func (f *fakeLeaves) SumAll(ctx context.Context) (int64, error) { return f.total, nil }

func newTestService(t *testing.T, repo Repository, office settings.Repository, now time.Time) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, repo, office, &fakeLeaves{}, nil).(*service)
	svc.nowFn = func() time.Time { return now }
	return svc, mock
}

func seedEmployee(repo *fakeRepo, name string) *EmployeeRef {
	emp := &EmployeeRef{ID: uuid.New(), Code: "EMP001", Name: name}
	repo.employees[name] = emp
	return emp
}

func TestService_Mark_FirstOfDayOnTime(t *testing.T) {
	repo := newFakeRepo()
	emp := seedEmployee(repo, "Alice")
	now := time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)

	svc, mock := newTestService(t, repo, &fakeSettings{}, now)
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice"})
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, ActionIn, res.Action)
	assert.False(t, res.IsLate)
	assert.Contains(t, res.Message, "Welcome, Alice!")
	assert.Contains(t, res.Message, "location check skipped")

	rec, _ := repo.FindDayRecord(context.Background(), emp.ID, DateOnly(now), TypeIn)
	require.NotNil(t, rec)
	assert.Equal(t, "On time", rec.Remarks)
	assert.Equal(t, now, repo.lastSeen[emp.ID])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Mark_LateEntryWithEmotion(t *testing.T) {
	repo := newFakeRepo()
	emp := seedEmployee(repo, "Alice")
	now := time.Date(2024, 6, 12, 11, 15, 0, 0, time.UTC)
	happy := "happy"

	svc, mock := newTestService(t, repo, &fakeSettings{}, now)
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice", EmotionalState: &happy})
	require.NoError(t, err)
	assert.True(t, res.IsLate)

	rec, _ := repo.FindDayRecord(context.Background(), emp.ID, DateOnly(now), TypeIn)
	require.NotNil(t, rec)
	assert.Equal(t, "Late entry", rec.Remarks)
	require.NotNil(t, rec.EmotionalState)
	assert.Equal(t, "happy", *rec.EmotionalState)
}

func TestService_Mark_BreakToggle(t *testing.T) {
	repo := newFakeRepo()
	emp := seedEmployee(repo, "Alice")
	date := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	// Checked in at 10:00.
	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: emp.ID, Date: date, Type: TypeIn, Time: date.Add(10 * time.Hour),
	})

	t.Run("lunch window opens a lunch break", func(t *testing.T) {
		now := date.Add(13*time.Hour + 45*time.Minute)
		svc, mock := newTestService(t, repo, &fakeSettings{}, now)
		mock.ExpectBegin()
		mock.ExpectCommit()

		res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, ActionBreakIn, res.Action)
		assert.Contains(t, res.Message, "Lunch Break In")

		rec, _ := repo.FindDayRecord(context.Background(), emp.ID, date, TypeIn)
		require.NotNil(t, rec.Breaks.OpenBreak())
		assert.Equal(t, BreakLunch, rec.Breaks.OpenBreak().Type)
	})

	t.Run("next mark closes the open break", func(t *testing.T) {
		now := date.Add(14*time.Hour + 20*time.Minute)
		svc, mock := newTestService(t, repo, &fakeSettings{}, now)
		mock.ExpectBegin()
		mock.ExpectCommit()

		res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, ActionBreakOut, res.Action)

		rec, _ := repo.FindDayRecord(context.Background(), emp.ID, date, TypeIn)
		assert.Nil(t, rec.Breaks.OpenBreak())
		assert.Len(t, rec.Breaks, 1)
	})

	t.Run("outside lunch window opens an other break", func(t *testing.T) {
		now := date.Add(16 * time.Hour)
		svc, mock := newTestService(t, repo, &fakeSettings{}, now)
		mock.ExpectBegin()
		mock.ExpectCommit()

		res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, ActionBreakIn, res.Action)
		assert.Contains(t, res.Message, "Other Break In")
	})
}

func TestService_Mark_CheckOutAfterMinimum(t *testing.T) {
	repo := newFakeRepo()
	emp := seedEmployee(repo, "Alice")
	date := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: emp.ID, Date: date, Type: TypeIn, Time: date.Add(10 * time.Hour),
	})

	now := date.Add(19*time.Hour + 5*time.Minute)
	svc, mock := newTestService(t, repo, &fakeSettings{}, now)
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, ActionOut, res.Action)
	assert.Contains(t, res.Message, "Goodbye, Alice!")

	out, _ := repo.FindDayRecord(context.Background(), emp.ID, date, TypeOut)
	require.NotNil(t, out)
}

func TestService_Mark_AlreadyCheckedOut(t *testing.T) {
	repo := newFakeRepo()
	emp := seedEmployee(repo, "Alice")
	date := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: emp.ID, Date: date, Type: TypeIn, Time: date.Add(10 * time.Hour),
	})
	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: emp.ID, Date: date, Type: TypeOut, Time: date.Add(19 * time.Hour),
	})

	now := date.Add(20 * time.Hour)
	svc, mock := newTestService(t, repo, &fakeSettings{}, now)
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, StatusInfo, res.Status)
	assert.Empty(t, res.Action)
	assert.Contains(t, res.Message, "already checked out")
}

func TestService_Mark_UnknownPerson(t *testing.T) {
	svc, mock := newTestService(t, newFakeRepo(), &fakeSettings{}, time.Now())

	for _, name := range []string{"", "Unknown", "unknown"} {
		res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: name})
		require.NoError(t, err)
		assert.Equal(t, StatusInfo, res.Status)
		assert.Equal(t, "Unknown", res.RecognizedName)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Mark_EmployeeNotRegistered(t *testing.T) {
	svc, mock := newTestService(t, newFakeRepo(), &fakeSettings{}, time.Now())

	res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Bob"})
	require.NoError(t, err)
	assert.Equal(t, StatusFailure, res.Status)
	assert.Contains(t, res.Message, "not found")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Mark_Geofence(t *testing.T) {
	office := &fakeSettings{setting: &settings.LocationSetting{
		Latitude: -6.2, Longitude: 106.8, RadiusMeters: 100,
	}}

	t.Run("outside radius is rejected", func(t *testing.T) {
		repo := newFakeRepo()
		seedEmployee(repo, "Alice")
		now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
		svc, mock := newTestService(t, repo, office, now)

		lat, lon := -6.21, 106.81 // ~1.5 km away
		res, err := svc.Mark(context.Background(), MarkRequest{
			RecognizedName: "Alice", Latitude: &lat, Longitude: &lon,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusInfo, res.Status)
		assert.Contains(t, res.Message, "away from the office")
		require.NotNil(t, res.DistanceMeters)
		assert.Greater(t, *res.DistanceMeters, 100.0)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inside radius marks normally", func(t *testing.T) {
		repo := newFakeRepo()
		seedEmployee(repo, "Alice")
		now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
		svc, mock := newTestService(t, repo, office, now)
		mock.ExpectBegin()
		mock.ExpectCommit()

		lat, lon := -6.2001, 106.8001
		res, err := svc.Mark(context.Background(), MarkRequest{
			RecognizedName: "Alice", Latitude: &lat, Longitude: &lon,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.NotContains(t, res.Message, "skipped")
	})

	t.Run("missing device location skips the check", func(t *testing.T) {
		repo := newFakeRepo()
		seedEmployee(repo, "Alice")
		now := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
		svc, mock := newTestService(t, repo, office, now)
		mock.ExpectBegin()
		mock.ExpectCommit()

		res, err := svc.Mark(context.Background(), MarkRequest{RecognizedName: "Alice"})
		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, res.Status)
		assert.Contains(t, res.Message, "device location not available")
	})
}

func TestService_WorkingHours(t *testing.T) {
	repo := newFakeRepo()
	emp := seedEmployee(repo, "Alice")
	date := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: emp.ID, Date: date, Type: TypeIn, Time: date.Add(10 * time.Hour),
	})
	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: emp.ID, Date: date, Type: TypeOut, Time: date.Add(19 * time.Hour),
	})

	svc, _ := newTestService(t, repo, &fakeSettings{}, date.Add(20*time.Hour))

	resp, err := svc.WorkingHours(context.Background(), "EMP001", "2024-06-10")
	require.NoError(t, err)
	assert.True(t, resp.Closed)
	assert.InDelta(t, 9.0, resp.WorkedHours, 0.001)

	_, err = svc.WorkingHours(context.Background(), "EMP001", "10-06-2024")
	assert.Error(t, err)

	_, err = svc.WorkingHours(context.Background(), "NOPE", "2024-06-10")
	assert.Error(t, err)
}

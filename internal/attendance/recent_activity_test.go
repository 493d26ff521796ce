package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecentActivity(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2024, 6, 12, 12, 0, 0, 0, time.UTC)

	seen := now.Add(-2 * time.Hour)
	alice := &EmployeeRef{ID: uuid.New(), Code: "EMP001", Name: "Alice", LastSeen: &seen}
	repo.employees["Alice"] = alice

	// Stale employee, last seen two weeks ago.
	staleSeen := now.AddDate(0, 0, -14)
	bob := &EmployeeRef{ID: uuid.New(), Code: "EMP002", Name: "Bob", LastSeen: &staleSeen}
	repo.employees["Bob"] = bob

	date := DateOnly(now)
	var breaks BreakList
	require.NoError(t, breaks.Open(date.Add(13*time.Hour+30*time.Minute), BreakLunch))
	breaks.CloseOpen(date.Add(14 * time.Hour))

	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: alice.ID, Date: date, Type: TypeIn,
		Time: date.Add(10 * time.Hour), Breaks: breaks, Remarks: "On time",
	})
	repo.Create(context.Background(), &AttendanceRecord{
		ID: uuid.New(), EmployeeID: bob.ID, Date: date.AddDate(0, 0, -14), Type: TypeIn,
		Time: date.AddDate(0, 0, -14).Add(10 * time.Hour),
	})

	svc, _ := newTestService(t, repo, &fakeSettings{}, now)

	rows, err := svc.RecentActivity(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Alice", row.EmployeeName)
	assert.Equal(t, "10:00 AM", row.InTime)
	assert.Equal(t, "-", row.OutTime)
	assert.Equal(t, "01:30 PM", row.LunchInTime)
	assert.Equal(t, "02:00 PM", row.LunchOutTime)
	// Still on site today.
	assert.Equal(t, "In progress...", row.WorkedHours)
	assert.Equal(t, "0.50 hours", row.BreakHours)
	assert.False(t, row.IsLate)
}

package leave

import (
	"time"

	"github.com/google/uuid"
)

// LeaveHistory tracks how many leave days an employee took in one calendar
// month. Month is "YYYY-MM"; one row per employee per month. Written by the
// HR import path, read by trend aggregation and the leave summary.
type LeaveHistory struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_leave_employee_month,priority:1"`
	Month       string    `gorm:"column:month;type:varchar(7);not null;uniqueIndex:uq_leave_employee_month,priority:2"`
	LeavesTaken int       `gorm:"column:leaves_taken;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (LeaveHistory) TableName() string {
	return "leave_histories"
}

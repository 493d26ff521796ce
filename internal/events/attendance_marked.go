package events

import "time"

const AttendanceMarkedTopic = "attendance.marked.v1"

// AttendanceMarkedEvent is emitted through the outbox whenever the state
// machine takes an action (IN, OUT, BREAK_IN, BREAK_OUT) for an employee.
type AttendanceMarkedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Action     string    `json:"action"`
	IsLate     bool      `json:"is_late"`
	OccurredAt time.Time `json:"occurred_at"`
}

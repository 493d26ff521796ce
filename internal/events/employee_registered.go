package events

import "time"

const EmployeeRegisteredTopic = "hr.employee.registered.v1"

type EmployeeRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmployeeID string    `json:"employee_id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

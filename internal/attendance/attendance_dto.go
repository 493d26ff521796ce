package attendance

// MarkRequest carries the output of the recognition oracle plus the device
// location for one attendance evaluation.
type MarkRequest struct {
	RecognizedName string   `json:"recognized_name"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	EmotionalState *string  `json:"emotional_state"`
}

// Mark statuses. Domain rejections (unknown person, outside the geofence,
// already checked out) are informational results, not errors.
const (
	StatusSuccess = "success"
	StatusInfo    = "info"
	StatusFailure = "failure"
)

// Attendance actions reported by the state machine.
const (
	ActionIn       = "IN"
	ActionOut      = "OUT"
	ActionBreakIn  = "BREAK_IN"
	ActionBreakOut = "BREAK_OUT"
)

type MarkResult struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	RecognizedName string   `json:"recognized_name"`
	Action         string   `json:"attendance_type,omitempty"`
	IsLate         bool     `json:"is_late"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

type WorkingHoursResponse struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	DayHours
}

// SummaryRow is one surviving IN record of a filtered summary, joined with
// its OUT record and computed hours.
type SummaryRow struct {
	EmployeeCode    string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	Date            string    `json:"date"`
	InTime          string    `json:"in_time"`
	OutTime         *string   `json:"out_time,omitempty"`
	Breaks          BreakList `json:"breaks,omitempty"`
	WorkedHours     float64   `json:"worked_hours"`
	LunchHours      float64   `json:"lunch_hours"`
	OtherBreakHours float64   `json:"other_break_hours"`
	Closed          bool      `json:"is_closed"`
}

// TrendsResponse holds sorted bucket keys with one parallel numeric series
// per category.
type TrendsResponse struct {
	Labels []string         `json:"labels"`
	Series map[string][]int `json:"series"`
}

// RecentActivityRow is one card of the recent-activity feed: the latest
// attendance day of an employee seen during the last week.
type RecentActivityRow struct {
	EmployeeName   string  `json:"employee_name"`
	EmployeeCode   string  `json:"employee_id"`
	Date           string  `json:"date"`
	InTime         string  `json:"in_time"`
	OutTime        string  `json:"out_time"`
	LunchInTime    string  `json:"lunch_in_time"`
	LunchOutTime   string  `json:"lunch_out_time"`
	WorkedHours    string  `json:"total_working_hours"`
	BreakHours     string  `json:"total_break_duration"`
	Remarks        string  `json:"remarks,omitempty"`
	IsLate         bool    `json:"is_late"`
	EmotionalState *string `json:"emotional_state,omitempty"`
}

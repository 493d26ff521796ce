package report

// Row is one display-ready line of an attendance report. All values are
// preformatted strings so every export format renders identically.
type Row struct {
	EmployeeID      string `json:"employee_id"`
	EmployeeName    string `json:"employee_name"`
	Date            string `json:"date"`
	InTime          string `json:"in_time"`
	OutTime         string `json:"out_time"`
	WorkedHours     string `json:"worked_hours"`
	LunchHours      string `json:"lunch_hours"`
	OtherBreakHours string `json:"other_break_hours"`
	OvertimeHours   string `json:"overtime_hours"`
	Status          string `json:"status"`
}

// columns is the export header, in render order.
var columns = []string{
	"Employee ID", "Name", "Date", "In Time", "Out Time",
	"Worked Hours", "Lunch", "Other Breaks", "Overtime", "Status",
}

func (r Row) values() []string {
	return []string{
		r.EmployeeID, r.EmployeeName, r.Date, r.InTime, r.OutTime,
		r.WorkedHours, r.LunchHours, r.OtherBreakHours, r.OvertimeHours, r.Status,
	}
}

type Query struct {
	StartDate   string
	EndDate     string
	EmployeeIDs []string
	MaxHours    *float64
	SortBy      string
	Descending  bool
}

package attendance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AttendanceType string

const (
	TypeIn  AttendanceType = "IN"
	TypeOut AttendanceType = "OUT"
)

// AttendanceRecord is one half of the daily IN/OUT pair. Breaks live only on
// the IN record, as an ordered jsonb array.
type AttendanceRecord struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID     uuid.UUID      `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:uq_attendance_day_type,priority:1"`
	Date           time.Time      `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_day_type,priority:2"`
	Type           AttendanceType `gorm:"column:attendance_type;type:varchar(10);not null;uniqueIndex:uq_attendance_day_type,priority:3"`
	Time           time.Time      `gorm:"column:event_time;type:timestamptz;not null"`
	Remarks        string         `gorm:"column:remarks;type:varchar(255)"`
	EmotionalState *string        `gorm:"column:emotional_state;type:varchar(50)"`
	Breaks         BreakList      `gorm:"column:breaks;type:jsonb"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	Employee       *EmployeeRef   `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (AttendanceRecord) TableName() string {
	return "attendance_records"
}

// EmployeeRef is a narrow read model over the employees table. The full
// entity is owned by the employee package; the engine only reads identity
// and role and writes last_seen.
type EmployeeRef struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code     string     `gorm:"column:employee_id"`
	Name     string     `gorm:"column:name"`
	Role     string     `gorm:"column:role"`
	LastSeen *time.Time `gorm:"column:last_seen"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

type BreakType string

const (
	BreakLunch BreakType = "LUNCH"
	BreakOther BreakType = "OTHER"
)

// Break is a sub-interval of an IN session. Times are clock-of-day strings
// ("15:04:05"); overnight breaks are not supported.
type Break struct {
	Type     BreakType `json:"break_type"`
	BreakIn  string    `json:"break_in"`
	BreakOut *string   `json:"break_out,omitempty"`
}

func (b Break) open() bool {
	return b.BreakOut == nil
}

// Duration returns the elapsed interval once both ends are set, zero
// otherwise.
func (b Break) Duration() time.Duration {
	if b.BreakOut == nil {
		return 0
	}
	in, err := ParseClock(b.BreakIn)
	if err != nil {
		return 0
	}
	out, err := ParseClock(*b.BreakOut)
	if err != nil || out < in {
		return 0
	}
	return out - in
}

var ErrBreakAlreadyOpen = errors.New("a break is already open")

// BreakList is the ordered break sequence stored on the day's IN record.
// Mutation goes through Open and CloseOpen only; at most one element is
// open and it is always the last one.
type BreakList []Break

// Open appends a new open break. It fails if one is already open.
func (bl *BreakList) Open(at time.Time, breakType BreakType) error {
	if bl.OpenBreak() != nil {
		return ErrBreakAlreadyOpen
	}
	*bl = append(*bl, Break{
		Type:    breakType,
		BreakIn: FormatClock(at),
	})
	return nil
}

// CloseOpen closes the open break, if any, and reports whether one was
// closed.
func (bl BreakList) CloseOpen(at time.Time) (Break, bool) {
	idx := len(bl) - 1
	if idx < 0 || !bl[idx].open() {
		return Break{}, false
	}
	out := FormatClock(at)
	bl[idx].BreakOut = &out
	return bl[idx], true
}

// OpenBreak returns the currently open break or nil.
func (bl BreakList) OpenBreak() *Break {
	if len(bl) == 0 {
		return nil
	}
	last := &bl[len(bl)-1]
	if last.open() {
		return last
	}
	return nil
}

// Durations sums closed breaks into the lunch and other buckets.
func (bl BreakList) Durations() (lunch, other time.Duration) {
	for _, b := range bl {
		d := b.Duration()
		if d == 0 {
			continue
		}
		if b.Type == BreakLunch {
			lunch += d
		} else {
			other += d
		}
	}
	return lunch, other
}

func (bl BreakList) Value() (driver.Value, error) {
	if bl == nil {
		return nil, nil
	}
	return json.Marshal(bl)
}

func (bl *BreakList) Scan(value any) error {
	if value == nil {
		*bl = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported breaks column type %T", value)
	}
	return json.Unmarshal(raw, bl)
}

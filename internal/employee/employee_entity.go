package employee

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleTrainee         Role = "TRAINEE"
	RoleJuniorDeveloper Role = "JUNIOR_DEVELOPER"
	RoleSeniorDeveloper Role = "SENIOR_DEVELOPER"
	RoleTeamLeader      Role = "TEAM_LEADER"
	RoleHR              Role = "HR"
	RoleCEO             Role = "CEO"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTrainee, RoleJuniorDeveloper, RoleSeniorDeveloper, RoleTeamLeader, RoleHR, RoleCEO:
		return true
	}
	return false
}

// Employee is the registered identity the recognition pipeline resolves
// against. Code is the human-facing badge number; FaceEncoding holds the
// serialized embedding produced at registration.
type Employee struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string     `gorm:"column:employee_id;size:32;uniqueIndex" json:"employee_id"`
	Name         string     `gorm:"size:255;uniqueIndex" json:"name"`
	Role         Role       `gorm:"size:32" json:"role"`
	PhotoURL     string     `gorm:"size:512" json:"photo_url,omitempty"`
	FaceEncoding []byte     `gorm:"type:bytea" json:"-"`
	LastSeen     *time.Time `gorm:"column:last_seen" json:"last_seen,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

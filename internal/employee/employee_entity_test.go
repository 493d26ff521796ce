package employee

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, role := range []Role{
		RoleTrainee, RoleJuniorDeveloper, RoleSeniorDeveloper,
		RoleTeamLeader, RoleHR, RoleCEO,
	} {
		assert.True(t, role.Valid(), string(role))
	}

	for _, role := range []Role{"", "MANAGER", "DIRECTOR", "junior_developer"} {
		assert.False(t, role.Valid(), string(role))
	}
}

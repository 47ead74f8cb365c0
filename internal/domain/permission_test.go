package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserPermissions(t *testing.T) {
	admin := &Profile{Permissions: []string{"patients.list", "patients.delete"}, Roles: []string{RoleLocalAdmin}}

	tests := []struct {
		name        string
		grants      Grants
		permissions []string
		roles       []string
		want        bool
	}{
		{"no requirements", admin, nil, nil, true},
		{"all permissions present", admin, []string{"patients.list", "patients.delete"}, nil, true},
		{"one permission missing", admin, []string{"patients.list", "users.delete"}, nil, false},
		{"any role is enough", admin, nil, []string{RoleGeneralAdmin, RoleLocalAdmin}, true},
		{"no matching role", admin, nil, []string{RoleGeneralAdmin}, false},
		{"permissions and roles both checked", admin, []string{"patients.list"}, []string{RoleGeneralAdmin}, false},
		{"claims satisfy roles", &Claims{Roles: []string{RoleGeneralAdmin}}, nil, []string{RoleGeneralAdmin}, true},
		{"nil grants with requirements", nil, nil, []string{RoleLocalAdmin}, false},
		{"nil grants without requirements", nil, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateUserPermissions(tt.grants, tt.permissions, tt.roles))
		})
	}
}

func TestCan(t *testing.T) {
	usmStaff := &Profile{User: Identity{Department: DepartmentUSM}}
	svsStaff := &Profile{User: Identity{Department: DepartmentSVS}, Roles: []string{RoleLocalAdmin}}
	general := &Profile{User: Identity{Department: DepartmentSVS}, Roles: []string{RoleGeneralAdmin}}

	assert.False(t, Can(general, false, AccessCheck{}), "unauthenticated")
	assert.False(t, Can(nil, true, AccessCheck{}), "no profile")
	assert.True(t, Can(svsStaff, true, AccessCheck{Roles: []string{RoleLocalAdmin, RoleGeneralAdmin}}))
	assert.False(t, Can(usmStaff, true, AccessCheck{Roles: []string{RoleGeneralAdmin}}))

	assert.True(t, Can(usmStaff, true, AccessCheck{USMOnly: true}))
	assert.True(t, Can(general, true, AccessCheck{USMOnly: true}))
	assert.False(t, Can(svsStaff, true, AccessCheck{USMOnly: true}))
}

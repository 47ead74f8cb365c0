package domain

import "slices"

// Roles and departments known to the console.
const (
	RoleGeneralAdmin = "general.admin"
	RoleLocalAdmin   = "local.admin"

	DepartmentUSM = "USM"
	DepartmentSVS = "SVS"
)

// Grants is anything carrying permissions and roles (a Profile or token Claims).
type Grants interface {
	GrantedPermissions() []string
	GrantedRoles() []string
}

// GrantedPermissions implements Grants.
func (p *Profile) GrantedPermissions() []string { return p.Permissions }

// GrantedRoles implements Grants.
func (p *Profile) GrantedRoles() []string { return p.Roles }

// GrantedPermissions implements Grants.
func (c *Claims) GrantedPermissions() []string { return c.Permissions }

// GrantedRoles implements Grants.
func (c *Claims) GrantedRoles() []string { return c.Roles }

// AccessCheck lists what a screen or action requires.
// Every permission is required; any one of the roles is enough.
type AccessCheck struct {
	Permissions []string
	Roles       []string
	// USMOnly restricts access to health unit staff and general admins.
	USMOnly bool
}

// ValidateUserPermissions reports whether grants satisfy the permissions and roles.
// Empty lists impose no requirement; a nil grants value satisfies only empty lists.
func ValidateUserPermissions(grants Grants, permissions, roles []string) bool {
	var have, haveRoles []string
	if grants != nil {
		have = grants.GrantedPermissions()
		haveRoles = grants.GrantedRoles()
	}
	for _, p := range permissions {
		if !slices.Contains(have, p) {
			return false
		}
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if slices.Contains(haveRoles, r) {
			return true
		}
	}
	return false
}

// Can reports whether an authenticated profile passes check.
func Can(profile *Profile, authenticated bool, check AccessCheck) bool {
	if !authenticated || profile == nil {
		return false
	}
	if check.USMOnly {
		return slices.Contains(profile.Roles, RoleGeneralAdmin) || profile.User.Department == DepartmentUSM
	}
	return ValidateUserPermissions(profile, check.Permissions, check.Roles)
}

package model

// Role is the capability level of an authenticated principal.
type Role string

const (
	RoleUser       Role = "user"
	RoleVendor     Role = "vendor"
	RoleSuperAdmin Role = "super_admin"
)

// AdminRoles are the roles allowed into admin-area endpoints.
var AdminRoles = []Role{RoleVendor, RoleSuperAdmin}

// Valid reports whether r is one of the hard-coded roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleSuperAdmin:
		return true
	}
	return false
}

package models

// Role is a named permission tag. The set of roles is closed; free-form role
// strings are rejected at the boundary.
type Role string

const (
	// RoleAdmin satisfies every role check.
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleHR     Role = "hr"
	RoleViewer Role = "viewer"
)

// AllRoles lists every known role.
var AllRoles = []Role{RoleAdmin, RoleEditor, RoleHR, RoleViewer}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Satisfies reports whether holding r grants the permission named by required.
// Admin implies all; this is the single place that rule lives.
func (r Role) Satisfies(required Role) bool {
	return r == RoleAdmin || r == required
}

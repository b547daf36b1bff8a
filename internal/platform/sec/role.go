// Copyright (c) 2026 Raytha. All rights reserved.

package sec

// # User Roles

// UserRole represents the authorization level granted to an administrative account.
type UserRole string

const (
	// Unrestricted system access: schema changes, templates, user management
	RoleAdmin UserRole = "admin"

	// Can create and publish content items and manage views
	RoleEditor UserRole = "editor"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleEditor:
		return 20
	default:
		return 0
	}
}

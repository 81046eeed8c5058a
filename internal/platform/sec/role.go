// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// A role is stored as a single scalar value on the account and copied into
// the session token at login.
type Role string

const (
	// Unrestricted access to every user, project and task
	RoleAdmin Role = "admin"

	// Default role for registered users
	RoleUser Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// ParseRole converts a stored or claimed value into a [Role].
func ParseRole(value string) (Role, bool) {
	role := Role(value)
	return role, role.Valid()
}

// Roles lists every known role, e.g. for validation schemas.
func Roles() []string {
	return []string{string(RoleUser), string(RoleAdmin)}
}

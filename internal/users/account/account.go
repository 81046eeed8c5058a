// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user management once an account exists.

Users read, update and delete their own account, addressed by id or by the
alias "me". Administrators may manage every account, list them, and change
roles.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: Ownership is decided on the target id before any lookup, so a
    regular user learns nothing about other ids.
*/
package account

import (
	"context"

	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

// # Field Identifiers

const (
	ParamID = "id"

	// AliasMe addresses the signed-in user.
	AliasMe = "me"
)

// # Messages

// MsgRoleChangeForbidden is returned when a non-admin sends a role.
const MsgRoleChangeForbidden = "Only administrators can change roles"

// # Repository Contracts

// AccountRepository is the part of [auth.UserRepository] this package needs.
type AccountRepository interface {
	List(context context.Context) ([]*auth.User, error)
	FindByID(context context.Context, id int64) (*auth.User, error)
	Update(context context.Context, user *auth.User) error
	Delete(context context.Context, id int64) error
}

// PasswordHasher hashes replacement passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
}

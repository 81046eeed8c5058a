// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements sign-in and registration.

It owns the [User] entity shared by the account package, issues session
tokens for valid credentials, and slows down repeated failures for the same
email address.
*/
package auth

import (
	"strings"

	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
)

// # Domain Entities

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID           int64    `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         sec.Role `json:"role"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldToken    = "token"
)

// # Messages

const (
	MsgLoginFailed = "The given email and password do not match"
	MsgEmailTaken  = "There is already a user with this email address"
)

// ConstraintUserEmail is the unique constraint on users.email.
const ConstraintUserEmail = "users_email_key"

// StoreErrors translates user store failures.
var StoreErrors = dberr.Options{
	Resource:    "User",
	Constraints: map[string]string{ConstraintUserEmail: MsgEmailTaken},
}

// failureKey is the login failure counter key of an email address.
func failureKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

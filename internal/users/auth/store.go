// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Implementations translate their failures through [StoreErrors], so a
// missing row is a NotFound and a duplicate email is a Conflict.
type UserRepository interface {

	/*
		List returns every account ordered by id.
	*/
	List(context context.Context) ([]*User, error)

	/*
		FindByID returns the account with the given id.

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or storage failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Returns:
		  - *User: Hydrated entity
		  - error: NotFound or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a new account and sets its ID.

		Returns:
		  - error: Conflict when the email is taken
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists username, email, password hash and role.

		Returns:
		  - error: NotFound, Conflict when the email is taken
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePasswordHash replaces only the stored hash, used when upgrading
		records hashed with older cost parameters.
	*/
	UpdatePasswordHash(context context.Context, id int64, hash string) error

	/*
		Delete removes the account together with everything it owns.
	*/
	Delete(context context.Context, id int64) error
}

// # Volatile Data Access

// FailureTracker counts recent failed logins per email address.
type FailureTracker interface {

	// Count returns the failures recorded for key within the window.
	Count(context context.Context, key string) (int64, error)

	// Increment records a failure and returns the new count.
	Increment(context context.Context, key string) (int64, error)

	// Reset forgets the failures of key.
	Reset(context context.Context, key string) error
}

// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/taakbeheer/internal/platform/database/schema"
	"github.com/taibuivan/taakbeheer/internal/platform/dberr"
	"github.com/taibuivan/taakbeheer/internal/platform/postgres"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	db postgres.Querier
}

var _ UserRepository = (*PostgresUserRepository)(nil)

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

var (
	userTable   = schema.UsersAccount
	userColumns = schema.List("", userTable.Columns())
)

func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var role string
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &role); err != nil {
		return nil, err
	}
	user.Role = sec.Role(role)
	return user, nil
}

// List returns every account ordered by id.
func (repository *PostgresUserRepository) List(context context.Context) ([]*User, error) {
	rows, err := repository.db.Query(context, `SELECT `+userColumns+` FROM `+userTable.Table+` ORDER BY `+userTable.ID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users", StoreErrors)
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user", StoreErrors)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "list_users", StoreErrors)
	}
	return users, nil
}

// FindByID returns the account with the given id.
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	row := repository.db.QueryRow(context, `SELECT `+userColumns+` FROM `+userTable.Table+` WHERE `+userTable.ID+` = $1`, id)
	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id", StoreErrors)
	}
	return user, nil
}

// FindByEmail returns the account with the given email.
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	row := repository.db.QueryRow(context, `SELECT `+userColumns+` FROM `+userTable.Table+` WHERE `+userTable.Email+` = $1`, email)
	user, err := scanUser(row)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email", StoreErrors)
	}
	return user, nil
}

/*
Create inserts a new account and sets user.ID.

Returns:
  - error: Conflict with [MsgEmailTaken] on a duplicate email
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := repository.db.QueryRow(context, query,
		user.Username, user.Email, user.PasswordHash, string(user.Role),
	).Scan(&user.ID)
	if err != nil {
		return dberr.Wrap(err, "create_user", StoreErrors)
	}
	return nil
}

// Update persists the mutable fields of user.
func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	const query = `
		UPDATE users
		SET username = $2, email = $3, password_hash = $4, role = $5, updated_at = NOW()
		WHERE id = $1`

	tag, err := repository.db.Exec(context, query,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role),
	)
	if err != nil {
		return dberr.Wrap(err, "update_user", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "update_user", StoreErrors)
	}
	return nil
}

// UpdatePasswordHash replaces the stored hash of the account.
func (repository *PostgresUserRepository) UpdatePasswordHash(context context.Context, id int64, hash string) error {
	tag, err := repository.db.Exec(context,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`, id, hash)
	if err != nil {
		return dberr.Wrap(err, "update_user_password_hash", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "update_user_password_hash", StoreErrors)
	}
	return nil
}

// Delete removes the account. Projects, their tasks and assignments cascade.
func (repository *PostgresUserRepository) Delete(context context.Context, id int64) error {
	tag, err := repository.db.Exec(context, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user", StoreErrors)
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(dberr.ErrNoRows, "delete_user", StoreErrors)
	}
	return nil
}

// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"log/slog"

	"github.com/samber/oops"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
	"github.com/taibuivan/taakbeheer/internal/platform/ctxutil"
	"github.com/taibuivan/taakbeheer/internal/platform/sec"
	"github.com/taibuivan/taakbeheer/internal/users/auth"
)

// Service implements account management use cases.
type Service struct {
	accounts AccountRepository
	hasher   PasswordHasher
}

// NewService constructs a new [Service].
func NewService(accounts AccountRepository, hasher PasswordHasher) *Service {
	return &Service{accounts: accounts, hasher: hasher}
}

// List returns every account. Administrators only.
func (service *Service) List(context context.Context, session sec.Session) ([]*auth.User, error) {
	if err := sec.RequireRole(session, sec.RoleAdmin); err != nil {
		return nil, err
	}
	return service.accounts.List(context)
}

/*
Get returns one account.

Parameters:
  - context: context.Context
  - session: The caller
  - id: Target account

Returns:
  - *auth.User: The account
  - error: Forbidden for another user's id unless admin, NotFound
*/
func (service *Service) Get(context context.Context, session sec.Session, id int64) (*auth.User, error) {
	if err := sec.RequireOwnerOrRole(session, id, sec.RoleAdmin); err != nil {
		return nil, err
	}
	return service.accounts.FindByID(context, id)
}

// UpdateInput holds the optional changes of an account. Nil means unchanged.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *sec.Role
}

/*
Update applies changes to an account.

Description: The owner or an administrator may change username, email and
password. Only administrators may change the role.

Returns:
  - *auth.User: The updated account
  - error: Forbidden, NotFound, Conflict on a duplicate email
*/
func (service *Service) Update(context context.Context, session sec.Session, id int64, input UpdateInput) (*auth.User, error) {
	if err := sec.RequireOwnerOrRole(session, id, sec.RoleAdmin); err != nil {
		return nil, err
	}
	if input.Role != nil && !session.IsAdmin() {
		return nil, apperr.Forbidden(MsgRoleChangeForbidden)
	}

	user, err := service.accounts.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Password != nil {
		hash, err := service.hasher.Hash(*input.Password)
		if err != nil {
			return nil, apperr.Internal(oops.Code("PASSWORD_HASH_FAILED").With("user_id", id).Wrap(err))
		}
		user.PasswordHash = hash
	}

	if err := service.accounts.Update(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_updated",
		slog.Int64("user_id", id),
		slog.Bool("role_changed", input.Role != nil),
		slog.Bool("password_changed", input.Password != nil),
	)
	return user, nil
}

// Delete removes an account. Existing tokens stay valid until they expire.
func (service *Service) Delete(context context.Context, session sec.Session, id int64) error {
	if err := sec.RequireOwnerOrRole(session, id, sec.RoleAdmin); err != nil {
		return err
	}
	if err := service.accounts.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_deleted", slog.Int64("user_id", id))
	return nil
}

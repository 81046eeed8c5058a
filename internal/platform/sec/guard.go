// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "github.com/taibuivan/taakbeheer/internal/platform/apperr"

// # Authorization Guards
//
// Guards are pure decisions over a [Session] and data already loaded by the
// caller. They never fetch anything themselves.

// MsgNotPermitted is the message of every Forbidden produced by the guards.
const MsgNotPermitted = "You are not allowed to perform this action"

// RequireAuthenticated fails with Unauthorized for the zero Session.
func RequireAuthenticated(session Session) error {
	if session.IsZero() {
		return apperr.UnauthorizedCause(MsgSignInRequired, ErrMissingCredentials)
	}
	return nil
}

// RequireRole fails with Forbidden unless the session holds role.
func RequireRole(session Session, role Role) error {
	if err := RequireAuthenticated(session); err != nil {
		return err
	}
	if session.role != role {
		return apperr.Forbidden(MsgNotPermitted)
	}
	return nil
}

// RequireOwnerOrRole fails with Forbidden unless the session owns the resource or holds role.
func RequireOwnerOrRole(session Session, ownerID int64, role Role) error {
	if err := RequireAuthenticated(session); err != nil {
		return err
	}
	if session.userID == ownerID || session.role == role {
		return nil
	}
	return apperr.Forbidden(MsgNotPermitted)
}

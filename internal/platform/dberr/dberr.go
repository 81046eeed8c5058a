// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Stores call [Wrap] on every error they return. Unique and foreign key
// violations become Conflict, missing rows become NotFound, and everything
// else becomes Internal wrapped in an oops error carrying the operation.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"github.com/taibuivan/taakbeheer/internal/platform/apperr"
)

// ErrNoRows is the storage-neutral "no such row" signal.
// Postgres stores surface pgx.ErrNoRows, the in-memory store returns this.
var ErrNoRows = errors.New("dberr: no rows")

// ConstraintError is the storage-neutral constraint violation returned by
// stores that are not backed by Postgres.
type ConstraintError struct {
	Constraint string
	Reference  bool
}

func (e *ConstraintError) Error() string {
	if e.Reference {
		return "dberr: reference constraint " + e.Constraint + " violated"
	}
	return "dberr: unique constraint " + e.Constraint + " violated"
}

// Options tunes the translation for one call site.
type Options struct {
	// Resource names the entity for NotFound messages, e.g. "Project".
	Resource string

	// Constraints maps constraint names to client messages for Conflict responses.
	Constraints map[string]string
}

// Default conflict messages when a constraint has no dedicated message.
const (
	MsgDuplicate       = "A record with these values already exists"
	MsgReferenceFailed = "The operation conflicts with related records"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string, opts Options) error {
	if err == nil {
		return nil
	}

	// Already classified further down the stack
	if _, ok := apperr.As(err); ok {
		return err
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNoRows) {
		resource := opts.Resource
		if resource == "" {
			resource = "Resource"
		}
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations
	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.ConflictCause(conflictMessage(opts, pgError.ConstraintName, MsgDuplicate), err)
		case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
			return apperr.ConflictCause(conflictMessage(opts, pgError.ConstraintName, MsgReferenceFailed), err)
		}
	}

	var constraintError *ConstraintError
	if errors.As(err, &constraintError) {
		fallback := MsgDuplicate
		if constraintError.Reference {
			fallback = MsgReferenceFailed
		}
		return apperr.ConflictCause(conflictMessage(opts, constraintError.Constraint, fallback), err)
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(oops.Code("STORE_FAILED").With("action", action).Wrap(err))
}

func conflictMessage(opts Options, constraint, fallback string) string {
	if message, ok := opts.Constraints[constraint]; ok {
		return message
	}
	return fallback
}

// Copyright (c) 2026 Plume. All rights reserved.

// Package dberr bridges low-level PostgreSQL errors and application errors.
//
// Storage-specific failures (missing rows, constraint violations) are mapped
// to [apperr.AppError] values here so repositories never leak pgx error text
// through the HTTP surface.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/plumehq/plume/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into a meaningful
// [apperr.AppError].
//
// # Mapping
//
//   - pgx.ErrNoRows            → 404 NOT_FOUND for the named resource
//   - SQLSTATE 23505 (unique)  → 409 CONFLICT
//   - SQLSTATE 23503 (FK)      → 404 NOT_FOUND (the referenced row is gone)
//   - anything else            → 500 INTERNAL_ERROR, cause kept server-side
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	var pgError *pgconn.PgError
	if errors.As(err, &pgError) {
		switch pgError.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists")
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound("Referenced " + resource)
		}
	}

	return apperr.Internal(fmt.Errorf("dberr: %s: %w", resource, err))
}

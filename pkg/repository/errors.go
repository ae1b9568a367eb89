package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the domain repositories translate.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
)

// MapError translates sql.ErrNoRows to notFoundErr and a unique violation to
// duplicateErr. Any other error passes through unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFoundErr
	case HasCode(err, CodeUniqueViolation):
		return duplicateErr
	default:
		return err
	}
}

// MapReference translates a foreign key violation to referenceErr.
func MapReference(err error, referenceErr error) error {
	if HasCode(err, CodeForeignKeyViolation) {
		return referenceErr
	}
	return err
}

// HasCode reports whether err wraps a PostgreSQL error with the given SQLSTATE.
func HasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

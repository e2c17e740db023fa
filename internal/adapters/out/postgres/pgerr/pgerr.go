// Package pgerr maps Postgres driver errors onto the errs taxonomy so that
// callers above the adapters can match them with errors.Is.
package pgerr

import (
	"errors"

	"shop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the adapters react to.
const (
	NumericOutOfRange    = "22003"
	UniqueViolation      = "23505"
	CheckViolation       = "23514"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
)

// Classify wraps err according to its SQLSTATE:
//   - serialization failures and deadlocks become errs.VersionIsInvalidError
//   - unique and check violations become errs.ValueIsInvalidError
//   - numeric overflow of a column becomes errs.ValueIsOutOfRangeError
//
// Anything else, including nil, is returned unchanged.
func Classify(err error, param string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case SerializationFailure, DeadlockDetected:
		return errs.NewVersionIsInvalidError(param, err)
	case UniqueViolation, CheckViolation:
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	case NumericOutOfRange:
		return errs.NewValueIsOutOfRangeErrorWithCause(param, pgErr.ColumnName, nil, nil, err)
	default:
		return err
	}
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == UniqueViolation
}

package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"shop/internal/adapters/out/postgres/pgerr"
	"shop/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Run("should map lock conflicts to version errors", func(t *testing.T) {
		for _, code := range []string{pgerr.SerializationFailure, pgerr.DeadlockDetected} {
			err := pgerr.Classify(fmt.Errorf("exec: %w", &pgconn.PgError{Code: code}), "product")

			require.ErrorIs(t, err, errs.ErrVersionIsInvalid, code)
		}
	})

	t.Run("should map constraint violations to invalid values", func(t *testing.T) {
		for _, code := range []string{pgerr.UniqueViolation, pgerr.CheckViolation} {
			err := pgerr.Classify(&pgconn.PgError{Code: code}, "product")

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, code)
		}
	})

	t.Run("should map numeric overflow to out of range", func(t *testing.T) {
		err := pgerr.Classify(&pgconn.PgError{Code: pgerr.NumericOutOfRange, ColumnName: "stock"}, "product")

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		var target *errs.ValueIsOutOfRangeError
		require.ErrorAs(t, err, &target)
		assert.Equal(t, "stock", target.Value)
	})

	t.Run("should pass other errors through", func(t *testing.T) {
		plain := errors.New("connection refused")
		other := &pgconn.PgError{Code: "22001"}

		assert.Same(t, plain, pgerr.Classify(plain, "x"))
		assert.Equal(t, error(other), pgerr.Classify(other, "x"))
		assert.NoError(t, pgerr.Classify(nil, "x"))
	})
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, pgerr.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pgerr.IsUniqueViolation(&pgconn.PgError{Code: "22001"}))
	assert.False(t, pgerr.IsUniqueViolation(errors.New("23505")))
}

package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapDBError(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, MapDBError(nil))
	})

	t.Run("deadline exceeded", func(t *testing.T) {
		t.Parallel()
		err := MapDBError(fmt.Errorf("query: %w", context.DeadlineExceeded))
		assert.True(t, IsTimeout(err))
	})

	t.Run("no rows", func(t *testing.T) {
		t.Parallel()
		err := MapDBError(fmt.Errorf("scan: %w", pgx.ErrNoRows))
		assert.True(t, IsNotFound(err))
	})

	t.Run("connection exception", func(t *testing.T) {
		t.Parallel()
		pgErr := &pgconn.PgError{Code: pgerrcode.ConnectionFailure}
		err := MapDBError(fmt.Errorf("query: %w", pgErr))
		assert.True(t, IsUnavailable(err))
	})

	t.Run("undefined table", func(t *testing.T) {
		t.Parallel()
		pgErr := &pgconn.PgError{Code: pgerrcode.UndefinedTable}
		err := MapDBError(pgErr)
		assert.True(t, IsInternal(err))
	})

	t.Run("other pg error", func(t *testing.T) {
		t.Parallel()
		pgErr := &pgconn.PgError{Code: pgerrcode.UniqueViolation}
		err := MapDBError(pgErr)
		assert.True(t, IsInternal(err))
	})

	t.Run("unrecognized error passes through", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("not a db error")
		assert.Equal(t, cause, MapDBError(cause))
	})
}

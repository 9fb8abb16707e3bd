package pg_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sluggable/pkg/pg"
)

func TestErrorClassification(t *testing.T) {
	duplicate := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	undefined := &pgconn.PgError{Code: "42703"}

	assert.True(t, pg.IsNotFoundError(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)))
	assert.False(t, pg.IsNotFoundError(nil))
	assert.False(t, pg.IsNotFoundError(errors.New("other")))

	assert.True(t, pg.IsDuplicateKeyError(duplicate))
	assert.False(t, pg.IsDuplicateKeyError(undefined))
	assert.False(t, pg.IsDuplicateKeyError(nil))

	assert.True(t, pg.IsUndefinedColumnError(undefined))
	assert.False(t, pg.IsUndefinedColumnError(duplicate))
	assert.False(t, pg.IsUndefinedColumnError(nil))
}

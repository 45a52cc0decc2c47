package pgerrs_test

import (
	"errors"
	"fmt"
	"testing"

	"restaurant/internal/adapters/out/postgres/pgerrs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_orders_number"})
	name, ok := pgerrs.IsUniqueViolation(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "idx_orders_number", name)

	_, ok = pgerrs.IsUniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)

	_, ok = pgerrs.IsUniqueViolation(gorm.ErrDuplicatedKey)
	assert.True(t, ok)

	_, ok = pgerrs.IsUniqueViolation(errors.New("boom"))
	assert.False(t, ok)
}

func TestIsForeignKeyViolation(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"})
	assert.True(t, pgerrs.IsForeignKeyViolation(wrapped))
	assert.True(t, pgerrs.IsForeignKeyViolation(gorm.ErrForeignKeyViolated))

	assert.False(t, pgerrs.IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pgerrs.IsForeignKeyViolation(errors.New("boom")))
}

// Package pgerrs maps PostgreSQL driver errors onto the domain error taxonomy.
package pgerrs

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	// UniqueViolation is SQLSTATE unique_violation.
	UniqueViolation = "23505"
	// ForeignKeyViolation is SQLSTATE foreign_key_violation.
	ForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err is a unique-key collision and, when
// known, the name of the violated constraint.
func IsUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolation {
		return pgErr.ConstraintName, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	return "", false
}

// IsForeignKeyViolation reports whether err references a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == ForeignKeyViolation
	}
	return errors.Is(err, gorm.ErrForeignKeyViolated)
}

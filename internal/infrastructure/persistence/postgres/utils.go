package postgres

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// isDuplicateError reports a unique index violation.
// Postgres: SQLSTATE 23505 "duplicate key value violates unique constraint".
// SQLite: "UNIQUE constraint failed".
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// isForeignKeyError reports a row still referenced by another table.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "violates foreign key constraint") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}

// isUniqueOn reports a unique violation naming column.
func isUniqueOn(err error, column string) bool {
	return isDuplicateError(err) && strings.Contains(err.Error(), column)
}

func newID() string {
	return uuid.NewString()
}

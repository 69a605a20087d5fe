package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// isUniqueViolation reports whether err is a unique-constraint violation
// raised by either supported driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

// uniqueConstraintHint returns a lower-cased string naming the violated
// constraint, for deciding which column collided. PostgreSQL reports the
// constraint name directly; SQLite embeds "table.column" in the message.
// Returns "" when err is not a unique violation.
func uniqueConstraintHint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.ToLower(pgErr.ConstraintName)
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return strings.ToLower(sqliteErr.Error())
	}

	return ""
}

// classifyUserInsertError maps a failed users INSERT to the matching domain
// sentinel, or returns false when the error is not a unique violation.
func classifyUserInsertError(err error) (error, bool) {
	if !isUniqueViolation(err) {
		return nil, false
	}

	if strings.Contains(uniqueConstraintHint(err), "email") {
		return ErrEmailAlreadyExists, true
	}
	return ErrUsernameAlreadyExists, true
}

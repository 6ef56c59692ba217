package database

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func IsNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

// Violation returns the constraint name when err is a PostgreSQL error with the given SQLSTATE.
func Violation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}

func IsUniqueViolation(err error) bool {
	_, ok := Violation(err, pgerrcode.UniqueViolation)
	return ok
}

func IsExclusionViolation(err error) bool {
	_, ok := Violation(err, pgerrcode.ExclusionViolation)
	return ok
}

func IsForeignKeyViolation(err error) bool {
	_, ok := Violation(err, pgerrcode.ForeignKeyViolation)
	return ok
}

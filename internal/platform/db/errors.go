package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ConstraintViolation reports whether err is a storage constraint violation
// and returns the engine message naming the constraint. Adapters wrap the
// message with their conflict sentinel.
func ConstraintViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503", "23502", "23514":
			if pgErr.ConstraintName != "" {
				return fmt.Sprintf("%s (%s)", pgErr.Message, pgErr.ConstraintName), true
			}
			return pgErr.Message, true
		}
		return "", false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return liteErr.Error(), true
	}
	return "", false
}

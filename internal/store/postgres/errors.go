package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes
const (
	uniqueViolationCode  = "23505"
	checkViolationCode   = "23514"
	notNullViolationCode = "23502"
	undefinedTableCode   = "42P01"
)

// Error classes attached by MapError. The original error stays in the chain.
var (
	ErrConstraint    = errors.New("constraint violation")
	ErrMissingSchema = errors.New("bookmarks table missing")
)

// MapError tags driver errors with a class that callers can match with
// errors.Is. Unknown errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolationCode, checkViolationCode:
		return fmt.Errorf("%w (%s): %w", ErrConstraint, pgErr.ConstraintName, err)
	case notNullViolationCode:
		return fmt.Errorf("%w (column %s): %w", ErrConstraint, pgErr.ColumnName, err)
	case undefinedTableCode:
		return fmt.Errorf("%w: %w", ErrMissingSchema, err)
	}
	return err
}

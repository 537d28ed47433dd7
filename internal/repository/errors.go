package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"

	"blogcaste/internal/storage"
)

const uniqueViolation = "23505"

// wrapErr wraps a store error with the operation name, translating
// execution-timeout conditions into storage.ErrTimeout so the HTTP layer
// can answer 504 instead of a generic 500.
func wrapErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, storage.ErrTimeout)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "57014" { // statement canceled
		return fmt.Errorf("%s: %w", op, storage.ErrTimeout)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation reports whether err is a duplicate-key error, optionally
// narrowed to a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

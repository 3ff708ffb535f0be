package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"docstudio/internal/domain"
)

// IsPgDuplicateError checks if error is a unique constraint violation
func IsPgDuplicateError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505"
	}
	return false
}

// IsPgNoRowsError checks if error is a "no rows" error
func IsPgNoRowsError(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// IsPgForeignKeyError checks if error is a foreign key violation
func IsPgForeignKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23503 = foreign_key_violation
		return pgErr.Code == "23503"
	}
	return false
}

// WrapError maps driver errors onto domain errors
func WrapError(op, resource, id string, err error) error {
	switch {
	case IsPgNoRowsError(err):
		return fmt.Errorf("%s %s: %w", resource, id, domain.ErrNotFound)
	case IsPgForeignKeyError(err):
		return fmt.Errorf("%s: referenced %s missing: %w", op, resource, domain.ErrNotFound)
	case IsPgDuplicateError(err):
		return &domain.ConflictError{
			Message:      fmt.Sprintf("%s %s already exists", resource, id),
			ResourceType: resource,
			ResourceID:   id,
		}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

package common

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Domain error sentinels. Handlers map these to stable error codes; services
// wrap them with context via fmt.Errorf("...: %w", err).
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("conflict")
	ErrNoBOMFound           = errors.New("no bill of materials found for product")
	ErrAlreadyCompleted     = errors.New("work order already completed")
	ErrInsufficientStock    = errors.New("movement would drive stock negative")
	ErrReferentialIntegrity = errors.New("referenced entity does not exist")
	ErrPersistence          = errors.New("persistence failure")
)

// ValidationError wraps ErrValidation with a field-specific message.
func ValidationError(field, message string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, message)
}

// NotFoundError wraps ErrNotFound with the missing resource name.
func NotFoundError(resource string) error {
	return fmt.Errorf("%s: %w", resource, ErrNotFound)
}

// TranslateStoreError normalizes errors surfaced by pgx into the domain
// taxonomy: missing rows become ErrNotFound, foreign-key violations become
// ErrReferentialIntegrity, everything else is a persistence failure.
func TranslateStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503": // foreign_key_violation
			return fmt.Errorf("%w: %s", ErrReferentialIntegrity, pgErr.Detail)
		case "23505": // unique_violation
			return fmt.Errorf("%w: %s", ErrConflict, pgErr.Detail)
		}
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}

package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"textbook-logistics/internal/apperr"
)

// Postgres SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return ""
}

// IsDuplicate reports a unique constraint violation.
func IsDuplicate(err error) bool { return pgCode(err) == codeUniqueViolation }

// IsForeignKey reports a write that referenced a missing row.
func IsForeignKey(err error) bool { return pgCode(err) == codeForeignKeyViolation }

// IsNotFound reports an empty single-row result.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// writeErr maps insert failures onto domain errors: a second delivery for the
// same swap or a reused checkout id is a conflict, a dangling reference is not found.
func writeErr(op string, err error) error {
	switch {
	case IsDuplicate(err):
		return fmt.Errorf("%s: %w", op, apperr.Conflict)
	case IsForeignKey(err):
		return fmt.Errorf("%s: %w", op, apperr.NotFound)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

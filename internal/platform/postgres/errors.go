package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/catalog-api/internal/store"
)

const uniqueViolationCode = "23505"

// integrityViolations names the SQLSTATE codes reported as
// store.ErrInvalidEntity, and which PgError field identifies the offender.
var integrityViolations = map[string]struct {
	kind   string
	detail func(*pgconn.PgError) string
}{
	"23503": {"foreign key violation", func(e *pgconn.PgError) string { return e.ConstraintName }},
	"23514": {"check constraint violation", func(e *pgconn.PgError) string { return e.ConstraintName }},
	"23502": {"not null violation", func(e *pgconn.PgError) string { return e.ColumnName }},
	"22003": {"numeric value out of range", func(e *pgconn.PgError) string { return e.ColumnName }},
	"22001": {"value too long", func(e *pgconn.PgError) string { return e.ColumnName }},
	"22021": {"invalid character", func(e *pgconn.PgError) string { return e.ColumnName }},
}

// MapError translates driver errors into the store error taxonomy. The
// original error stays in the message; unmapped errors pass through.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	}
	if v, ok := integrityViolations[pgErr.Code]; ok {
		return fmt.Errorf("%w: %s (%s): %v", store.ErrInvalidEntity, v.kind, v.detail(pgErr), err)
	}
	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// MapUniqueViolation wraps a unique violation in specific, which should
// itself wrap store.ErrDuplicate. Other errors are returned unchanged.
func MapUniqueViolation(err error, specific error) error {
	if !IsUniqueViolation(err) {
		return err
	}
	if specific == nil {
		specific = store.ErrDuplicate
	}
	return fmt.Errorf("%w: %v", specific, err)
}

// CheckRowsAffected turns an UPDATE or DELETE that touched no rows into
// store.ErrNotFound. Owner-scoped statements rely on this to hide rows
// belonging to other users.
func CheckRowsAffected(result sql.Result, entity string) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n > 0 {
		return nil
	}
	if entity == "" {
		return store.ErrNotFound
	}
	return fmt.Errorf("%w: %s not found", store.ErrNotFound, entity)
}

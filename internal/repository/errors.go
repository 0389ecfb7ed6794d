package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sigac/sigac-core/internal/apperr"
)

// Postgres error codes that map to domain conditions.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapError translates driver errors into the error taxonomy so raw
// pgx errors never cross the repository boundary. notFound is used for
// pgx.ErrNoRows, conflict for unique violations.
func mapError(err error, notFound, conflict apperr.ErrCode) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(notFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperr.Conflict(conflict)
		case pgForeignKeyViolation:
			return apperr.Conflict(apperr.ErrDependencyExists)
		}
	}
	return apperr.Internal(err)
}

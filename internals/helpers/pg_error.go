package helper

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	PGExclusionViolation  = "23P01"
	PGUniqueViolation     = "23505"
	PGForeignKeyViolation = "23503"
	PGCheckViolation      = "23514"
	PGInvalidTextRepr     = "22P02"
)

// SQLState returns the SQLSTATE of a PostgreSQL error from either driver, or "".
func SQLState(err error) string {
	if err == nil {
		return ""
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func IsUniqueViolation(err error) bool    { return SQLState(err) == PGUniqueViolation }
func IsExclusionViolation(err error) bool { return SQLState(err) == PGExclusionViolation }

// MapPGError maps a store error to an HTTP status and a client-safe message.
func MapPGError(err error) (int, string) {
	switch SQLState(err) {
	case PGExclusionViolation:
		return http.StatusConflict, "time range overlaps an existing booking"
	case PGUniqueViolation:
		return http.StatusConflict, "duplicate data"
	case PGForeignKeyViolation:
		return http.StatusBadRequest, "referenced record not found"
	case PGCheckViolation:
		return http.StatusBadRequest, "data violates a constraint"
	case PGInvalidTextRepr:
		return http.StatusBadRequest, "invalid input format"
	}
	return http.StatusInternalServerError, "internal server error"
}

package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isTransient verifica si un error de PostgreSQL es transitorio y la
// transacción puede reintentarse: fallo de serialización (40001), deadlock
// (40P01) o problemas de conexión (clase 08).
func isTransient(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code == "40001" || pgErr.Code == "40P01" {
		return true
	}
	return strings.HasPrefix(pgErr.Code, "08")
}

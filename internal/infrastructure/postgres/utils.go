package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation detecta la violación de restricción UNIQUE de PostgreSQL
// (código 23505) para mapearla a domain.ErrDuplicate en los repositorios.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

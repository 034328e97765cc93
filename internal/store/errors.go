package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUserExists is a sentinel error returned by [UserRepository.CreateUser]
// when the unique constraint on the email column fires. Seeding treats it as
// the idempotent "already exists" outcome, not a failure.
var ErrUserExists = errors.New("user already exists")

// IsUniqueViolation reports whether err unwraps to a PostgreSQL
// unique-constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	return false
}

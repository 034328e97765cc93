package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/internal/logger"
	"github.com/NicolasHurtado/FastApi-React-Celery-Redis/models"
)

// UserRepository persists user accounts. The orchestrator uses it for exactly
// one write: the bootstrap administrative account.
type UserRepository struct {
	db     *DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, log *logger.Logger) *UserRepository {
	return &UserRepository{
		db:     db,
		logger: log,
	}
}

// CreateUser inserts the given user and returns it with the generated id.
// A unique violation on email is mapped to [ErrUserExists] so callers can
// treat re-seeding as a no-op.
func (r *UserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query, args, err := sq.Insert(user.TableName()).
		Columns("email", "password", "full_name", "role", "total_vacation_days", "is_active", "is_superuser").
		Values(user.Email, user.Password, user.FullName, user.Role, user.TotalVacationDays, user.IsActive, user.IsSuperuser).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("error building insert query: %w", err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&user.UserID); err != nil {
		if IsUniqueViolation(err) {
			r.logger.Debug().Str("email", user.Email).Msg("user already exists")
			return models.User{}, ErrUserExists
		}

		r.logger.Err(err).Str("func", "CreateUser").Msg("error inserting user")
		return models.User{}, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

// FindUserByEmail returns the stored user with the given email, or
// sql.ErrNoRows wrapped when none exists.
func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	query, args, err := sq.Select("id", "email", "password", "full_name", "role", "total_vacation_days", "is_active", "is_superuser").
		From(models.User{}.TableName()).
		Where(sq.Eq{"email": email}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("error building select query: %w", err)
	}

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&user.UserID,
		&user.Email,
		&user.Password,
		&user.FullName,
		&user.Role,
		&user.TotalVacationDays,
		&user.IsActive,
		&user.IsSuperuser,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("error finding user by email: %w", err)
	}

	return user, nil
}

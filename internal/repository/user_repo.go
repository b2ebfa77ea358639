package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/workflow-hub-api/internal/database"
	"github.com/workflow-hub-api/internal/models"
)

var userColumns = []string{"id", "email", "password_hash", "username", "created_at", "updated_at"}

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// Create inserts a new user and fills in the generated ID and timestamps.
// A taken email yields ErrDuplicate.
func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	query, args, err := psql.Insert("users").
		Columns("email", "password_hash", "username").
		Values(user.Email, user.PasswordHash, user.Username).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return translateError(err)
}

// Upsert inserts the user unless the email already exists, in which case the
// stored row is left untouched and loaded into user
func (r *userRepo) Upsert(ctx context.Context, user *models.User) error {
	query, args, err := psql.Insert("users").
		Columns("email", "password_hash", "username").
		Values(user.Email, user.PasswordHash, user.Username).
		Suffix("ON CONFLICT (email) DO UPDATE SET email = users.email RETURNING id, email, password_hash, username, created_at, updated_at").
		ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRowxContext(ctx, query, args...).StructScan(user)
}

// GetByEmail retrieves a user by email, returning nil when absent
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *userRepo) getOne(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.db.GetContext(ctx, &user, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Count returns the total number of users
func (r *userRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users")
	return count, err
}

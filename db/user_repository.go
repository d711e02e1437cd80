package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"taskman/models"
)

// defines methods for user db operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and fills in the generated id.
// A username collision is reported as ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (username, password, salt, created_at)
	 VALUES ($1, $2, $3, $4) RETURNING id`

	err := r.db.QueryRowContext(
		ctx, query, user.Username, user.Password, user.Salt, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %q: %w", user.Username, ErrDuplicate)
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT id, username, password, salt, created_at FROM users WHERE username = $1`
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.Password, &user.Salt, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

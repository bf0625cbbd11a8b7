package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"groovy/errs"
	"groovy/models"
)

// UserRepo provides access to the users table.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row. The unique constraint on email is the sole
// arbiter of duplicates; a violation maps to errs.ErrDuplicateIdentity.
func (r *UserRepo) Create(ctx context.Context, u *models.User) error {
	const q = `
INSERT INTO users (id, name, email, password_hash, role)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Name, u.Email, u.PasswordHash, u.Role)
	if isUniqueViolation(err) {
		return errs.ErrDuplicateIdentity
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail selects a user by the login identity.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `
SELECT id, name, email, password_hash, role, created_at
FROM users WHERE email = $1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, email))
}

// GetByID selects a user by ID.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `
SELECT id, name, email, password_hash, role, created_at
FROM users WHERE id = $1`
	return r.scanUser(r.db.Pool.QueryRow(ctx, q, id))
}

// List returns every registered user. Privileged read, used by the admin view.
func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	const q = `
SELECT id, name, email, password_hash, role, created_at
FROM users ORDER BY created_at`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

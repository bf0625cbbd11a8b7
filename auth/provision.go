package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"groovy/errs"
	"groovy/models"
	"groovy/repository"
)

// EnsureAdmin creates the admin account at startup if it does not exist yet.
// The admin logs in through the same hash-verification path as every other
// user; only the role differs. A concurrent boot racing the insert is fine:
// the duplicate maps to the account already existing.
func EnsureAdmin(ctx context.Context, users *repository.UserRepo, name, email, password string) error {
	if password == "" {
		return fmt.Errorf("admin password must be configured")
	}
	if _, err := users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil && !errors.Is(err, errs.ErrDuplicateIdentity) {
		return err
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Roles a user row can carry. Admin accounts are provisioned at startup,
// never created through registration.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a row in the users table. PasswordHash holds the bcrypt
// hash with its embedded salt; the plaintext is never stored.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

package domain

import (
	"strings"
	"time"
)

// User is an account owning entries. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUser creates a user with a normalised email.
func NewUser(email, name, passwordHash string) User {
	return User{
		Email:        NormalizeEmail(email),
		Name:         strings.TrimSpace(name),
		PasswordHash: passwordHash,
	}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterInput is a validated registration payload.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// LoginInput is a validated login payload.
type LoginInput struct {
	Email    string
	Password string
}

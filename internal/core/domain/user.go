package domain

import (
	"errors"
	"time"
)

var (
	// ErrEmailTaken signals a signup against an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password, so a
	// caller can never probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound signals a lookup for an id or email with no record.
	ErrUserNotFound = errors.New("user not found")
)

// Token validation failures. The HTTP layer collapses all three into a single
// unauthorized response; the distinction exists for logging and tests.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
)

// User models a registered account. The password hash never leaves the
// process: it is excluded from JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

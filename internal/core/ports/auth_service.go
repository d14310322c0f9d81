package ports

import (
	"context"

	"github.com/identix/auth-system/internal/core/domain"
)

// AuthService implements registration and credential verification.
type AuthService interface {
	// Signup hashes the password and creates the account. Fails with
	// domain.ErrEmailTaken when the email already has an account.
	Signup(ctx context.Context, email, fullName, password string) (*domain.User, error)

	// Authenticate verifies email + password. Unknown email and wrong
	// password both fail with domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// Login authenticates and issues a session token. expiresIn is the token
	// lifetime in seconds.
	Login(ctx context.Context, email, password string) (token string, expiresIn int64, user *domain.User, err error)
}

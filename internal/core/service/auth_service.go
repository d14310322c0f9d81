package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/ports"
)

// AuthService implements signup and login on top of the user repository,
// the password hasher and the token service.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Signup creates a new account. The email is normalized to lower case so
// uniqueness is case-insensitive. A duplicate email fails the whole call
// with domain.ErrEmailTaken; no partial record is left behind.
func (s *AuthService) Signup(ctx context.Context, email, fullName, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		FullName:     strings.TrimSpace(fullName),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return s.repo.Create(ctx, user)
}

// Authenticate verifies the credentials and returns the account on success.
//
// Unknown email and wrong password are deliberately indistinguishable: both
// return domain.ErrInvalidCredentials so responses cannot be used to
// enumerate registered accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a session token bound to the user id.
// expiresIn is the token lifetime in seconds.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, int64, *domain.User, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", 0, nil, err
	}

	token, expiresIn, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", 0, nil, err
	}
	return token, expiresIn, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

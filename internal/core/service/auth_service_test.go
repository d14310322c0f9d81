package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/identix/auth-system/internal/core/domain"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	stored := cloneUser(user)
	stored.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.users[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), NewJWTService("secret", time.Hour))
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Signup(context.Background(), "alice@example.com", "Alice Doe", "pass1234")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", user.Email)
	}
	if user.PasswordHash == "pass1234" || user.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass1234")) != nil {
		t.Fatalf("stored hash does not match password")
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
}

func TestAuthService_Signup_NormalizesEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Signup(context.Background(), "  Bob@Example.COM ", "Bob", "pass1234")
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}

	// A differently-cased duplicate must still collide.
	if _, err := svc.Signup(context.Background(), "BOB@example.com", "Bob", "other-pass"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Signup_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	first, err := svc.Signup(context.Background(), "carol@example.com", "Carol", "first-pass")
	if err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	if _, err := svc.Signup(context.Background(), "carol@example.com", "Imposter", "second-pass"); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// The stored record remains the first one.
	stored, err := repo.FindByEmail(context.Background(), "carol@example.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.ID != first.ID || stored.FullName != "Carol" {
		t.Fatalf("duplicate signup overwrote the original record: %+v", stored)
	}
}

func TestAuthService_Signup_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Signup(context.Background(), "", "X", "pass1234"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, err := svc.Signup(context.Background(), "x@example.com", "X", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Authenticate_UnifiedError(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	if _, err := svc.Signup(context.Background(), "dave@example.com", "Dave", "goodpass"); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// Unknown email and wrong password must be the exact same error value,
	// so responses cannot be used to enumerate accounts.
	_, unknownErr := svc.Authenticate(context.Background(), "ghost@example.com", "whatever")
	_, wrongPassErr := svc.Authenticate(context.Background(), "dave@example.com", "badpass")

	if unknownErr != domain.ErrInvalidCredentials {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if wrongPassErr != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr != wrongPassErr {
		t.Fatalf("errors differ: %v vs %v", unknownErr, wrongPassErr)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	created, err := svc.Signup(context.Background(), "erin@example.com", "Erin", "s3cret-pw")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	token, expiresIn, user, err := svc.Login(context.Background(), "erin@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if expiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", expiresIn)
	}
	if user.ID != created.ID {
		t.Fatalf("login returned a different user: %s vs %s", user.ID, created.ID)
	}

	// The token is bound to the user id.
	subject, err := NewJWTService("secret", time.Hour).Validate(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if subject != created.ID {
		t.Fatalf("token subject %s, expected %s", subject, created.ID)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, _, _, err := svc.Login(context.Background(), "nobody@example.com", "pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

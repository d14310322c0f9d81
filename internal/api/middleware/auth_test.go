package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	return nil, nil
}

type stubCache struct {
	users map[string]*domain.User
	sets  int
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.User, bool) {
	u, ok := c.users[id]
	return u, ok
}

func (c *stubCache) Set(_ context.Context, user *domain.User) error {
	c.users[user.ID] = user
	c.sets++
	return nil
}

func newGateContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestIdentity_ValidToken(t *testing.T) {
	tokens := service.NewJWTService("secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Email: "alice@example.com"},
	}}

	token, _, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := newGateContext(t, "Bearer "+token)
	called := false
	handler := Identity(tokens, repo, nil)(func(c echo.Context) error {
		called = true
		user, ok := CurrentUser(c)
		if !ok {
			t.Fatalf("expected identity in context")
		}
		if user.ID != "u1" || user.Email != "alice@example.com" {
			t.Fatalf("unexpected user: %+v", user)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestIdentity_AnonymousPassThrough(t *testing.T) {
	tokens := service.NewJWTService("secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}}

	expired := service.NewJWTService("secret", time.Millisecond)
	expiredToken, _, err := expired.Issue("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token abc"},
		{"no token", "Bearer "},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expiredToken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newGateContext(t, tc.header)
			called := false
			handler := Identity(tokens, repo, nil)(func(c echo.Context) error {
				called = true
				if _, ok := CurrentUser(c); ok {
					t.Fatalf("expected anonymous context")
				}
				return c.NoContent(http.StatusOK)
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if !called {
				t.Fatalf("request must proceed as anonymous, not be rejected")
			}
		})
	}
}

func TestIdentity_DeletedAccountIsAnonymous(t *testing.T) {
	tokens := service.NewJWTService("secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{}} // subject gone

	token, _, err := tokens.Issue("ghost")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, _ := newGateContext(t, "Bearer "+token)
	handler := Identity(tokens, repo, nil)(func(c echo.Context) error {
		if _, ok := CurrentUser(c); ok {
			t.Fatalf("token for a deleted account must not authenticate")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestIdentity_CachePopulatedAndUsed(t *testing.T) {
	tokens := service.NewJWTService("secret", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"u1": {ID: "u1", Email: "alice@example.com"},
	}}
	cache := &stubCache{users: make(map[string]*domain.User)}

	token, _, err := tokens.Issue("u1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	mw := Identity(tokens, repo, cache)
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	// First request misses the cache and populates it.
	c, _ := newGateContext(t, "Bearer "+token)
	if err := mw(next)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache set, got %d", cache.sets)
	}

	// Second request is served from the cache even if the store record is gone.
	delete(repo.users, "u1")
	c, _ = newGateContext(t, "Bearer "+token)
	if err := mw(func(c echo.Context) error {
		if _, ok := CurrentUser(c); !ok {
			t.Fatalf("expected cached identity")
		}
		return c.NoContent(http.StatusOK)
	})(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()

	// Anonymous request → 401.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAuth()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}

	// Authenticated request → next runs.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set(identityKey, &domain.User{ID: "u1"})

	called := false
	handler = RequireAuth()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called for authenticated request")
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/identix/auth-system/internal/api/metrics"
	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/ports"
)

// identityKey is the echo context key the resolved user is stored under.
// Request-scoped only: echo contexts are never shared across requests.
const identityKey = "auth.identity"

// IdentityCache abstracts the short-TTL identity cache (Redis). A nil cache
// is allowed; every request then resolves against the user store.
type IdentityCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool)
	Set(ctx context.Context, user *domain.User) error
}

// Identity extracts and validates a bearer token, resolves the subject to a
// current user record, and attaches it to the request context.
//
// The middleware never rejects: a missing, malformed, expired or otherwise
// invalid token leaves the request anonymous (and equally so — token errors
// are deliberately not distinguishable from the outside). Protected routes
// add RequireAuth after this middleware.
func Identity(tokens ports.TokenService, users ports.UserRepository, cache IdentityCache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				return next(c)
			}

			subject, err := tokens.Validate(token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues(tokenErrorLabel(err)).Inc()
				return next(c)
			}

			// Re-resolve the subject: a token must not outlive its account.
			user, err := resolveUser(c.Request().Context(), subject, users, cache)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("unknown_subject").Inc()
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("ok").Inc()
			c.Set(identityKey, user)
			return next(c)
		}
	}
}

// RequireAuth rejects requests that carry no authenticated identity. Mount
// after Identity on protected routes.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CurrentUser(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user attached by Identity, if any.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(identityKey).(*domain.User)
	return user, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 7235.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func resolveUser(ctx context.Context, id string, users ports.UserRepository, cache IdentityCache) (*domain.User, error) {
	if cache != nil {
		if user, ok := cache.Get(ctx, id); ok {
			metrics.IdentityCacheTotal.WithLabelValues("hit").Inc()
			return user, nil
		}
		metrics.IdentityCacheTotal.WithLabelValues("miss").Inc()
	}

	user, err := users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		// Cache failures are invisible to the request; the next one just
		// misses again.
		_ = cache.Set(ctx, user)
	}
	return user, nil
}

func tokenErrorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "invalid_signature"
	default:
		return "malformed"
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/identix/auth-system/internal/api/middleware"
	"github.com/identix/auth-system/internal/core/domain"
)

// currentUser extracts the identity attached by the auth middleware. Routes
// behind RequireAuth always have one; the check here guards against a
// handler being mounted without the middleware chain.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return user, nil
}

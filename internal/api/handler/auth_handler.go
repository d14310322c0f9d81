package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/identix/auth-system/internal/api/metrics"
	"github.com/identix/auth-system/internal/core/domain"
	"github.com/identix/auth-system/internal/core/ports"
)

// AuditSink receives authentication events for asynchronous recording. The
// queue dispatcher satisfies it; a nil sink disables auditing.
type AuditSink interface {
	Enqueue(event ports.AuthEventInput)
}

// AuthHandler handles signup and login.
type AuthHandler struct {
	authService ports.AuthService
	audit       AuditSink
}

func NewAuthHandler(authService ports.AuthService, audit AuditSink) *AuthHandler {
	return &AuthHandler{authService: authService, audit: audit}
}

type signupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginResponse is constructed once with both fields set; nothing mutates it
// after creation.
type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		if err == domain.ErrEmailTaken {
			metrics.SignupsTotal.WithLabelValues("duplicate_email").Inc()
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	h.recordEvent(c, user.Email, domain.AuthEventSignup)

	return c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, expiresIn, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == domain.ErrInvalidCredentials {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			h.recordEvent(c, req.Email, domain.AuthEventLoginFailed)
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	h.recordEvent(c, user.Email, domain.AuthEventLoginOK)

	return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresIn: expiresIn})
}

func (h *AuthHandler) recordEvent(c echo.Context, email string, kind domain.AuthEventKind) {
	if h.audit == nil {
		return
	}
	h.audit.Enqueue(ports.AuthEventInput{
		Email:     email,
		Kind:      kind,
		Timestamp: time.Now().UTC(),
		RemoteIP:  c.RealIP(),
	})
}

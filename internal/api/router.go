package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/identix/auth-system/internal/api/handler"
	"github.com/identix/auth-system/internal/api/middleware"
	"github.com/identix/auth-system/internal/core/ports"
	"github.com/identix/auth-system/internal/infrastructure/http/handlers"
)

// Deps carries the constructed services and infrastructure handles the
// router wires together. Mongo and Redis may be nil when the memory storage
// driver is active; the readiness probe then skips them.
type Deps struct {
	Log         zerolog.Logger
	AuthService ports.AuthService
	UserService ports.UserService
	Tokens      ports.TokenService
	Users       ports.UserRepository
	Cache       middleware.IdentityCache
	Audit       handler.AuditSink
	Mongo       *mongo.Database
	Redis       *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService, deps.Audit)
	userHandler := handler.NewUserHandler(deps.UserService)
	identity := middleware.Identity(deps.Tokens, deps.Users, deps.Cache)

	// --- Auth routes (anonymous) ---
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	users := e.Group("/users", identity, middleware.RequireAuth())
	users.GET("/me", userHandler.Me)
	users.GET("", userHandler.List)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

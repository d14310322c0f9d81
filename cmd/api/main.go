// Command api runs the authentication HTTP server.
//
// @title        Auth System API
// @version      1.0
// @description  User registration, login and session-token based identity.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/identix/auth-system/docs"
	"github.com/identix/auth-system/internal/api"
	"github.com/identix/auth-system/internal/api/middleware"
	"github.com/identix/auth-system/internal/core/ports"
	"github.com/identix/auth-system/internal/core/service"
	"github.com/identix/auth-system/internal/infrastructure/config"
	"github.com/identix/auth-system/internal/infrastructure/db/memory"
	mongodb "github.com/identix/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/identix/auth-system/internal/infrastructure/db/redis"
	"github.com/identix/auth-system/internal/infrastructure/queue"
	"github.com/identix/auth-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWT.Secret == "" {
		if cfg.Env != "development" {
			log.Fatal().Msg("JWT_SECRET is required outside development")
		}
		log.Warn().Msg("JWT_SECRET not set, using insecure development secret")
		cfg.JWT.Secret = "dev-secret-do-not-use"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	var (
		users     ports.UserRepository
		auditRepo ports.AuditRepository
		cache     middleware.IdentityCache
		db        *gomongo.Database
		rdb       *goredis.Client
	)

	switch cfg.Storage {
	case config.StorageMongo:
		client, database, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()

		userRepo := mongodb.NewUserRepository(database)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create user indexes")
		}

		redisClient, err := redisdb.Connect(ctx, redisdb.Config{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer redisClient.Close()

		users = userRepo
		auditRepo = mongodb.NewAuditRepository(database)
		cache = redisdb.NewUserCache(redisClient, cfg.Auth.IdentityCacheTTL)
		db = database
		rdb = redisClient

	case config.StorageMemory:
		log.Warn().Msg("memory storage driver active, data will not survive a restart")
		users = memory.NewUserRepository()
		auditRepo = memory.NewAuditRepository(log)

	default:
		log.Fatal().Str("driver", cfg.Storage).Msg("unknown storage driver")
	}

	// --- Services ---
	hasher := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := service.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(users, hasher, tokens)
	userService := service.NewUserService(users)
	auditService := service.NewAuditService(auditRepo, log)

	dispatcher := queue.NewDispatcher(cfg.Auth.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Log:         log,
		AuthService: authService,
		UserService: userService,
		Tokens:      tokens,
		Users:       users,
		Cache:       cache,
		Audit:       dispatcher,
		Mongo:       db,
		Redis:       rdb,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("storage", cfg.Storage).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

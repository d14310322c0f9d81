package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMongo  = "mongo"
	StorageMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// Storage selects the user store backend: mongo or memory.
	Storage string `env:"STORAGE_DRIVER, default=mongo"`

	JWT   JWTConfig
	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	// Secret signs session tokens. Required outside local development.
	Secret string `env:"JWT_SECRET"`
	// TTL is the session token lifetime.
	TTL time.Duration `env:"JWT_TTL, default=24h"`
}

type AuthConfig struct {
	// BcryptCost tunes password hashing. 0 means the library default.
	BcryptCost int `env:"BCRYPT_COST, default=0"`
	// AuditWorkers sizes the audit dispatcher worker pool.
	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`
	// IdentityCacheTTL bounds how long the gate serves a cached identity.
	IdentityCacheTTL time.Duration `env:"IDENTITY_CACHE_TTL, default=1m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

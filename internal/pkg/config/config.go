package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"        validate:"required"`
	Env      string `env:"ENV,       default=development" validate:"oneof=development staging production"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// DirectoryBackend selects the user store: "mongo" or "memory".
	DirectoryBackend string `env:"DIRECTORY_BACKEND, default=mongo" validate:"oneof=mongo memory"`

	Session SessionConfig
	Audit   AuditConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	// Backend selects the session registry: "memory" or "redis".
	Backend      string        `env:"SESSION_BACKEND, default=memory"  validate:"oneof=memory redis"`
	TTL          time.Duration `env:"SESSION_TTL,     default=30m"     validate:"gte=0"`
	CookieName   string        `env:"COOKIE_NAME,     default=SESSION" validate:"required"`
	CookieSecure bool          `env:"COOKIE_SECURE,   default=false"`
	BcryptCost   int           `env:"BCRYPT_COST,     default=10"      validate:"min=4,max=31"`
}

type AuditConfig struct {
	Enabled bool `env:"AUDIT_ENABLED, default=true"`
	Workers int  `env:"AUDIT_WORKERS, default=4" validate:"min=1,max=64"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=session_auth"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// NeedsMongo reports whether the user directory, and with it the audit
// trail, is stored in MongoDB.
func (c *Config) NeedsMongo() bool {
	return c.DirectoryBackend == BackendMongo
}

// NeedsRedis reports whether any enabled component talks to Redis.
func (c *Config) NeedsRedis() bool {
	return c.Session.Backend == BackendRedis
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

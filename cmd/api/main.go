// @title        Session Auth API
// @version      1.0
// @description  Username/password signup and login with one active session per user.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/hokkom/session-auth/internal/api"
	"github.com/hokkom/session-auth/internal/api/handler"
	"github.com/hokkom/session-auth/internal/core/ports"
	"github.com/hokkom/session-auth/internal/core/service"
	"github.com/hokkom/session-auth/internal/infrastructure/db/memory"
	"github.com/hokkom/session-auth/internal/infrastructure/db/mongo"
	"github.com/hokkom/session-auth/internal/infrastructure/db/redis"
	"github.com/hokkom/session-auth/internal/infrastructure/queue"
	"github.com/hokkom/session-auth/internal/pkg/config"
	"github.com/hokkom/session-auth/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{Level: "error"})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	checks := map[string]handler.Checker{}

	// --- User directory and audit store ---
	var (
		directory ports.UserDirectory
		eventRepo ports.AuthEventRepository
	)
	if cfg.NeedsMongo() {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: logger.DefaultService})
		if err != nil {
			return err
		}
		defer disconnectMongo(client, log)

		users := mongo.NewUserDirectory(db)
		if err := users.EnsureIndexes(ctx); err != nil {
			return err
		}
		directory = users
		eventRepo = mongo.NewAuthEventRepository(db)
		checks["mongodb"] = func(ctx context.Context) error { return mongo.Ping(ctx, db) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
	} else {
		directory = memory.NewUserDirectory()
		eventRepo = queue.NewLogRepository(log)
		log.Warn().Msg("using in-memory user directory, identities are lost on restart")
	}

	// --- Session registry ---
	var registry ports.SessionRegistry
	if cfg.NeedsRedis() {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer closeRedis(client, log)

		registry = redis.NewSessionRegistry(client, cfg.Session.TTL)
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		registry = service.NewMemorySessionRegistry(cfg.Session.TTL)
	}

	// --- Audit trail ---
	var audit ports.AuditRecorder
	if cfg.Audit.Enabled {
		dispatcher := queue.NewDispatcher(cfg.Audit.Workers, eventRepo, log)
		dispatcher.Start(context.WithoutCancel(ctx))
		defer dispatcher.Close()
		audit = dispatcher
	}

	// --- Services ---
	hasher := service.NewBcryptHasher(cfg.Session.BcryptCost)
	auth := service.NewAuthService(directory, hasher, audit, log)
	sessions := service.NewSessionCoordinator(auth, registry, audit, log)

	e := api.NewRouter(api.Dependencies{
		Auth:     auth,
		Sessions: sessions,
		Cookie: handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
		Checks: checks,
		Logger: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("directory", cfg.DirectoryBackend).
			Str("sessions", cfg.Session.Backend).
			Dur("session_ttl", cfg.Session.TTL).
			Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func disconnectMongo(client *mongodrv.Client, log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		log.Error().Err(err).Msg("mongodb disconnect failed")
	}
}

func closeRedis(client *goredis.Client, log zerolog.Logger) {
	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
}

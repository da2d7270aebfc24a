package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authorization "scribe/contexts/identity-access/authorization-service"
	identity "scribe/contexts/identity-access/identity-service"
	identityrelational "scribe/contexts/identity-access/identity-service/adapters/relational"
	"scribe/contexts/identity-access/identity-service/adapters/security"
	postservice "scribe/contexts/publishing/post-service"
	postrelational "scribe/contexts/publishing/post-service/adapters/relational"
	postports "scribe/contexts/publishing/post-service/ports"
	"scribe/internal/platform/config"
	"scribe/internal/platform/db"
	"scribe/internal/platform/httpserver"
	"scribe/internal/platform/messaging"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server       *httpserver.Server
	database     *db.Database
	broker       messaging.Broker
	workers      *postservice.Workers
	pollInterval time.Duration
	logger       *slog.Logger
}

type WorkerApp struct {
	database     *db.Database
	broker       messaging.Broker
	workers      postservice.Workers
	pollInterval time.Duration
	logger       *slog.Logger
}

// runtime holds the modules shared by the api and worker processes.
type runtime struct {
	database *db.Database
	identity identity.Module
	posts    postservice.Module
	outbox   postports.OutboxRepository
	clock    postports.Clock
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, "api")

	rt, err := buildRuntime(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := provisionAdmin(ctx, cfg, rt.identity, logger); err != nil {
		_ = rt.close()
		return nil, err
	}

	broker, err := messaging.NewBroker(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = rt.close()
		return nil, err
	}

	app := &APIApp{
		server: httpserver.New(rt.identity, rt.posts, logger, httpserver.Options{
			Addr:               normalizeAddr(cfg.HTTPPort),
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			EnableSwagger:      cfg.EnableSwagger,
		}),
		database:     rt.database,
		broker:       broker,
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}

	// The memory outbox lives in this process, so the api relays it too.
	if rt.database == nil {
		workers := newPostWorkers(cfg, rt, broker, logger)
		app.workers = &workers
	}
	return app, nil
}

func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, "worker")

	if cfg.DBDriver == config.DriverMemory {
		return nil, errors.New("worker needs DB_DRIVER postgres or sqlite; the memory driver relays events inside the api process")
	}

	rt, err := buildRuntime(cfg, logger)
	if err != nil {
		return nil, err
	}
	broker, err := messaging.NewBroker(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = rt.close()
		return nil, err
	}

	return &WorkerApp{
		database:     rt.database,
		broker:       broker,
		workers:      newPostWorkers(cfg, rt, broker, logger),
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

func buildRuntime(cfg config.Config, logger *slog.Logger) (*runtime, error) {
	authz := authorization.NewModule(authorization.Dependencies{
		AdminUsernames: cfg.AdminUsernames,
		Logger:         logger,
	})

	if cfg.DBDriver == config.DriverMemory {
		secret, err := resolveJWTSecret(cfg, logger)
		if err != nil {
			return nil, err
		}
		identityModule, err := identity.NewInMemoryModule(authz.Authorizer, secret, logger)
		if err != nil {
			return nil, err
		}
		postsModule := postservice.NewInMemoryModule(authz.Authorizer, logger)
		return &runtime{
			identity: identityModule,
			posts:    postsModule,
			outbox:   postsModule.Store,
			clock:    postsModule.Store,
		}, nil
	}

	database, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(identityrelational.Migrate, postrelational.Migrate); err != nil {
		_ = database.Close()
		return nil, err
	}

	tokens, err := security.NewJWTService(cfg.JWTSecret)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	users := identityrelational.NewRepository(database.DB, logger)
	posts := postrelational.NewRepository(database.DB, logger)

	logger.Info("database ready",
		"event", "bootstrap_database_ready",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"driver", database.Driver,
	)

	return &runtime{
		database: database,
		identity: identity.NewModule(identity.Dependencies{
			Users:       users,
			Hasher:      security.BcryptHasher{Cost: security.DefaultBcryptCost},
			Tokens:      tokens,
			Policy:      authz.Authorizer,
			Clock:       identityrelational.SystemClock{},
			IDGenerator: identityrelational.UUIDGenerator{},
			TokenTTL:    cfg.JWTExpiresIn,
			Logger:      logger,
		}),
		posts: postservice.NewModule(postservice.Dependencies{
			Posts:       posts,
			Policy:      authz.Authorizer,
			Clock:       postrelational.SystemClock{},
			IDGenerator: postrelational.UUIDGenerator{},
			Logger:      logger,
		}),
		outbox: posts,
		clock:  postrelational.SystemClock{},
	}, nil
}

func openDatabase(cfg config.Config) (*db.Database, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return db.Connect(cfg.PostgresDSN)
	case config.DriverSQLite:
		return db.OpenSQLite(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func newPostWorkers(cfg config.Config, rt *runtime, broker messaging.Broker, logger *slog.Logger) postservice.Workers {
	return postservice.NewWorkers(postservice.WorkerDependencies{
		Outbox:     rt.outbox,
		Publisher:  broker,
		Subscriber: broker,
		Clock:      rt.clock,
		Topic:      cfg.PostEventsTopic,
		Logger:     logger,
	})
}

// resolveJWTSecret returns the configured secret, or a random one for the
// memory driver. Tokens signed with a random secret die with the process.
func resolveJWTSecret(cfg config.Config, logger *slog.Logger) (string, error) {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret, nil
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate jwt secret: %w", err)
	}
	logger.Warn("JWT_SECRET not set; using an ephemeral secret",
		"event", "bootstrap_ephemeral_jwt_secret",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return hex.EncodeToString(buf), nil
}

// provisionAdmin creates the configured admin account when it is missing.
func provisionAdmin(ctx context.Context, cfg config.Config, module identity.Module, logger *slog.Logger) error {
	if cfg.BootstrapAdmin == "" {
		return nil
	}
	user, created, err := module.Handler.Register.Provision(ctx, cfg.BootstrapAdmin, cfg.BootstrapPassword)
	if err != nil {
		return fmt.Errorf("provision admin %s: %w", cfg.BootstrapAdmin, err)
	}
	logger.Info("admin account ready",
		"event", "bootstrap_admin_ready",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"user_id", user.UserID,
		"username", user.Username,
		"created", created,
	)
	return nil
}

func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	if a.workers != nil {
		if err := a.workers.Auditor.Start(ctx); err != nil {
			return err
		}
		go func() {
			_ = a.workers.Relay.Run(ctx, a.pollInterval)
		}()
	}
	return a.server.Start(ctx)
}

func (a *APIApp) Close() error {
	return closeAll(a.broker, a.database)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.workers.Auditor.Start(ctx); err != nil {
		return err
	}
	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)
	return w.workers.Relay.Run(ctx, w.pollInterval)
}

func (w *WorkerApp) Close() error {
	return closeAll(w.broker, w.database)
}

func (r *runtime) close() error {
	if r.database == nil {
		return nil
	}
	return r.database.Close()
}

func closeAll(broker messaging.Broker, database *db.Database) error {
	var errs []error
	if broker != nil {
		errs = append(errs, broker.Close())
	}
	if database != nil {
		errs = append(errs, database.Close())
	}
	return errors.Join(errs...)
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":3000"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}

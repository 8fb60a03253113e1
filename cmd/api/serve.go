package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"golang.org/x/sync/errgroup"

	_ "github.com/redmonkez12/fintrack-api/docs" // Swagger docs (generated)
	"github.com/redmonkez12/fintrack-api/internal/auth"
	"github.com/redmonkez12/fintrack-api/internal/config"
	"github.com/redmonkez12/fintrack-api/internal/database"
	httpServer "github.com/redmonkez12/fintrack-api/internal/http"
	"github.com/redmonkez12/fintrack-api/internal/logging"
	"github.com/redmonkez12/fintrack-api/internal/metrics"
	"github.com/redmonkez12/fintrack-api/internal/ratelimit"
	"github.com/redmonkez12/fintrack-api/internal/record"
	"github.com/redmonkez12/fintrack-api/internal/user"
)

// stores bundles the repositories for the configured storage driver
type stores struct {
	users   auth.UserStore
	records record.Store
	checks  map[string]httpServer.HealthCheck
	close   func() error
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.New(cfg.Server.IsDevelopment(), cfg.Server.LogLevel)
	logging.SetDefault(logger)
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"storage", cfg.Storage.Driver,
		"token_format", cfg.Auth.TokenFormat,
	)

	m := metrics.New()

	// Initialize repositories
	st, err := initStores(ctx, cfg, m, logger)
	if err != nil {
		return err
	}
	defer st.close()

	// Initialize Redis connection and rate limiter
	var limiter httpServer.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := initRedis(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis: %w", err)
		}
		defer redisClient.Close()

		limiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit.Max, cfg.RateLimit.Window)
		st.checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	// Initialize auth services
	tokenService, err := auth.NewTokenService(cfg.Auth.TokenFormat, []byte(cfg.Auth.TokenSecret), cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	hasher, err := auth.NewHasher(cfg.Auth.HashAlgorithm, cfg.Auth.BcryptCost, cfg.Auth.HashWorkers())
	if err != nil {
		return fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	authService := auth.NewService(st.users, hasher, tokenService, m, logger)
	recordService := record.NewService(st.records, logger)

	// Initialize router
	router := httpServer.NewRouter(cfg, httpServer.Dependencies{
		AuthHandler:    auth.NewHandler(authService),
		AuthMiddleware: auth.NewMiddleware(tokenService),
		RecordHandler:  record.NewHandler(recordService),
		RateLimiter:    limiter,
		Metrics:        m,
		HealthChecks:   st.checks,
		Logger:         logger,
	})

	// Initialize HTTP server
	server := httpServer.NewServer(
		":"+cfg.Server.Port,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
		logger,
	)

	// Wait for interrupt signal or server error
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.Start)
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown requested")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// initStores opens the configured storage backend
func initStores(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *logging.Logger) (*stores, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")

		users := user.NewMemoryRepository()
		records := record.NewMemoryRepository()
		users.OnDelete(records.DeleteByUser)

		return &stores{
			users:   users,
			records: records,
			checks:  map[string]httpServer.HealthCheck{},
			close:   func() error { return nil },
		}, nil
	}

	// Initialize database connection
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.Storage.AutoMigrate {
		if err := database.Migrate(ctx, db.DB, database.MigrateUp); err != nil {
			db.Close()
			return nil, err
		}
		logger.Info("database migrations applied")
	}

	if err := m.RegisterDB(db.DB, cfg.Database.DBName); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register database metrics: %w", err)
	}

	return &stores{
		users:   user.NewRepository(db),
		records: record.NewRepository(db),
		checks: map[string]httpServer.HealthCheck{
			"database": pingDB(db),
		},
		close: db.Close,
	}, nil
}

func pingDB(db *bun.DB) httpServer.HealthCheck {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

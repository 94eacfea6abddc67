package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/target/invoice-dashboard/config"
	"github.com/target/invoice-dashboard/internal/bootstrap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := bootstrap.LoadConfig()
	logger := bootstrap.InitLogger(cfg.IsDev)
	if err == nil {
		err = run(ctx, &cfg, logger)
	}
	if err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		stop()
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	logStartupInfo(ctx, logger, cfg)

	db, redisClient, err := initInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeInfrastructure(ctx, logger, db, redisClient)

	if db != nil {
		if cfg.Postgres.RunMigrationsOnStart {
			if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
				return err
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
	}

	authSvc, err := bootstrap.BuildAuthService(ctx, bootstrap.AuthConfig{
		Auth:          cfg.Auth,
		RedisClient:   redisClient,
		SessionPrefix: cfg.Redis.SessionPrefix,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("build auth service: %w", err)
	}

	invoiceSvc, err := bootstrap.BuildInvoiceService(ctx, bootstrap.InvoiceConfig{
		DB:     db,
		Seed:   cfg.SeedCustomers,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("build invoice service: %w", err)
	}

	server, err := bootstrap.StartHTTPServer(&bootstrap.HTTPServerConfig{
		Config:       cfg,
		Auth:         authSvc,
		Invoices:     invoiceSvc,
		HealthChecks: bootstrap.HealthChecks(db, redisClient),
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("shutdown signal received")

	return bootstrap.ShutdownHTTPServer(bootstrap.ShutdownConfig{
		Context: context.WithoutCancel(ctx),
		Server:  server,
		Timeout: cfg.HTTP.ShutdownTimeout,
		Logger:  logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting invoice dashboard",
		"addr", cfg.HTTP.Addr,
		"auth_mode", cfg.Auth.Mode,
		"postgres", cfg.Postgres.Enabled(),
		"redis", cfg.Redis.Enabled(),
		"protected_prefix", cfg.Guard.ProtectedPrefix,
		"dev", cfg.IsDev,
	)
}

// initInfrastructure connects the optional backing stores. Either return
// value is nil when its store is not configured.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	dbCfg := bootstrap.DatabaseConfig{
		DBConfig:    cfg.Postgres,
		RedisConfig: cfg.Redis,
		Logger:      logger,
	}

	var db *sql.DB
	if cfg.Postgres.Enabled() {
		var err error
		db, err = bootstrap.ConnectDB(ctx, dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
	}

	if !cfg.Redis.Enabled() {
		return db, nil, nil
	}
	redisClient, err := bootstrap.ConnectRedis(ctx, dbCfg)
	if err != nil {
		err = fmt.Errorf("connect redis: %w", err)
		if db != nil {
			if cerr := db.Close(); cerr != nil {
				err = errors.Join(err, fmt.Errorf("close database: %w", cerr))
			}
		}
		return nil, nil, err
	}

	return db, redisClient, nil
}

func closeInfrastructure(ctx context.Context, logger *slog.Logger, db *sql.DB, redisClient redis.UniversalClient) {
	if db != nil {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}
	if redisClient != nil {
		if cerr := redisClient.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close redis failed", "error", cerr)
		}
	}
}

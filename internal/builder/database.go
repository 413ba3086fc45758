package builder

import (
	"context"
	"fmt"

	"github.com/futig/realtor-bot/internal/config"
	"github.com/futig/realtor-bot/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// setupDatabase creates a new database connection pool
func setupDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DBMaxConns)
	poolConfig.MinConns = int32(cfg.DBMinConns)
	poolConfig.MaxConnLifetime = cfg.DBMaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.DBMaxConnIdleTime
	poolConfig.HealthCheckPeriod = cfg.DBHealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
		zap.Int32("min_conns", poolConfig.MinConns),
		zap.Duration("max_conn_lifetime", poolConfig.MaxConnLifetime),
		zap.Duration("max_conn_idle_time", poolConfig.MaxConnIdleTime),
		zap.Duration("health_check_period", poolConfig.HealthCheckPeriod),
	)

	return pool, nil
}

// storage bundles the repositories selected by STORAGE
type storage struct {
	sessions repository.SessionRepository
	bookings repository.BookingRepository
	db       *pgxpool.Pool
}

func (s *storage) close() {
	if s.db != nil {
		s.db.Close()
	}
}

// setupStorage picks postgres or in-memory repositories. Postgres runs the
// embedded migrations before returning.
func setupStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	if cfg.Storage != config.StoragePostgres {
		logger.Info("Using in-memory storage",
			zap.Duration("session_ttl", cfg.TextsTTL()),
		)
		return &storage{
			sessions: repository.NewSessionMemory(cfg.TextsTTL()),
			bookings: repository.NewBookingMemory(),
		}, nil
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	return &storage{
		sessions: repository.NewSessionPostgres(db),
		bookings: repository.NewBookingPostgres(db),
		db:       db,
	}, nil
}

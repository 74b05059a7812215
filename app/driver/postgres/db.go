package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"provisioning-service/app/config"
	"provisioning-service/app/domain"
)

// healthCheckTimeout caps the readiness ping so a wedged pool cannot stall
// the readiness endpoint.
const healthCheckTimeout = 5 * time.Second

// DB owns the pgx connection pool the tenant and user repositories run on.
// Pool sizing and connection lifetimes come from configuration so the same
// binary can run with a handful of connections in test environments and a
// full pool in production.
type DB struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewConnection builds the pool from the provisioning configuration and
// verifies the store is reachable before handing it out. An unreachable
// store is a *domain.StoreUnavailableError; every saga and repair operation
// depends on this pool, so failing here stops startup.
func NewConnection(cfg *config.Config, logger *slog.Logger) (*DB, error) {
	poolConfig, err := pgxpool.ParseConfig(buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DatabaseMaxConns)
	poolConfig.MinConns = int32(cfg.DatabaseMinConns)
	poolConfig.MaxConnLifetime = cfg.DatabaseConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.DatabaseConnMaxIdleTime

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DatabaseConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &domain.StoreUnavailableError{Cause: err}
	}

	logger.Info("database connection established",
		"host", cfg.DatabaseHost,
		"database", cfg.DatabaseName,
		"max_conns", poolConfig.MaxConns,
		"min_conns", poolConfig.MinConns)

	return &DB{
		pool:   pool,
		logger: logger,
	}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
		db.logger.Info("database connection closed")
	}
}

// Pool returns the underlying pool for the repositories.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// HealthCheck pings the store. Failures surface as
// *domain.StoreUnavailableError so the readiness handler and any caller
// inspecting the error see the same type the rest of the taxonomy uses.
func (db *DB) HealthCheck(ctx context.Context) error {
	if db.pool == nil {
		return &domain.StoreUnavailableError{Cause: fmt.Errorf("connection pool not initialized")}
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := db.pool.Ping(ctx); err != nil {
		return &domain.StoreUnavailableError{Cause: err}
	}
	return nil
}

func buildDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DatabaseUser,
		cfg.DatabasePassword,
		cfg.DatabaseHost,
		cfg.DatabasePort,
		cfg.DatabaseName,
		cfg.DatabaseSSLMode,
	)
}

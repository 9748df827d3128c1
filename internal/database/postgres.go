package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HammerMeetNail/tripboard/internal/config"
)

const applicationName = "tripboard"

// PostgresDB owns the member store connection pool.
type PostgresDB struct {
	Pool *pgxpool.Pool
}

var (
	parsePGConfig = pgxpool.ParseConfig
	newPGPool     = pgxpool.NewWithConfig
	pingPGPool    = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}
	closePGPool = func(pool *pgxpool.Pool) {
		pool.Close()
	}
)

func NewPostgresDB(ctx context.Context, cfg config.DatabaseConfig) (*PostgresDB, error) {
	poolCfg, err := parsePGConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	// Members are read once per request; a small pool is plenty.
	poolCfg.MaxConns = 8
	poolCfg.MinConns = 1
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = time.Minute
	if poolCfg.ConnConfig.RuntimeParams == nil {
		poolCfg.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = applicationName

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := newPGPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pingPGPool(ctx, pool); err != nil {
		closePGPool(pool)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresDB{Pool: pool}, nil
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		closePGPool(db.Pool)
	}
}

func (db *PostgresDB) Health(ctx context.Context) error {
	return pingPGPool(ctx, db.Pool)
}

package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HammerMeetNail/tripboard/internal/config"
)

var testDBConfig = config.DatabaseConfig{
	Host: "db", Port: 5432, User: "trip", Password: "trip", DBName: "tripboard", SSLMode: "disable",
}

func stubPostgres(t *testing.T) {
	t.Helper()
	origParse, origNew, origPing, origClose := parsePGConfig, newPGPool, pingPGPool, closePGPool
	t.Cleanup(func() {
		parsePGConfig = origParse
		newPGPool = origNew
		pingPGPool = origPing
		closePGPool = origClose
	})
}

func TestNewPostgresDB_ParseError(t *testing.T) {
	stubPostgres(t)
	parseErr := errors.New("bad dsn")
	parsePGConfig = func(dsn string) (*pgxpool.Config, error) {
		return nil, parseErr
	}

	_, err := NewPostgresDB(context.Background(), testDBConfig)
	if !errors.Is(err, parseErr) {
		t.Fatalf("expected parse error to wrap %v, got %v", parseErr, err)
	}
	if !strings.Contains(err.Error(), "parsing database config") {
		t.Fatalf("expected parse error message context, got %q", err.Error())
	}
}

func TestNewPostgresDB_PingErrorClosesPool(t *testing.T) {
	stubPostgres(t)
	parsePGConfig = func(dsn string) (*pgxpool.Config, error) {
		return &pgxpool.Config{ConnConfig: &pgx.ConnConfig{}}, nil
	}
	newPGPool = func(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
		return &pgxpool.Pool{}, nil
	}
	pingErr := errors.New("ping failed")
	pingPGPool = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pingErr
	}
	closed := false
	closePGPool = func(pool *pgxpool.Pool) { closed = true }

	_, err := NewPostgresDB(context.Background(), testDBConfig)
	if !errors.Is(err, pingErr) {
		t.Fatalf("expected ping error to wrap %v, got %v", pingErr, err)
	}
	if !closed {
		t.Fatal("expected pool to be closed after failed ping")
	}
}

func TestNewPostgresDB_NewPoolError(t *testing.T) {
	stubPostgres(t)
	parsePGConfig = func(dsn string) (*pgxpool.Config, error) {
		return &pgxpool.Config{ConnConfig: &pgx.ConnConfig{}}, nil
	}
	newErr := errors.New("new pool error")
	newPGPool = func(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, newErr
	}

	_, err := NewPostgresDB(context.Background(), testDBConfig)
	if !errors.Is(err, newErr) || !strings.Contains(err.Error(), "creating connection pool") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestNewPostgresDB_ConfiguresPool(t *testing.T) {
	stubPostgres(t)
	var gotDSN string
	cfg := &pgxpool.Config{ConnConfig: &pgx.ConnConfig{}}
	parsePGConfig = func(dsn string) (*pgxpool.Config, error) {
		gotDSN = dsn
		return cfg, nil
	}
	pool := &pgxpool.Pool{}
	newPGPool = func(ctx context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		return pool, nil
	}
	pingPGPool = func(ctx context.Context, pool *pgxpool.Pool) error { return nil }
	closePGPool = func(pool *pgxpool.Pool) {}

	db, err := NewPostgresDB(context.Background(), testDBConfig)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.Pool != pool {
		t.Fatal("expected returned pool to match stubbed pool")
	}
	if gotDSN != testDBConfig.DSN() {
		t.Fatalf("unexpected dsn %q", gotDSN)
	}
	if cfg.MaxConns != 8 || cfg.MinConns != 1 {
		t.Fatalf("unexpected pool bounds %d/%d", cfg.MinConns, cfg.MaxConns)
	}
	if cfg.MaxConnIdleTime != 5*time.Minute || cfg.MaxConnLifetime != 30*time.Minute || cfg.HealthCheckPeriod != time.Minute {
		t.Fatalf("unexpected pool timings %v %v", cfg.MaxConnIdleTime, cfg.HealthCheckPeriod)
	}
	if cfg.ConnConfig.RuntimeParams["application_name"] != "tripboard" {
		t.Fatalf("expected application_name, got %v", cfg.ConnConfig.RuntimeParams)
	}
}

func TestPostgresDB_HealthAndClose(t *testing.T) {
	stubPostgres(t)
	pingPGPool = func(ctx context.Context, pool *pgxpool.Pool) error {
		return errors.New("down")
	}
	called := false
	closePGPool = func(pool *pgxpool.Pool) { called = true }

	db := &PostgresDB{Pool: &pgxpool.Pool{}}
	if err := db.Health(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
	db.Close()
	if !called {
		t.Fatal("expected closePGPool to be called")
	}
}

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HammerMeetNail/tripboard/internal/config"
)

// RedisDB holds the trip snapshot, sessions and rate limit counters.
type RedisDB struct {
	Client *redis.Client
}

var (
	newRedisClient = redis.NewClient
	redisPing      = func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	}
)

func NewRedisDB(ctx context.Context, cfg config.RedisConfig) (*RedisDB, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := newRedisClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisPing(ctx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisDB{Client: client}, nil
}

// redisOptions prefers a connection URL, which carries TLS and credentials for
// hosted Redis, and falls back to host and port.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	}

	opts.ClientName = applicationName
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolSize = 10
	opts.MinIdleConns = 2
	return opts, nil
}

func (r *RedisDB) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *RedisDB) Health(ctx context.Context) error {
	return redisPing(ctx, r.Client)
}

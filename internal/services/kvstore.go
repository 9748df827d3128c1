package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound is returned when a key is absent or has expired.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the string key-value surface behind the trip snapshot and the
// session table. A zero ttl stores the value without expiry.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisKV implements KVStore on go-redis.
type RedisKV struct {
	client redis.Cmdable
}

func NewRedisKV(client redis.Cmdable) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return value, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Touch resets the expiry of an existing key.
func (r *RedisKV) Touch(ctx context.Context, key string, ttl time.Duration) error {
	ok, err := r.client.Expire(ctx, key, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrKeyNotFound
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

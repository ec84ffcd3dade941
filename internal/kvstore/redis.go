package kvstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "portfolio:"

// Redis is a Store shared by every instance pointing at the same server
type Redis struct {
	client *redis.Client
	prefix string
}

var _ Store = (*Redis)(nil)

// NewRedis wraps a redis client; keys are namespaced with prefix
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key: %w", err)
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key: %w", err)
	}
	return nil
}

func (r *Redis) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, r.key(key), value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to setnx key: %w", err)
	}
	return ok, nil
}

func (r *Redis) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	k := r.key(key)

	var incr *redis.IntCmd
	var left *redis.DurationCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		left = pipe.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to incr key: %w", err)
	}

	// -1 means no expiry: a new counter, or one whose earlier EXPIRE failed.
	// The window is anchored at the call that sets it.
	if ttl > 0 && left.Val() == -1 {
		if err := r.client.Expire(ctx, k, ttl).Err(); err != nil {
			return incr.Val(), fmt.Errorf("failed to expire key: %w", err)
		}
	}
	return incr.Val(), nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

// Sweep is a no-op: redis expires keys itself
func (r *Redis) Sweep(context.Context) (int, error) {
	return 0, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

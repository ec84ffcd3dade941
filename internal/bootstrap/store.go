package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/kvstore"
	"github.com/redis/go-redis/v9"
)

type StoreOptions struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	PingTO   time.Duration
}

// OpenStore connects to redis when an address is configured and otherwise
// returns an in-process store. The returned close func is never nil.
func OpenStore(ctx context.Context, opt StoreOptions) (kvstore.Store, func() error, error) {
	if opt.Addr == "" {
		return kvstore.NewMemory(), func() error { return nil }, nil
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}

	return kvstore.NewRedis(client, opt.Prefix), client.Close, nil
}

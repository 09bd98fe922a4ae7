package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"messagely/internal/config"
)

// NewClient creates a Redis client from configuration. The client is injected
// into consumers at construction; there is no package-level instance.
func NewClient(cfg config.RedisConfig) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Ping verifies connectivity.
func Ping(ctx context.Context, client *goredis.Client) error {
	return client.Ping(ctx).Err()
}

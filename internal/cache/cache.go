// Package cache wraps the redis client used as the token revocation
// list. Entries are plain SET-with-TTL sentinels; once a key expires
// the token it shadowed has expired too, so nothing ever needs to be
// cleaned up by hand.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Blacklist is the revocation list consulted on every authenticated
// request and written on logout and refresh rotation.
type Blacklist interface {
	Add(ctx context.Context, key string, ttl time.Duration) error
	Contains(ctx context.Context, key string) (bool, error)
}

type Cache struct {
	client *redis.Client
}

func New(ctx context.Context, addr string, username string, password string, db int) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	slog.Info("redis connected", "addr", addr, "db", db)
	return &Cache{client: client}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Add(ctx context.Context, key string, ttl time.Duration) error {
	if ttl <= 0 {
		// the token is already past its expiry; nothing to shadow
		return nil
	}

	if err := c.client.Set(ctx, key, "true", ttl).Err(); err != nil {
		return fmt.Errorf("set revocation entry: %w", err)
	}
	return nil
}

func (c *Cache) Contains(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check revocation entry: %w", err)
	}
	return n > 0, nil
}

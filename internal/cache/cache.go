package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yogesh1825/CareerConnect-Job-Portal/config"
)

// Client wraps redis.Client and fails safe: connectivity errors behave like
// a cache miss. A nil *Client is valid and does nothing.
type Client struct {
	client *redis.Client
}

// New creates a Redis client. It returns nil when no address is configured.
func New(cfg config.RedisConfig) *Client {
	if cfg.Addr == "" {
		return nil
	}
	return &Client{client: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

// Ping checks connectivity. Unlike the other methods it reports errors.
func (c *Client) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Exists reports whether key is present. Redis errors read as absent.
func (c *Client) Exists(ctx context.Context, key string) bool {
	if c == nil {
		return false
	}
	n, err := c.client.Exists(ctx, key).Result()
	return err == nil && n > 0
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	if c == nil || ttl <= 0 {
		return
	}
	_ = c.client.Set(ctx, key, value, ttl).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

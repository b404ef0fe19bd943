package rdx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 10 * time.Minute

// Cache is a thin wrapper around a redis client used for cache-aside on the
// public list endpoints. Every error is soft: callers treat a miss and a
// failure the same way and fall through to Mongo.
type Cache struct {
	conn *redis.Client
}

func New(addr string) *Cache {
	return &Cache{conn: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if c == nil || c.conn == nil {
		return "", redis.Nil
	}
	return c.conn.Get(ctx, key).Result()
}

func (c *Cache) Set(ctx context.Context, key, value string) error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Set(ctx, key, value, defaultTTL).Err()
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

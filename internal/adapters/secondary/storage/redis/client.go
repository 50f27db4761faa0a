package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/QuilGrafit/astroX/internal/ports/cache"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb *redis.Client
}

func NewClient(rdb *redis.Client) *Client {
	return &Client{rdb: rdb}
}

var _ cache.Cache = (*Client)(nil)

func (c *Client) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	// SET NX вместо устаревшего SETNX, чтобы TTL ставился атомарно
	res, err := c.rdb.SetArgs(ctx, key, value, redis.SetArgs{Mode: "NX", TTL: ttl}).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redis set nx %s: %w", key, err)
	}
	return res == "OK", nil
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

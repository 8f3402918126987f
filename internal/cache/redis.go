// Package cache holds the redis-backed key-value store used for short-lived
// Spotify session data. The client is constructed explicitly and its
// lifecycle is owned by the process entry point.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/syncify/internal/logger"
)

// ErrUnavailable is returned when the cache cannot be reached or was never connected.
var ErrUnavailable = errors.New("cache unavailable")

// Client is a JSON key-value store on top of redis.
type Client struct {
	opts *redis.Options

	mu  sync.RWMutex
	rdb *redis.Client
}

// NewClient creates a Client. No connection is made until Connect.
func NewClient(opts *redis.Options) *Client {
	return &Client{opts: opts}
}

// Connect dials redis and verifies it with a PING. Calling it on a
// connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rdb != nil {
		return nil
	}

	rdb := redis.NewClient(c.opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		logger.Log.Errorw("failed to connect to redis", "addr", c.opts.Addr, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.rdb = rdb
	logger.Log.Infow("connected to redis", "addr", c.opts.Addr, "db", c.opts.DB)
	return nil
}

// Close releases the connection pool. Closing a disconnected client is a no-op.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rdb == nil {
		return nil
	}
	err := c.rdb.Close()
	c.rdb = nil
	return err
}

func (c *Client) conn() (*redis.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.rdb == nil {
		return nil, ErrUnavailable
	}
	return c.rdb, nil
}

// SetKey stores value JSON-encoded under key. A zero ttl keeps the key forever.
func (c *Client) SetKey(ctx context.Context, key string, value any, ttl time.Duration) error {
	rdb, err := c.conn()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := rdb.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Errorw("cache set failed", "key", key, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// GetKey decodes the value under key into dst. It reports false when the key is absent.
func (c *Client) GetKey(ctx context.Context, key string, dst any) (bool, error) {
	rdb, err := c.conn()
	if err != nil {
		return false, err
	}

	data, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Log.Errorw("cache get failed", "key", key, "error", err)
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// DeleteKey removes key and reports whether it existed.
func (c *Client) DeleteKey(ctx context.Context, key string) (bool, error) {
	rdb, err := c.conn()
	if err != nil {
		return false, err
	}

	n, err := rdb.Del(ctx, key).Result()
	if err != nil {
		logger.Log.Errorw("cache delete failed", "key", key, "error", err)
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// Ping checks that the cache is reachable.
func (c *Client) Ping(ctx context.Context) error {
	rdb, err := c.conn()
	if err != nil {
		return err
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

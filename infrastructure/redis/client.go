package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"attendance-tasks/pkg/config"
	"attendance-tasks/pkg/logger"
)

const (
	lockTTL        = 10 * time.Second
	lockRetryDelay = 100 * time.Millisecond
	lockRetries    = 20
)

// Client wraps the Redis client
type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client from config
func NewClient(cfg *config.RedisConfig) (*Client, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Password != "" {
		opt.Password = cfg.Password
	}
	if cfg.DB > 0 {
		opt.DB = cfg.DB
	}

	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	logger.Info("Redis connected", "url", cfg.URL)

	return &Client{rdb: rdb}, nil
}

// ScanAndDelete deletes all keys matching a pattern
func (c *Client) ScanAndDelete(ctx context.Context, pattern string) (int64, error) {
	var deleted int64
	var cursor uint64

	for {
		keys, nextCursor, err := c.rdb.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return deleted, err
		}

		if len(keys) > 0 {
			n, err := c.rdb.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// ═══════════════════════════════════════════════════════════════════════════════
// JSON cache with a per-key fill lock
// ═══════════════════════════════════════════════════════════════════════════════

func (c *Client) setJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, expiration).Err()
}

// getJSON returns redis.Nil when the key does not exist.
func (c *Client) getJSON(ctx context.Context, key string, target any) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// GetOrSet reads key into target. On a miss one caller fills it from getter
// while the others wait for the fill.
func (c *Client) GetOrSet(ctx context.Context, key string, target any, ttl time.Duration, getter func() (any, error)) error {
	lockKey := "lock:" + key

	for attempt := 0; ; attempt++ {
		err := c.getJSON(ctx, key, target)
		if err == nil {
			return nil
		}
		if !errors.Is(err, redis.Nil) {
			return err
		}

		locked, err := c.rdb.SetNX(ctx, lockKey, "1", lockTTL).Result()
		if err != nil {
			return err
		}
		if locked {
			break
		}
		if attempt >= lockRetries {
			return fmt.Errorf("timed out waiting for %s", lockKey)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}
	defer c.rdb.Del(context.WithoutCancel(ctx), lockKey)

	// another caller may have filled it between our read and the lock
	if err := c.getJSON(ctx, key, target); err == nil {
		return nil
	}

	result, err := getter()
	if err != nil {
		return err
	}

	if err := c.setJSON(ctx, key, result, ttl); err != nil {
		logger.WarnContext(ctx, "Failed to cache result", "key", key, "error", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/clubware/backoffice/pkg/config"
	"github.com/redis/go-redis/v9"
)

// Cache keeps recent report summaries in redis. Entries expire on TTL; there
// is no invalidation on writes, a slightly stale summary is acceptable.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache connects to redis using the configured address. Returns nil when
// redis is not configured, which disables caching.
func NewCache(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*Cache, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	opts := &redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return &Cache{client: client, ttl: ttl}, nil
}

// Get returns the cached report, or nil on a miss.
func (c *Cache) Get(ctx context.Context, key string) (*Report, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var report Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Set stores the report under the key for the cache's TTL.
func (c *Cache) Set(ctx context.Context, key string, report *Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Close releases the redis connection.
func (c *Cache) Close() error {
	return c.client.Close()
}

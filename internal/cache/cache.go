package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/slidelens/slidelens/internal/types"
)

const KEY_PREFIX = "slidelens:report:"

// Cache remembers full reports by upload checksum and analysis options.
type Cache interface {
	Get(ctx context.Context, key string) (*types.Report, bool, error)
	Set(ctx context.Context, key string, report *types.Report) error
	Close() error
}

// Key derives the cache key of an analysis, identical files analyzed with
// identical options share it.
func Key(checksum string, options types.AnalysisOptions) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%d|%d|%d|%g",
		checksum, options.LLMModelID, options.VLMModelID, options.MaxTokens, options.Temperature,
	)))
	return KEY_PREFIX + hex.EncodeToString(sum[:])
}

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(options RedisOptions) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     options.Addr,
			Password: options.Password,
			DB:       options.DB,
		}),
		ttl: options.TTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string) (*types.Report, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	report := &types.Report{}
	if err := json.Unmarshal(data, report); err != nil {
		return nil, false, fmt.Errorf("decode cached report: %w", err)
	}
	return report, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, report *types.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop is used when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (*types.Report, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, *types.Report) error         { return nil }
func (Noop) Close() error                                             { return nil }

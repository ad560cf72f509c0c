package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const keyPrefix = "cache:"

type CacheService struct {
	client redis.Cmdable
}

func NewCacheService(client redis.Cmdable) *CacheService {
	return &CacheService{
		client: client,
	}
}

// Get decodes the cached value into dest, or returns ErrCacheMiss.
func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.client.Set(ctx, keyPrefix+key, data, ttl).Err()
}

func (c *CacheService) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return c.client.Del(ctx, prefixed...).Err()
}

// GetOrSet returns the cached value or stores the result of setter.
// A cache failure never hides the setter's value.
func (c *CacheService) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_ = c.client.Set(ctx, keyPrefix+key, data, ttl).Err()
	return json.Unmarshal(data, dest)
}

func AssignmentsKey(exchangeID string) string {
	return "exchange_assignments:" + exchangeID
}

func ExchangesKey() string {
	return "exchanges"
}

// InvalidateExchangeCache drops every cached view of an exchange's assignments.
func (c *CacheService) InvalidateExchangeCache(ctx context.Context, exchangeID string) error {
	if err := c.Delete(ctx, AssignmentsKey(exchangeID), ExchangesKey()); err != nil {
		return fmt.Errorf("failed to invalidate exchange %s: %w", exchangeID, err)
	}
	return nil
}

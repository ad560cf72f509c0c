package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Names []string `json:"names"`
}

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheService(client), mr
}

func TestGetMiss(t *testing.T) {
	c, _ := newTestCache(t)
	var out payload
	assert.ErrorIs(t, c.Get(context.Background(), "nothing", &out), ErrCacheMiss)
}

func TestSetGetWithTTL(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Names: []string{"a"}}, time.Minute))

	var out payload
	require.NoError(t, c.Get(ctx, "k", &out))
	assert.Equal(t, []string{"a"}, out.Names)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, c.Get(ctx, "k", &out), ErrCacheMiss)
}

func TestGetOrSetCallsSetterOnce(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0
	setter := func() (interface{}, error) {
		calls++
		return payload{Names: []string{"x", "y"}}, nil
	}

	var first, second payload
	require.NoError(t, c.GetOrSet(ctx, "k", &first, time.Minute, setter))
	require.NoError(t, c.GetOrSet(ctx, "k", &second, time.Minute, setter))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestGetOrSetPropagatesSetterError(t *testing.T) {
	c, _ := newTestCache(t)
	boom := errors.New("store down")

	var out payload
	err := c.GetOrSet(context.Background(), "k", &out, time.Minute, func() (interface{}, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

func TestInvalidateExchangeCache(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, AssignmentsKey("x"), payload{}, 0))
	require.NoError(t, c.Set(ctx, ExchangesKey(), payload{}, 0))
	require.NoError(t, c.Set(ctx, AssignmentsKey("y"), payload{}, 0))

	require.NoError(t, c.InvalidateExchangeCache(ctx, "x"))

	assert.False(t, mr.Exists("cache:"+AssignmentsKey("x")))
	assert.False(t, mr.Exists("cache:"+ExchangesKey()))
	assert.True(t, mr.Exists("cache:"+AssignmentsKey("y")))
}

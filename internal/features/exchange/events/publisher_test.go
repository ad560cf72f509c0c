package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPublisherAppends(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	p := NewRedisPublisher(client, "santa:notifications", 100)
	at := time.Date(2025, 12, 1, 18, 0, 0, 0, time.UTC)
	require.NoError(t, p.Publish(context.Background(), Event{Type: TypeDrawCompleted, ExchangeID: "x", Count: 3, At: at}))

	msgs, err := client.XRange(context.Background(), "santa:notifications", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "draw_completed", msgs[0].Values["type"])
	assert.Equal(t, "x", msgs[0].Values["exchange_id"])
	assert.Equal(t, "3", msgs[0].Values["count"])
	assert.Equal(t, "2025-12-01T18:00:00Z", msgs[0].Values["at"])
}

func TestRedisPublisherReportsFailure(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer client.Close()

	p := NewRedisPublisher(client, "s", 0)
	assert.Error(t, p.Publish(context.Background(), Event{Type: TypeAssignmentsReset, ExchangeID: "x"}))
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), Event{Type: TypeDrawCompleted}))
}

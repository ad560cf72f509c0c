package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	TypeDrawCompleted    = "draw_completed"
	TypeAssignmentsReset = "assignments_reset"
)

// Event is one notification appended to the notifications stream.
type Event struct {
	Type       string
	ExchangeID string
	Count      int
	At         time.Time
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// RedisPublisher appends events to a capped Redis stream read by the notification bot.
type RedisPublisher struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

func NewRedisPublisher(client redis.Cmdable, stream string, maxLen int64) *RedisPublisher {
	return &RedisPublisher{
		client: client,
		stream: stream,
		maxLen: maxLen,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"type":        ev.Type,
			"exchange_id": ev.ExchangeID,
			"count":       strconv.Itoa(ev.Count),
			"at":          ev.At.Format(time.RFC3339),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", ev.Type, err)
	}
	return nil
}

// NopPublisher drops every event. Used when streams are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

package workers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/validation"
	"secret-santa-backend/internal/features/exchange/service"
)

const (
	EventDrawRequested  = "draw_requested"
	EventResetRequested = "reset_requested"
)

type StreamConfig struct {
	Stream   string
	Group    string
	Consumer string
	Block    time.Duration
	// DefaultExchangeID is used when a message omits exchange_id.
	DefaultExchangeID string
}

// RedisStreamWorker executes draw and reset requests posted to a Redis stream
// by other services, such as the notification bot.
type RedisStreamWorker struct {
	rdb    *redis.Client
	draws  service.DrawService
	cfg    StreamConfig
	logger zerolog.Logger
}

func NewRedisStreamWorker(rdb *redis.Client, draws service.DrawService, cfg StreamConfig, logger zerolog.Logger) *RedisStreamWorker {
	if cfg.Block <= 0 {
		cfg.Block = 5 * time.Second
	}
	return &RedisStreamWorker{
		rdb:    rdb,
		draws:  draws,
		cfg:    cfg,
		logger: logger.With().Str("component", "stream_worker").Str("stream", cfg.Stream).Logger(),
	}
}

// Start consumes the stream until ctx is cancelled.
func (w *RedisStreamWorker) Start(ctx context.Context) {
	err := w.rdb.XGroupCreateMkStream(ctx, w.cfg.Stream, w.cfg.Group, "$").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		w.logger.Error().Err(err).Msg("Error creating consumer group")
	}

	w.logger.Info().Str("group", w.cfg.Group).Str("consumer", w.cfg.Consumer).Msg("Starting Redis stream worker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopping Redis stream worker")
			return
		default:
		}

		entries, err := w.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    w.cfg.Group,
			Consumer: w.cfg.Consumer,
			Streams:  []string{w.cfg.Stream, ">"},
			Count:    10,
			Block:    w.cfg.Block,
		}).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.logger.Error().Err(err).Msg("Error reading from stream")
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}

		for _, stream := range entries {
			for _, msg := range stream.Messages {
				w.processMessage(ctx, msg.ID, msg.Values)
				// processed entries are acked even when shutdown has begun
				if err := w.rdb.XAck(context.WithoutCancel(ctx), w.cfg.Stream, w.cfg.Group, msg.ID).Err(); err != nil {
					w.logger.Error().Err(err).Str("message_id", msg.ID).Msg("Failed to ack message")
				}
			}
		}
	}
}

// processMessage handles one entry. Failures are logged and the entry is
// still acknowledged: a draw request is re-sent by its producer, not replayed.
func (w *RedisStreamWorker) processMessage(ctx context.Context, id string, values map[string]interface{}) {
	eventType, _ := values["type"].(string)
	exchangeID, _ := values["exchange_id"].(string)
	if exchangeID == "" {
		exchangeID = w.cfg.DefaultExchangeID
	}

	log := w.logger.With().Str("message_id", id).Str("type", eventType).Str("exchange_id", exchangeID).Logger()

	if !validation.IsValidExchangeID(exchangeID) {
		log.Warn().Msg("Dropping event with malformed exchange id")
		return
	}

	switch eventType {
	case EventDrawRequested:
		result, err := w.draws.Draw(ctx, exchangeID)
		if err != nil {
			log.Error().Err(err).Msg("Requested draw failed")
			return
		}
		log.Info().Int("participants", result.ParticipantsCount).Msg("Requested draw completed")
	case EventResetRequested:
		removed, err := w.draws.Reset(ctx, exchangeID)
		if err != nil {
			log.Error().Err(err).Msg("Requested reset failed")
			return
		}
		log.Info().Int("removed", removed).Msg("Requested reset completed")
	default:
		log.Debug().Msg("Ignoring unknown event")
	}
}

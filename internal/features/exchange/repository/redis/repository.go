package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"secret-santa-backend/internal/features/exchange/models"
	"secret-santa-backend/internal/features/exchange/repository"
)

const (
	keyPrefixExchange = "exchange:"
	keyExchanges      = "exchanges"
)

type assignmentRepository struct {
	client *redis.Client
}

func NewAssignmentRepository(client *redis.Client) repository.AssignmentRepository {
	return &assignmentRepository{
		client: client,
	}
}

// makeAssignmentsKey is the hash holding giver id -> AssignmentRecord JSON.
func makeAssignmentsKey(exchangeID string) string {
	return keyPrefixExchange + exchangeID + ":assignments"
}

func (r *assignmentRepository) Replace(ctx context.Context, exchangeID string, assignments []models.Assignment, drawnAt time.Time) error {
	fields := make([]interface{}, 0, len(assignments)*2)
	for _, a := range assignments {
		doc, err := json.Marshal(models.NewRecord(exchangeID, a, drawnAt))
		if err != nil {
			return fmt.Errorf("failed to marshal assignment: %w", err)
		}
		fields = append(fields, a.GiverID, doc)
	}

	key := makeAssignmentsKey(exchangeID)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) == 0 {
			pipe.SRem(ctx, keyExchanges, exchangeID)
			return nil
		}
		pipe.HSet(ctx, key, fields...)
		pipe.SAdd(ctx, keyExchanges, exchangeID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace assignments of %s: %w", exchangeID, err)
	}
	return nil
}

func (r *assignmentRepository) Clear(ctx context.Context, exchangeID string) (int, error) {
	key := makeAssignmentsKey(exchangeID)
	var count *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.HLen(ctx, key)
		pipe.Del(ctx, key)
		pipe.SRem(ctx, keyExchanges, exchangeID)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to clear assignments of %s: %w", exchangeID, err)
	}
	return int(count.Val()), nil
}

func (r *assignmentRepository) List(ctx context.Context, exchangeID string) ([]models.AssignmentRecord, error) {
	values, err := r.client.HGetAll(ctx, makeAssignmentsKey(exchangeID)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]models.AssignmentRecord, 0, len(values))
	for giver, raw := range values {
		var rec models.AssignmentRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("corrupt assignment %s/%s: %w", exchangeID, giver, err)
		}
		if rec.GiftExchangeID == "" {
			rec.GiftExchangeID = exchangeID
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UserID < records[j].UserID
	})
	return records, nil
}

func (r *assignmentRepository) GetByGiver(ctx context.Context, exchangeID, giverID string) (*models.AssignmentRecord, error) {
	raw, err := r.client.HGet(ctx, makeAssignmentsKey(exchangeID), giverID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrAssignmentNotFound
		}
		return nil, err
	}

	var rec models.AssignmentRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("corrupt assignment %s/%s: %w", exchangeID, giverID, err)
	}
	if rec.GiftExchangeID == "" {
		rec.GiftExchangeID = exchangeID
	}
	return &rec, nil
}

func (r *assignmentRepository) ListExchanges(ctx context.Context) ([]models.ExchangeSummary, error) {
	ids, err := r.client.SMembers(ctx, keyExchanges).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.ExchangeSummary{}, nil
	}
	sort.Strings(ids)

	cmds, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			pipe.HLen(ctx, makeAssignmentsKey(id))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.ExchangeSummary, 0, len(ids))
	for i, id := range ids {
		n := cmds[i].(*redis.IntCmd).Val()
		if n == 0 {
			continue
		}
		out = append(out, models.ExchangeSummary{ID: id, AssignmentsCount: int(n)})
	}
	return out, nil
}

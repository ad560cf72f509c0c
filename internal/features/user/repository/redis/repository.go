package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"secret-santa-backend/internal/features/user/models"
	"secret-santa-backend/internal/features/user/repository"
)

const (
	keyPrefixUser = "user:"
	keyUsers      = "users"
)

type userRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) repository.UserRepository {
	return &userRepository{
		client: client,
	}
}

func makeUserKey(id string) string {
	return keyPrefixUser + id
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	var created *redis.BoolCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		created = pipe.SetNX(ctx, makeUserKey(user.ID), userJSON, 0)
		pipe.SAdd(ctx, keyUsers, user.ID)
		return nil
	})
	if err != nil {
		return err
	}
	if !created.Val() {
		return repository.ErrUserExists
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	userJSON, err := r.client.Get(ctx, makeUserKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrUserNotFound
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now().UTC()
	userJSON, err := json.Marshal(user)
	if err != nil {
		return err
	}

	ok, err := r.client.SetXX(ctx, makeUserKey(user.ID), userJSON, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	var removed *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		removed = pipe.Del(ctx, makeUserKey(id))
		pipe.SRem(ctx, keyUsers, id)
		return nil
	})
	if err != nil {
		return err
	}
	if removed.Val() == 0 {
		return repository.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	ids, err := r.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.User{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = makeUserKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// set member without a document
			continue
		}
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("corrupt user %s: %w", ids[i], err)
		}
		users = append(users, &user)
	}

	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, keyUsers).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

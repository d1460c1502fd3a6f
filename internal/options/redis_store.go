package options

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"storeboost/internal/settings"
)

const redisKeyPrefix = "storeboost:options:"

// RedisStore keeps options in redis, for deployments that already run one
// next to the app. Values never expire; features own their lifecycle.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, name string) (settings.Map, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return settings.Map{}, nil
		}
		return nil, err
	}
	var m settings.Map
	if err := json.Unmarshal(raw, &m); err != nil || m == nil {
		return settings.Map{}, nil
	}
	return m, nil
}

func (s *RedisStore) Set(ctx context.Context, name string, value settings.Map) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+name, raw, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, redisKeyPrefix+name).Err()
}

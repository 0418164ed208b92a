package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis is a Store backed by a Redis client. Used when REDIS_ADDR is
// configured so carts and the CSV cache survive process restarts.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (s *Redis) Get(key string) (string, bool, error) {
	v, err := s.client.Get(context.Background(), key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *Redis) Set(key, value string) error {
	return s.client.Set(context.Background(), key, value, 0).Err()
}

func (s *Redis) Delete(key string) error {
	return s.client.Del(context.Background(), key).Err()
}

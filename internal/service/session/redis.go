package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "voicebot:session:"

// RedisStore keeps each session as a Redis hash, one field per key.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to the URL, falling back to treating it as a bare address.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// NewRedisStore wraps client; sessions expire ttl after their last write.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, sessionID, key string, dst any) (bool, error) {
	if sessionID == "" {
		return false, ErrInvalidSessionID
	}

	raw, err := s.client.HGet(ctx, redisKeyPrefix+sessionID, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis hget %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode session key %s: %w", key, err)
	}
	return true, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, sessionID, key string, value any) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session key %s: %w", key, err)
	}

	redisKey := redisKeyPrefix + sessionID
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, redisKey, key, raw)
		pipe.Expire(ctx, redisKey, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis hset %s: %w", key, err)
	}
	return nil
}

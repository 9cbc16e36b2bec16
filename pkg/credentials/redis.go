package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps credentials in Redis, for CI runners and other
// setups where several hosts share one login. Keys are namespaced as
// surge:credential:<endpoint-host>.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed credential store. A zero ttl
// stores credentials without expiry; otherwise each Set refreshes the
// expiry, so idle logins age out.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(endpoint string) string {
	return "surge:credential:" + endpointKey(endpoint)
}

func (s *RedisStore) Get(ctx context.Context, endpoint string) (*Credential, error) {
	data, err := s.client.Get(ctx, redisKey(endpoint)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("parse credential: %w", err)
	}
	return &cred, nil
}

func (s *RedisStore) Set(ctx context.Context, cred *Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}
	if err := s.client.Set(ctx, redisKey(cred.Endpoint), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, endpoint string) error {
	if err := s.client.Del(ctx, redisKey(endpoint)).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Cleanup is a no-op; Redis expires entries itself when a TTL is set.
func (s *RedisStore) Cleanup(ctx context.Context) error {
	return nil
}

var _ Store = (*RedisStore)(nil)

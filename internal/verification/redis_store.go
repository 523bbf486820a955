package verification

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "confirm:"

// RedisStore persists codes in Redis with a server-side TTL, so codes
// survive restarts and expire without any in-process bookkeeping.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+email, code, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, keyPrefix+email).Result()
	if err == redis.Nil {
		return "", ErrCodeExpired
	}
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, keyPrefix+email).Err()
}

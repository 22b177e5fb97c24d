package tokenstore

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wadjakorntonsri/linkshelf/pkg/core/services"
)

// RedisStore keeps the token under one key. When the token is a JWT with an
// expiry the key expires with it.
type RedisStore struct {
	rdb *redis.Client
	key string
	now func() time.Time
}

// NewRedisStore creates and pings a Redis client with optional password auth.
func NewRedisStore(ctx context.Context, addr, password, key string) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return &RedisStore{rdb: rdb, key: "linkshelf:" + key, now: time.Now}, nil
}

func (s *RedisStore) Load(ctx context.Context) (string, bool, error) {
	val, err := s.rdb.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisStore) Save(ctx context.Context, token string) error {
	var ttl time.Duration
	if _, expires := services.TokenClaims(token); !expires.IsZero() {
		// An already expired token is kept without TTL; the server rejects it.
		ttl = max(expires.Sub(s.now()), 0)
	}
	return s.rdb.Set(ctx, s.key, token, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

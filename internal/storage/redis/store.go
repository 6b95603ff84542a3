package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "idempotency:orders:"
	defaultTTL           = 24 * time.Hour
)

type client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
	Ping(ctx context.Context) *goredis.StatusCmd
	Close() error
}

// IdempotencyStore keeps order creation keys in Redis for a fixed TTL.
type IdempotencyStore struct {
	client client
	ttl    time.Duration
}

// NewIdempotencyStore wraps an existing client.
func NewIdempotencyStore(c client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &IdempotencyStore{client: c, ttl: ttl}
}

// Reserve claims key. False means an earlier request already holds it.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, idempotencyKeyPrefix+key, 1, s.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Release frees key so a failed request can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, idempotencyKeyPrefix+key).Err()
}

// HealthCheck pings the server.
func (s *IdempotencyStore) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *IdempotencyStore) Close() error {
	return s.client.Close()
}

// NopStore accepts every key. It is used when no Redis address is configured.
type NopStore struct{}

func (NopStore) Reserve(context.Context, string) (bool, error) { return true, nil }
func (NopStore) Release(context.Context, string) error         { return nil }

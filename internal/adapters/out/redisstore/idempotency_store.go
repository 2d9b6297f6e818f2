// Package redisstore keeps Idempotency-Key reservations in Redis.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "idempotency:order:"
	pendingMarker = "pending"

	DefaultTTL = 24 * time.Hour
)

// reserveScript sets the key to the pending marker unless it exists and
// returns the previous value, or an empty string when the key was free.
var reserveScript = redis.NewScript(`
local ok = redis.call('SET', KEYS[1], ARGV[1], 'NX', 'PX', ARGV[2])
if ok then
	return ''
end
return redis.call('GET', KEYS[1])
`)

type IdempotencyStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

func NewIdempotencyStore(client redis.Cmdable, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

func (s *IdempotencyStore) Reserve(ctx context.Context, key string) (ports.IdempotencyState, kernel.UUID, error) {
	prev, err := reserveScript.Run(ctx, s.client, []string{keyPrefix + key}, pendingMarker, s.ttl.Milliseconds()).Text()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, kernel.UUID{}, fmt.Errorf("reserve idempotency key: %w", err)
	}
	switch prev {
	case "":
		return ports.IdempotencyReserved, kernel.UUID{}, nil
	case pendingMarker:
		return ports.IdempotencyInFlight, kernel.UUID{}, nil
	}
	id, err := kernel.UUIDFromString(prev)
	if err != nil {
		return 0, kernel.UUID{}, fmt.Errorf("idempotency key %q holds %q: %w", key, prev, err)
	}
	return ports.IdempotencyCompleted, id, nil
}

func (s *IdempotencyStore) Complete(ctx context.Context, key string, orderID kernel.UUID) error {
	if err := s.client.Set(ctx, keyPrefix+key, orderID.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("complete idempotency key: %w", err)
	}
	return nil
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}

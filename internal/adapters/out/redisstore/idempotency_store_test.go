package redisstore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"supplyhub/internal/adapters/out/redisstore"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func freshKey(t *testing.T, client *redis.Client) string {
	t.Helper()
	key := "test-" + kernel.NewUUID().String()
	t.Cleanup(func() { client.Del(context.Background(), "idempotency:order:"+key) })
	return key
}

func TestIdempotencyStore_Lifecycle(t *testing.T) {
	client := redisClient(t)
	store := redisstore.NewIdempotencyStore(client, time.Minute)
	ctx := context.Background()
	key := freshKey(t, client)

	state, _, err := store.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyReserved, state)

	state, _, err = store.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyInFlight, state)

	orderID := kernel.NewUUID()
	require.NoError(t, store.Complete(ctx, key, orderID))

	state, got, err := store.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyCompleted, state)
	assert.Equal(t, orderID, got)

	ttl, err := client.TTL(ctx, "idempotency:order:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestIdempotencyStore_ReleaseFreesTheKey(t *testing.T) {
	client := redisClient(t)
	store := redisstore.NewIdempotencyStore(client, 0)
	ctx := context.Background()
	key := freshKey(t, client)

	_, _, err := store.Reserve(ctx, key)
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, key))

	state, _, err := store.Reserve(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, ports.IdempotencyReserved, state)
}

func TestIdempotencyStore_ConcurrentReserve(t *testing.T) {
	client := redisClient(t)
	store := redisstore.NewIdempotencyStore(client, time.Minute)
	key := freshKey(t, client)

	results := make(chan ports.IdempotencyState, 20)
	for range 20 {
		go func() {
			state, _, err := store.Reserve(context.Background(), key)
			if err != nil {
				state = 0
			}
			results <- state
		}()
	}

	reserved := 0
	for range 20 {
		if <-results == ports.IdempotencyReserved {
			reserved++
		}
	}
	assert.Equal(t, 1, reserved)
}

func TestIdempotencyStore_CorruptValue(t *testing.T) {
	client := redisClient(t)
	store := redisstore.NewIdempotencyStore(client, time.Minute)
	ctx := context.Background()
	key := freshKey(t, client)
	require.NoError(t, client.Set(ctx, "idempotency:order:"+key, "garbage", time.Minute).Err())

	_, _, err := store.Reserve(ctx, key)

	require.Error(t, err)
}

func TestIdempotencyStore_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()
	store := redisstore.NewIdempotencyStore(client, time.Minute)

	_, _, err := store.Reserve(context.Background(), "k")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserve idempotency key")
}

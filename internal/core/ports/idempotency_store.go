package ports

import (
	"context"

	"supplyhub/internal/core/domain/model/kernel"
)

type IdempotencyState int

const (
	// IdempotencyReserved means the caller owns the key and must either
	// Complete or Release it.
	IdempotencyReserved IdempotencyState = iota + 1
	// IdempotencyInFlight means another request holds the key.
	IdempotencyInFlight
	// IdempotencyCompleted means an order was already created under the key.
	IdempotencyCompleted
)

// IdempotencyStore remembers which order an Idempotency-Key produced.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (IdempotencyState, kernel.UUID, error)
	Complete(ctx context.Context, key string, orderID kernel.UUID) error
	Release(ctx context.Context, key string) error
}

// Package ports defines the contracts between the order lifecycle core and
// its storage, identity and notification infrastructure.
package ports

import (
	"context"
	"errors"
	"time"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
)

// ErrDuplicateOrderNumber is returned by Add when the order number is
// already taken. Callers retry with a fresh number.
var ErrDuplicateOrderNumber = errors.New("order number already exists")

// OrderRepository persists order aggregates. Status changes never go through
// a read-modify-write: both UpdateStatus and Claim are single conditional
// updates, and report false when their condition no longer holds.
type OrderRepository interface {
	// Add writes the order row and all of its line items as one unit. When
	// the repository is not bound to a transaction and an item write fails,
	// the order row is deleted again before the error is returned.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its line items, or ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatus stores the aggregate's current status and updated_at
	// only if the persisted status still equals expected and the delivery
	// partner binding is unchanged.
	UpdateStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// Claim binds partnerID and moves the order out for delivery only if it
	// is ready for pickup and unclaimed. It returns the claimed order
	// without line items, or nil when another claim won or the order is not
	// claimable.
	Claim(ctx context.Context, id, partnerID kernel.UUID, at time.Time) (*order.Order, error)

	// DeleteTerminalBefore removes delivered and cancelled orders last
	// updated before the cutoff, with their items.
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

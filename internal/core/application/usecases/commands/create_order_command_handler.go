package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"

	"go.uber.org/zap"
)

const maxOrderNumberAttempts = 3

// ErrRequestInFlight is returned when another request holding the same
// Idempotency-Key has not finished yet.
var ErrRequestInFlight = errors.New("a request with this idempotency key is still in progress")

// CreateOrderCommandHandler writes a new pending order with all of its line
// items in one transaction. A number collision with an existing order is
// retried with a fresh number; every other write failure surfaces as
// OrderCreationFailed. No change event is published for creation.
type CreateOrderCommandHandler struct {
	uowFactory  OrderUoWFactory
	directory   ports.ActorDirectory
	numbers     OrderNumberSource
	idempotency ports.IdempotencyStore
	logger      *zap.Logger
}

// NewCreateOrderCommandHandler builds the handler. idempotency may be nil,
// in which case Idempotency-Key values are ignored.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	directory ports.ActorDirectory,
	numbers OrderNumberSource,
	idempotency ports.IdempotencyStore,
	l *zap.Logger,
) CreateOrderCommandHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		directory:   directory,
		numbers:     numbers,
		idempotency: idempotency,
		logger:      l.With(zap.String("handler", "create_order")),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.checkParties(ctx, cmd); err != nil {
		return nil, err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return nil, err
	}

	if cmd.IdempotencyKey() == "" || h.idempotency == nil {
		return h.create(ctx, cmd, items)
	}
	// Keys are per vendor: two vendors may pick the same value.
	key := idempotencyScope(cmd.VendorID(), cmd.IdempotencyKey())

	state, existingID, err := h.idempotency.Reserve(ctx, key)
	if err != nil {
		return nil, errs.NewStoreUnavailableError("reserve idempotency key", err)
	}
	switch state {
	case ports.IdempotencyCompleted:
		existing, err := h.uowFactory.Create().OrderRepository().Get(ctx, existingID)
		if err != nil {
			return nil, errs.WrapStore("get order", err)
		}
		return existing, nil
	case ports.IdempotencyInFlight:
		return nil, ErrRequestInFlight
	}

	created, err := h.create(ctx, cmd, items)
	if err != nil {
		if relErr := h.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
			h.logger.Warn("release idempotency key", zap.String("key", key), zap.Error(relErr))
		}
		return nil, err
	}
	// A failed completion leaves the key reserved until it expires; retries
	// under it get ErrRequestInFlight in the meantime.
	if compErr := h.idempotency.Complete(context.WithoutCancel(ctx), key, created.ID()); compErr != nil {
		h.logger.Error("complete idempotency key",
			zap.String("key", key),
			zap.String("order_id", created.ID().String()),
			zap.Error(compErr))
	}
	return created, nil
}

func idempotencyScope(vendorID kernel.UUID, key string) string {
	return vendorID.String() + ":" + key
}

func (h CreateOrderCommandHandler) checkParties(ctx context.Context, cmd CreateOrderCommand) error {
	if cmd.VendorID().IsEqual(cmd.SupplierID()) {
		return order.ErrSameVendorAndSupplier
	}

	checks := []struct {
		role  actor.Role
		id    kernel.UUID
		param string
	}{
		{actor.Vendor, cmd.VendorID(), "vendorId"},
		{actor.Supplier, cmd.SupplierID(), "supplierId"},
	}
	for _, c := range checks {
		ok, err := h.directory.Exists(ctx, c.role, c.id)
		if err != nil {
			return errs.NewStoreUnavailableError("look up "+c.role.String(), err)
		}
		if !ok {
			return errs.NewValueIsInvalidErrorWithCause(c.param, errs.NewObjectNotFoundError(c.role.String(), c.id.String()))
		}
	}
	return nil
}

func (h CreateOrderCommandHandler) create(
	ctx context.Context,
	cmd CreateOrderCommand,
	items []*order.LineItem,
) (*order.Order, error) {
	id := kernel.NewUUID()

	var lastErr error
	for range maxOrderNumberAttempts {
		o, err := order.NewOrder(id, h.numbers.Next(), cmd.VendorID(), cmd.SupplierID(), items, cmd.Delivery(), time.Now())
		if err != nil {
			return nil, err
		}

		lastErr = h.write(ctx, o)
		if lastErr == nil {
			return o, nil
		}
		if !errors.Is(lastErr, ports.ErrDuplicateOrderNumber) {
			break
		}
	}

	if errors.Is(lastErr, errs.ErrStoreUnavailable) {
		return nil, lastErr
	}
	return nil, errs.NewOrderCreationFailedError(lastErr)
}

func (h CreateOrderCommandHandler) write(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.NewStoreUnavailableError("begin transaction", err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("commit order %s: %w", o.Number(), err)
	}
	return nil
}

func buildItems(in []CreateOrderItem) ([]*order.LineItem, error) {
	items := make([]*order.LineItem, 0, len(in))
	for _, it := range in {
		li, err := order.NewLineItem(it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

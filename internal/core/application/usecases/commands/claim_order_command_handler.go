package commands

import (
	"context"
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"
)

// ClaimOrderCommandHandler runs the first-claim-wins protocol. The claim is a
// single conditional update; of any number of concurrent claims on one
// order, exactly one sees its row updated.
//
// A losing claim reads the order once to explain the outcome:
//   - the order does not exist: NotFound
//   - the caller already holds it: success, without a new event
//   - anything else: ClaimConflict with the current status
type ClaimOrderCommandHandler struct {
	orders    ports.OrderRepository
	publisher ports.ChangePublisher
}

func NewClaimOrderCommandHandler(orders ports.OrderRepository, publisher ports.ChangePublisher) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		orders:    orders,
		publisher: publisher,
	}
}

func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	partner := cmd.Partner()
	if !partner.Is(actor.DeliveryPartner) {
		return nil, errs.NewForbiddenError(partner.ID().String(), "order", cmd.OrderID().String(),
			"only delivery partners can claim orders")
	}

	claimed, err := h.orders.Claim(ctx, cmd.OrderID(), partner.ID(), time.Now())
	if err != nil {
		return nil, errs.WrapStore("claim order", err)
	}
	if claimed != nil {
		h.publisher.Publish(ctx, order.NewChangeEvent(claimed, order.ReadyForPickup))
		return claimed, nil
	}

	current, err := h.orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, errs.WrapStore("get order", err)
	}
	if current.IsBoundTo(partner.ID()) {
		return current, nil
	}
	return nil, errs.NewClaimConflictError(current.ID().String(), current.Status().String())
}

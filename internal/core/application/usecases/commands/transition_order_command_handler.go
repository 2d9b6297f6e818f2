package commands

import (
	"context"
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/domain/services"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"
)

// maxTransitionAttempts bounds the read and conditional update cycles of one
// transition. Statuses only move forward and every legal source set has at
// most two members, so a third lost update is not expected.
const maxTransitionAttempts = 3

// TransitionOrderCommandHandler drives the order state machine. It reads the
// order, evaluates the request and stores the new status with a conditional
// update keyed on the status it read. No transaction spans the read and the
// update; when the update loses to a concurrent change the request is
// evaluated again against the freshly read status.
//
// A delivery partner asking for out_for_delivery is handed to the claim
// protocol so the first claim wins.
type TransitionOrderCommandHandler struct {
	orders    ports.OrderRepository
	claims    ClaimOrderCommandHandler
	publisher ports.ChangePublisher
	machine   services.OrderStateMachine
}

func NewTransitionOrderCommandHandler(
	orders ports.OrderRepository,
	claims ClaimOrderCommandHandler,
	publisher ports.ChangePublisher,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		orders:    orders,
		claims:    claims,
		publisher: publisher,
		machine:   services.NewOrderStateMachine(),
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if cmd.Actor().Is(actor.DeliveryPartner) && cmd.Target() == order.OutForDelivery {
		claim, err := NewClaimOrderCommand(cmd.OrderID(), cmd.Actor())
		if err != nil {
			return nil, err
		}
		return h.claims.Handle(ctx, claim)
	}

	var current order.Status
	for range maxTransitionAttempts {
		o, err := h.orders.Get(ctx, cmd.OrderID())
		if err != nil {
			return nil, errs.WrapStore("get order", err)
		}
		current = o.Status()

		decision, previous, err := h.machine.Apply(o, cmd.Actor(), cmd.Target(), time.Now())
		if err != nil {
			return nil, err
		}
		if decision == services.NoOp {
			return o, nil
		}

		updated, err := h.orders.UpdateStatus(ctx, o, previous)
		if err != nil {
			return nil, errs.WrapStore("update order status", err)
		}
		if updated {
			h.publisher.Publish(ctx, order.NewChangeEvent(o, previous))
			return o, nil
		}
		// Another request changed the order between our read and our
		// write. Evaluate again against the status it left behind.
	}

	return nil, errs.NewIllegalTransitionError(
		cmd.OrderID().String(), cmd.Actor().Role().String(), current.String(), cmd.Target().String())
}

package services

import (
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"
)

// Decision is the outcome of evaluating a transition request.
type Decision int

const (
	// Apply means the status must be changed and persisted.
	Apply Decision = iota + 1
	// NoOp means the order is already at the requested status.
	NoOp
)

// OrderStateMachine decides whether an actor may move an order to a target
// status. It never touches storage: the caller persists the change with a
// conditional update keyed on the status that was evaluated.
//
// Checks run in this order:
//   - the role can never request the target: IllegalTransition
//   - the actor is not the order's vendor, supplier or bound partner: Forbidden
//   - the order is already at the target: NoOp
//   - the current status is not a legal source: IllegalTransition
//
// A delivery partner asking for out_for_delivery on an unclaimed order is
// not a party yet; that request is resolved by the claim protocol.
type OrderStateMachine struct{}

func NewOrderStateMachine() OrderStateMachine {
	return OrderStateMachine{}
}

func (OrderStateMachine) Evaluate(o *order.Order, a actor.Actor, target order.Status) (Decision, error) {
	if err := o.Validate(); err != nil {
		return 0, err
	}
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !order.CanReach(a.Role(), target) {
		return 0, illegal(o, a, target)
	}

	if !o.IsPartyTo(a) && !isClaimRequest(o, a, target) {
		return 0, errs.NewForbiddenError(a.ID().String(), "order", o.ID().String(), forbiddenReason(a.Role()))
	}

	if o.Status() == target {
		return NoOp, nil
	}

	if !order.IsLegal(a.Role(), o.Status(), target) {
		return 0, illegal(o, a, target)
	}

	return Apply, nil
}

// Apply evaluates the request and, when allowed, changes o in memory. It
// returns the status o had before, for the conditional update and the
// change event.
func (sm OrderStateMachine) Apply(o *order.Order, a actor.Actor, target order.Status, now time.Time) (Decision, order.Status, error) {
	decision, err := sm.Evaluate(o, a, target)
	if err != nil {
		return 0, "", err
	}
	previous := o.Status()
	if decision == NoOp {
		return NoOp, previous, nil
	}

	if target == order.OutForDelivery {
		err = o.AssignDeliveryPartner(a.ID(), now)
	} else {
		err = o.MoveTo(target, now)
	}
	if err != nil {
		return 0, "", err
	}
	return Apply, previous, nil
}

func isClaimRequest(o *order.Order, a actor.Actor, target order.Status) bool {
	return a.Is(actor.DeliveryPartner) && target == order.OutForDelivery && !o.HasDeliveryPartner()
}

func illegal(o *order.Order, a actor.Actor, target order.Status) error {
	return errs.NewIllegalTransitionError(o.ID().String(), a.Role().String(), o.Status().String(), target.String())
}

func forbiddenReason(role actor.Role) string {
	switch role {
	case actor.Vendor:
		return "not the order's vendor"
	case actor.Supplier:
		return "not the order's supplier"
	default:
		return "not the order's delivery partner"
	}
}

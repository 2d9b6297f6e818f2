package queries

import (
	"errors"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/guard"
)

var ErrListActorOrdersQueryIsNotConstructed = errors.New(
	"ListActorOrdersQuery must be created via NewListActorOrdersQuery constructor",
)

// ListActorOrdersQuery lists the orders an actor is bound to, newest first:
// a vendor's purchases, a supplier's incoming orders, a delivery partner's
// deliveries.
type ListActorOrdersQuery struct {
	actor  actor.Actor
	status *order.Status
	limit  int
	guard  guard.ConstructorGuard
}

// NewListActorOrdersQuery filters by status when status is not nil.
func NewListActorOrdersQuery(a actor.Actor, status *order.Status, limit int) (ListActorOrdersQuery, error) {
	var statusErr error
	if status != nil {
		statusErr = status.Validate()
	}
	limit, limitErr := pageSize(limit)
	if err := errors.Join(a.Validate(), statusErr, limitErr); err != nil {
		return ListActorOrdersQuery{}, err
	}

	q := ListActorOrdersQuery{actor: a, limit: limit, guard: guard.NewConstructorGuard()}
	if status != nil {
		s := *status
		q.status = &s
	}
	return q, nil
}

func (q ListActorOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListActorOrdersQueryIsNotConstructed)
}

func (q ListActorOrdersQuery) Actor() actor.Actor {
	return q.actor
}

func (q ListActorOrdersQuery) Status() *order.Status {
	return q.status
}

func (q ListActorOrdersQuery) Limit() int {
	return q.limit
}

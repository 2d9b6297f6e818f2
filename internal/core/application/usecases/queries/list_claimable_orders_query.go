package queries

import (
	"errors"

	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/guard"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

var ErrListClaimableOrdersQueryIsNotConstructed = errors.New(
	"ListClaimableOrdersQuery must be created via NewListClaimableOrdersQuery constructor",
)

// ListClaimableOrdersQuery is the delivery partners' job board: orders
// ready for pickup that nobody has claimed, oldest first.
//
//	query, _ := NewListClaimableOrdersQuery(0) // default page size
//	orders, err := handler.Handle(ctx, query)
type ListClaimableOrdersQuery struct {
	limit int
	guard guard.ConstructorGuard
}

// NewListClaimableOrdersQuery accepts 0 for the default page size.
func NewListClaimableOrdersQuery(limit int) (ListClaimableOrdersQuery, error) {
	limit, err := pageSize(limit)
	if err != nil {
		return ListClaimableOrdersQuery{}, err
	}
	return ListClaimableOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q ListClaimableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListClaimableOrdersQueryIsNotConstructed)
}

func (q ListClaimableOrdersQuery) Limit() int {
	return q.limit
}

func pageSize(limit int) (int, error) {
	switch {
	case limit == 0:
		return DefaultPageSize, nil
	case limit < 0 || limit > MaxPageSize:
		return 0, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxPageSize)
	default:
		return limit, nil
	}
}

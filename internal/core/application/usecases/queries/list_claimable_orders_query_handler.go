package queries

import (
	"context"

	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// ListClaimableOrdersQueryHandler reads a snapshot; an order listed here may
// be claimed by someone else before the caller acts on it.
type ListClaimableOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListClaimableOrdersQueryHandler(db *gorm.DB) ListClaimableOrdersQueryHandler {
	return ListClaimableOrdersQueryHandler{db: db}
}

func (h ListClaimableOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListClaimableOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT`+summaryColumns+`
		FROM orders o
		WHERE o.status = ? AND o.delivery_partner_id IS NULL
		ORDER BY o.created_at, o.id
		LIMIT ?
	`, order.ReadyForPickup.String(), query.Limit()).Rows()
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list claimable orders", err)
	}

	return collectSummaries(rows)
}

package queries

import (
	"context"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListActorOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListActorOrdersQueryHandler(db *gorm.DB) ListActorOrdersQueryHandler {
	return ListActorOrdersQueryHandler{db: db}
}

func (h ListActorOrdersQueryHandler) Handle(ctx context.Context, query ListActorOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	column, err := partyColumn(query.Actor().Role())
	if err != nil {
		return nil, err
	}

	sql := `SELECT` + summaryColumns + ` FROM orders o WHERE o.` + column + ` = ?`
	args := []any{query.Actor().ID().Value()}
	if status := query.Status(); status != nil {
		sql += ` AND o.status = ?`
		args = append(args, status.String())
	}
	sql += ` ORDER BY o.created_at DESC, o.id LIMIT ?`
	args = append(args, query.Limit())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, errs.NewStoreUnavailableError("list orders", err)
	}
	return collectSummaries(rows)
}

func partyColumn(role actor.Role) (string, error) {
	switch role {
	case actor.Vendor:
		return "vendor_id", nil
	case actor.Supplier:
		return "supplier_id", nil
	case actor.DeliveryPartner:
		return "delivery_partner_id", nil
	default:
		return "", errs.NewValueIsInvalidError("role")
	}
}

package queries

import (
	"context"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItemView struct {
	ID         kernel.UUID
	ProductID  kernel.UUID
	Quantity   int
	UnitPrice  kernel.Money
	TotalPrice kernel.Money
}

type OrderDetails struct {
	OrderSummary
	Items []OrderItemView
}

// GetOrderQueryHandler shows an order to its vendor, its supplier and its
// delivery partner. Any delivery partner may also see an order that is
// still claimable.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*OrderDetails, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	rows, err := db.Raw(`SELECT`+summaryColumns+` FROM orders o WHERE o.id = ?`, query.OrderID().Value()).Rows()
	if err != nil {
		return nil, errs.NewStoreUnavailableError("get order", err)
	}
	summaries, err := collectSummaries(rows)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	details := &OrderDetails{OrderSummary: summaries[0]}
	if !canView(details.OrderSummary, query.Viewer()) {
		return nil, errs.NewForbiddenError(query.Viewer().ID().String(), "order", details.ID.String(),
			"not a party to the order")
	}

	itemRows, err := db.Raw(`
		SELECT id, product_id, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Value()).Rows()
	if err != nil {
		return nil, errs.NewStoreUnavailableError("get order items", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			id, productID    uuid.UUID
			quantity         int
			unitPrice, total decimal.Decimal
		)
		if err := itemRows.Scan(&id, &productID, &quantity, &unitPrice, &total); err != nil {
			return nil, err
		}

		item := OrderItemView{Quantity: quantity}
		if item.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if item.ProductID, err = kernel.UUIDFromGoogle(productID); err != nil {
			return nil, err
		}
		if item.UnitPrice, err = kernel.NewMoney(unitPrice); err != nil {
			return nil, err
		}
		if item.TotalPrice, err = kernel.NewMoney(total); err != nil {
			return nil, err
		}
		details.Items = append(details.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

func canView(s OrderSummary, viewer actor.Actor) bool {
	switch viewer.Role() {
	case actor.Vendor:
		return s.VendorID.IsEqual(viewer.ID())
	case actor.Supplier:
		return s.SupplierID.IsEqual(viewer.ID())
	case actor.DeliveryPartner:
		if s.DeliveryPartnerID == nil {
			return s.Status == order.ReadyForPickup
		}
		return s.DeliveryPartnerID.IsEqual(viewer.ID())
	default:
		return false
	}
}

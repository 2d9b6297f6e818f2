// Package orderrepo maps order aggregates to the orders and order_items
// tables and implements the conditional updates the lifecycle relies on.
package orderrepo

import (
	"time"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. The composite index on (status,
// delivery_partner_id) serves the claimable list and the claim update.
type OrderDTO struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber       string          `gorm:"size:32;not null;uniqueIndex"`
	VendorID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryPartnerID *uuid.UUID      `gorm:"type:uuid;index:idx_orders_status_partner,priority:2"`
	Status            string          `gorm:"size:32;not null;index:idx_orders_status_partner,priority:1"`
	TotalAmount       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DeliveryAddress   string          `gorm:"type:text;not null"`
	DeliveryDate      *time.Time
	Notes             string         `gorm:"type:text"`
	CreatedAt         time.Time      `gorm:"not null;index"`
	UpdatedAt         time.Time      `gorm:"not null"`
	Items             []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order_items row. Position keeps the submitted order
// of the lines.
type OrderItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position   int             `gorm:"not null"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"not null;check:quantity > 0"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(o *order.Order) OrderDTO {
	var partnerID *uuid.UUID
	if id := o.DeliveryPartnerID(); id != nil {
		raw := id.Value()
		partnerID = &raw
	}

	dto := OrderDTO{
		ID:                o.ID().Value(),
		OrderNumber:       o.Number().String(),
		VendorID:          o.VendorID().Value(),
		SupplierID:        o.SupplierID().Value(),
		DeliveryPartnerID: partnerID,
		Status:            o.Status().String(),
		TotalAmount:       o.Total().Decimal(),
		DeliveryAddress:   o.DeliveryAddress(),
		DeliveryDate:      o.DeliveryDate(),
		Notes:             o.Notes(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	}

	for i, item := range o.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:         item.ID().Value(),
			OrderID:    dto.ID,
			Position:   i,
			ProductID:  item.ProductID().Value(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Decimal(),
			TotalPrice: item.TotalPrice().Decimal(),
		})
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	vendorID, err := kernel.UUIDFromGoogle(dto.VendorID)
	if err != nil {
		return nil, err
	}
	supplierID, err := kernel.UUIDFromGoogle(dto.SupplierID)
	if err != nil {
		return nil, err
	}

	var partnerID *kernel.UUID
	if dto.DeliveryPartnerID != nil {
		pID, partnerErr := kernel.UUIDFromGoogle(*dto.DeliveryPartnerID)
		if partnerErr != nil {
			return nil, partnerErr
		}
		partnerID = &pID
	}

	total, err := kernel.NewMoney(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]*order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:                id,
		Number:            order.Number(dto.OrderNumber),
		VendorID:          vendorID,
		SupplierID:        supplierID,
		DeliveryPartnerID: partnerID,
		Status:            order.Status(dto.Status),
		Total:             total,
		Delivery: order.Delivery{
			Address: dto.DeliveryAddress,
			Date:    dto.DeliveryDate,
			Notes:   dto.Notes,
		},
		Items:     items,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

func itemToDomain(dto OrderItemDTO) (*order.LineItem, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	productID, err := kernel.UUIDFromGoogle(dto.ProductID)
	if err != nil {
		return nil, err
	}
	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	totalPrice, err := kernel.NewMoney(dto.TotalPrice)
	if err != nil {
		return nil, err
	}
	return order.RestoreLineItem(id, productID, dto.Quantity, unitPrice, totalPrice)
}

package http

import (
	"time"

	"supplyhub/internal/core/application/usecases/queries"
	"supplyhub/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code          int    `json:"code"`
	Kind          string `json:"kind"`
	Message       string `json:"message"`
	CurrentStatus string `json:"current_status,omitempty"`
}

type NewOrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type NewOrder struct {
	SupplierID      string         `json:"supplierId"`
	Items           []NewOrderItem `json:"items"`
	DeliveryAddress string         `json:"deliveryAddress"`
	DeliveryDate    *time.Time     `json:"deliveryDate,omitempty"`
	Notes           string         `json:"notes,omitempty"`
}

type Transition struct {
	Status string `json:"status"`
}

type OrderItem struct {
	ID         string `json:"id"`
	ProductID  string `json:"productId"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unitPrice"`
	TotalPrice string `json:"totalPrice"`
}

type Order struct {
	ID                string      `json:"id"`
	OrderNumber       string      `json:"orderNumber"`
	VendorID          string      `json:"vendorId"`
	SupplierID        string      `json:"supplierId"`
	DeliveryPartnerID *string     `json:"deliveryPartnerId"`
	Status            string      `json:"status"`
	TotalAmount       string      `json:"totalAmount"`
	DeliveryAddress   string      `json:"deliveryAddress"`
	DeliveryDate      *time.Time  `json:"deliveryDate,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	Items             []OrderItem `json:"items,omitempty"`
}

type VendorStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	TotalSpent string           `json:"totalSpent"`
}

type Profile struct {
	Role      string `json:"role"`
	Completed bool   `json:"completed"`
}

func orderFromAggregate(o *order.Order) Order {
	out := Order{
		ID:              o.ID().String(),
		OrderNumber:     o.Number().String(),
		VendorID:        o.VendorID().String(),
		SupplierID:      o.SupplierID().String(),
		Status:          o.Status().String(),
		TotalAmount:     o.Total().String(),
		DeliveryAddress: o.DeliveryAddress(),
		DeliveryDate:    o.DeliveryDate(),
		Notes:           o.Notes(),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
	if p := o.DeliveryPartnerID(); p != nil {
		id := p.String()
		out.DeliveryPartnerID = &id
	}
	for _, item := range o.Items() {
		out.Items = append(out.Items, OrderItem{
			ID:         item.ID().String(),
			ProductID:  item.ProductID().String(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().String(),
			TotalPrice: item.TotalPrice().String(),
		})
	}
	return out
}

func orderFromSummary(s queries.OrderSummary) Order {
	out := Order{
		ID:              s.ID.String(),
		OrderNumber:     s.Number.String(),
		VendorID:        s.VendorID.String(),
		SupplierID:      s.SupplierID.String(),
		Status:          s.Status.String(),
		TotalAmount:     s.Total.String(),
		DeliveryAddress: s.DeliveryAddress,
		DeliveryDate:    s.DeliveryDate,
		Notes:           s.Notes,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	if s.DeliveryPartnerID != nil {
		id := s.DeliveryPartnerID.String()
		out.DeliveryPartnerID = &id
	}
	return out
}

func orderFromDetails(d *queries.OrderDetails) Order {
	out := orderFromSummary(d.OrderSummary)
	for _, item := range d.Items {
		out.Items = append(out.Items, OrderItem{
			ID:         item.ID.String(),
			ProductID:  item.ProductID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
			TotalPrice: item.TotalPrice.String(),
		})
	}
	return out
}

func ordersFromSummaries(in []queries.OrderSummary) []Order {
	out := make([]Order, 0, len(in))
	for _, s := range in {
		out = append(out, orderFromSummary(s))
	}
	return out
}

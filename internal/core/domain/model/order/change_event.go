package order

import (
	"time"

	"supplyhub/internal/core/domain/model/kernel"
)

// ChangeEvent announces a committed status change. The party ids let
// subscribers filter without reading the order back.
type ChangeEvent struct {
	OrderID           kernel.UUID  `json:"order_id"`
	PreviousStatus    Status       `json:"previous_status"`
	NewStatus         Status       `json:"new_status"`
	Timestamp         time.Time    `json:"timestamp"`
	VendorID          kernel.UUID  `json:"vendor_id"`
	SupplierID        kernel.UUID  `json:"supplier_id"`
	DeliveryPartnerID *kernel.UUID `json:"delivery_partner_id,omitempty"`
}

// NewChangeEvent describes the move of o from previous to its current status.
func NewChangeEvent(o *Order, previous Status) ChangeEvent {
	return ChangeEvent{
		OrderID:           o.ID(),
		PreviousStatus:    previous,
		NewStatus:         o.Status(),
		Timestamp:         o.UpdatedAt(),
		VendorID:          o.VendorID(),
		SupplierID:        o.SupplierID(),
		DeliveryPartnerID: o.DeliveryPartnerID(),
	}
}

// Involves reports whether id is one of the order's parties.
func (e ChangeEvent) Involves(id kernel.UUID) bool {
	if e.VendorID.IsEqual(id) || e.SupplierID.IsEqual(id) {
		return true
	}
	return e.DeliveryPartnerID != nil && e.DeliveryPartnerID.IsEqual(id)
}

// AffectsClaimable reports whether the change adds or removes an order from
// the claimable list.
func (e ChangeEvent) AffectsClaimable() bool {
	return e.NewStatus == ReadyForPickup || e.PreviousStatus == ReadyForPickup
}

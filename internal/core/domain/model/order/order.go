package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	ErrItemsAreRequired      = errs.NewValueIsRequiredError("items")
	ErrSameVendorAndSupplier = errs.NewValueIsInvalidErrorWithCause(
		"supplierId", errors.New("vendor and supplier must be different profiles"))
)

// Order is the aggregate root of the purchase order lifecycle. It is created
// pending by NewOrder, and from then on only its status, delivery partner and
// updated timestamp change.
type Order struct {
	id                kernel.UUID
	number            Number
	vendorID          kernel.UUID
	supplierID        kernel.UUID
	deliveryPartnerID *kernel.UUID
	status            Status
	total             kernel.Money
	deliveryAddress   string
	deliveryDate      *time.Time
	notes             string
	items             []*LineItem
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// Delivery holds where and when the order should arrive.
type Delivery struct {
	Address string
	Date    *time.Time
	Notes   string
}

// NewOrder builds a pending order and computes its total from the items.
func NewOrder(
	id kernel.UUID,
	number Number,
	vendorID, supplierID kernel.UUID,
	items []*LineItem,
	delivery Delivery,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setParties(vendorID, supplierID),
		o.setItems(items),
		o.setDelivery(delivery),
	); err != nil {
		return nil, err
	}

	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.TotalPrice())
	}
	if err := total.ValidateStorable("totalAmount"); err != nil {
		return nil, err
	}
	o.total = total

	return o, nil
}

// RestoreParams carries a persisted order back into the domain.
type RestoreParams struct {
	ID                kernel.UUID
	Number            Number
	VendorID          kernel.UUID
	SupplierID        kernel.UUID
	DeliveryPartnerID *kernel.UUID
	Status            Status
	Total             kernel.Money
	Delivery          Delivery
	Items             []*LineItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreOrder rebuilds an order read from storage. Items may be empty when
// the caller did not load them; the stored total is not re-validated
// against them.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		deliveryPartnerID: p.DeliveryPartnerID,
		status:            p.Status,
		total:             p.Total,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setNumber(p.Number),
		o.setParties(p.VendorID, p.SupplierID),
		o.setDelivery(p.Delivery),
		p.Status.Validate(),
		p.Status.ValidateCanHavePartner(p.DeliveryPartnerID != nil),
		p.Total.Validate(),
	); err != nil {
		return nil, err
	}

	for _, item := range p.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	o.items = append([]*LineItem(nil), p.Items...)

	return o, nil
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() Number {
	return o.number
}

func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

func (o *Order) SupplierID() kernel.UUID {
	return o.supplierID
}

func (o *Order) DeliveryPartnerID() *kernel.UUID {
	return o.deliveryPartnerID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

func (o *Order) DeliveryDate() *time.Time {
	return o.deliveryDate
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Order) Items() []*LineItem {
	return append([]*LineItem(nil), o.items...)
}

func (o *Order) HasDeliveryPartner() bool {
	return o.deliveryPartnerID != nil
}

// IsBoundTo reports whether partnerID is the delivery partner of the order.
func (o *Order) IsBoundTo(partnerID kernel.UUID) bool {
	return o.deliveryPartnerID != nil && o.deliveryPartnerID.IsEqual(partnerID)
}

// IsPartyTo reports whether a is the vendor, the supplier or the bound
// delivery partner of the order.
func (o *Order) IsPartyTo(a actor.Actor) bool {
	switch a.Role() {
	case actor.Vendor:
		return o.vendorID.IsEqual(a.ID())
	case actor.Supplier:
		return o.supplierID.IsEqual(a.ID())
	case actor.DeliveryPartner:
		return o.IsBoundTo(a.ID())
	default:
		return false
	}
}

// MoveTo sets the status without checking who asks; callers go through the
// state machine first.
func (o *Order) MoveTo(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := target.ValidateCanHavePartner(o.deliveryPartnerID != nil); err != nil {
		return err
	}
	o.status = target
	o.updatedAt = now.UTC()
	return nil
}

// AssignDeliveryPartner binds partnerID and moves the order out for delivery.
// Only an unclaimed order that is ready for pickup can be assigned.
func (o *Order) AssignDeliveryPartner(partnerID kernel.UUID, now time.Time) error {
	if err := partnerID.Validate(); err != nil {
		return err
	}
	if o.status != ReadyForPickup || o.deliveryPartnerID != nil {
		return errs.NewClaimConflictError(o.id.String(), o.status.String())
	}
	o.deliveryPartnerID = &partnerID
	o.status = OutForDelivery
	o.updatedAt = now.UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(n Number) error {
	if err := n.Validate(); err != nil {
		return err
	}
	o.number = n
	return nil
}

func (o *Order) setParties(vendorID, supplierID kernel.UUID) error {
	var problems []error
	if err := vendorID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("vendorId", err))
	}
	if err := supplierID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("supplierId", err))
	}
	if len(problems) == 0 && vendorID.IsEqual(supplierID) {
		problems = append(problems, ErrSameVendorAndSupplier)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.vendorID = vendorID
	o.supplierID = supplierID
	return nil
}

func (o *Order) setItems(items []*LineItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = append([]*LineItem(nil), items...)
	return nil
}

func (o *Order) setDelivery(d Delivery) error {
	address := strings.TrimSpace(d.Address)
	if address == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	o.deliveryAddress = address
	if d.Date != nil {
		date := d.Date.UTC()
		o.deliveryDate = &date
	}
	o.notes = strings.TrimSpace(d.Notes)
	return nil
}

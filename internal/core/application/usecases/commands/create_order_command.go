package commands

import (
	"errors"
	"fmt"
	"strings"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/guard"
)

const maxIdempotencyKeyLength = 128

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// CreateOrderItem is one requested product line.
type CreateOrderItem struct {
	ProductID kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
}

// CreateOrderCommand places a purchase order from a vendor with a supplier.
//
//	cmd, err := NewCreateOrderCommand(vendorID, supplierID, []CreateOrderItem{
//	    {ProductID: p1, Quantity: 2, UnitPrice: ten},
//	    {ProductID: p2, Quantity: 1, UnitPrice: five},
//	}, order.Delivery{Address: "12 Market St"}, "")
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	vendorID       kernel.UUID
	supplierID     kernel.UUID
	items          []CreateOrderItem
	delivery       order.Delivery
	idempotencyKey string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. Whether the vendor and
// supplier profiles exist is checked by the handler.
func NewCreateOrderCommand(
	vendorID, supplierID kernel.UUID,
	items []CreateOrderItem,
	delivery order.Delivery,
	idempotencyKey string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		delivery: delivery,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVendorID(vendorID),
		cmd.setSupplierID(supplierID),
		cmd.setItems(items),
		cmd.setDeliveryAddress(delivery.Address),
		cmd.setIdempotencyKey(idempotencyKey),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) VendorID() kernel.UUID {
	return c.vendorID
}

func (c CreateOrderCommand) SupplierID() kernel.UUID {
	return c.supplierID
}

func (c CreateOrderCommand) Items() []CreateOrderItem {
	return append([]CreateOrderItem(nil), c.items...)
}

func (c CreateOrderCommand) Delivery() order.Delivery {
	return c.delivery
}

// IdempotencyKey is empty when the caller did not send one.
func (c CreateOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *CreateOrderCommand) setVendorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("vendorId", err)
	}
	c.vendorID = id
	return nil
}

func (c *CreateOrderCommand) setSupplierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("supplierId", err)
	}
	c.supplierID = id
	return nil
}

func (c *CreateOrderCommand) setItems(items []CreateOrderItem) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	var problems []error
	for i, item := range items {
		if item.Quantity < 1 {
			problems = append(problems, errs.NewValueIsOutOfRangeError(fmt.Sprintf("items[%d].quantity", i), item.Quantity, 1, "inf"))
		}
		if err := item.UnitPrice.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].unitPrice", i), err))
		}
		if err := item.ProductID.Validate(); err != nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("items[%d].productId", i), err))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	c.items = append([]CreateOrderItem(nil), items...)
	return nil
}

func (c *CreateOrderCommand) setDeliveryAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("deliveryAddress")
	}
	return nil
}

func (c *CreateOrderCommand) setIdempotencyKey(key string) error {
	if len(key) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotencyKey", len(key), 1, maxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}

package order

import (
	"errors"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")

// LineItem is a product line captured when the order is placed. Its total is
// fixed at that moment and never recomputed.
type LineItem struct {
	id         kernel.UUID
	productID  kernel.UUID
	quantity   int
	unitPrice  kernel.Money
	totalPrice kernel.Money
	guard      guard.ConstructorGuard
}

func NewLineItem(productID kernel.UUID, quantity int, unitPrice kernel.Money) (*LineItem, error) {
	item := &LineItem{
		id:    kernel.NewUUID(),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}

	item.totalPrice = unitPrice.Times(quantity)
	if err := item.totalPrice.ValidateStorable("totalPrice"); err != nil {
		return nil, err
	}
	return item, nil
}

// RestoreLineItem rebuilds a persisted line item. The stored total is taken
// as is.
func RestoreLineItem(
	id, productID kernel.UUID,
	quantity int,
	unitPrice, totalPrice kernel.Money,
) (*LineItem, error) {
	item := &LineItem{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		id.Validate(),
		item.setProductID(productID),
		item.setQuantity(quantity),
		item.setUnitPrice(unitPrice),
		totalPrice.Validate(),
	); err != nil {
		return nil, err
	}

	item.id = id
	item.totalPrice = totalPrice
	return item, nil
}

func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

func (li *LineItem) ID() kernel.UUID {
	return li.id
}

func (li *LineItem) ProductID() kernel.UUID {
	return li.productID
}

func (li *LineItem) Quantity() int {
	return li.quantity
}

func (li *LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

func (li *LineItem) TotalPrice() kernel.Money {
	return li.totalPrice
}

func (li *LineItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("productId", err)
	}
	li.productID = id
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "inf")
	}
	li.quantity = quantity
	return nil
}

func (li *LineItem) setUnitPrice(price kernel.Money) error {
	if err := price.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("unitPrice", err)
	}
	if err := price.ValidateStorable("unitPrice"); err != nil {
		return err
	}
	li.unitPrice = price
	return nil
}

package commands

import (
	"errors"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand is a delivery partner's attempt to take a ready order.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	partner actor.Actor

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand accepts any constructed actor; the handler rejects
// actors that are not delivery partners as Forbidden.
func NewClaimOrderCommand(orderID kernel.UUID, partner actor.Actor) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setPartner(partner),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ClaimOrderCommand) Partner() actor.Actor {
	return c.partner
}

func (c *ClaimOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ClaimOrderCommand) setPartner(a actor.Actor) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.partner = a
	return nil
}

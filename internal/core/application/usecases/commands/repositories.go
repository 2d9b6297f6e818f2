// Package commands contains the operations that change order state: order
// creation, status transitions, delivery claims and administrative cleanup.
// Each command is built by a validating constructor and executed by its
// handler.
package commands

import (
	"context"

	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository bound to the unit of work.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OrderUoW groups order writes into one transaction.
	//
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.OrderRepository().Add(ctx, o)
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates a new unit of work per command.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderNumberSource hands out candidate order numbers.
	OrderNumberSource interface {
		Next() order.Number
	}
)

package commands

import (
	"context"
	"time"

	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"
)

// PurgeTerminalOrdersCommandHandler is the administrative cleanup. Active
// orders are never touched.
type PurgeTerminalOrdersCommandHandler struct {
	orders ports.OrderRepository
	now    func() time.Time
}

func NewPurgeTerminalOrdersCommandHandler(orders ports.OrderRepository) PurgeTerminalOrdersCommandHandler {
	return PurgeTerminalOrdersCommandHandler{orders: orders, now: time.Now}
}

// Handle returns the number of orders removed.
func (h PurgeTerminalOrdersCommandHandler) Handle(ctx context.Context, cmd PurgeTerminalOrdersCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	n, err := h.orders.DeleteTerminalBefore(ctx, h.now().Add(-cmd.Retention()))
	if err != nil {
		return 0, errs.WrapStore("purge terminal orders", err)
	}
	return n, nil
}

package commands

import (
	"errors"
	"time"

	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/guard"
)

var ErrPurgeTerminalOrdersCommandIsNotConstructed = errors.New(
	"PurgeTerminalOrdersCommand must be created via NewPurgeTerminalOrdersCommand constructor",
)

// PurgeTerminalOrdersCommand removes delivered and cancelled orders that have
// not changed for longer than the retention period.
type PurgeTerminalOrdersCommand struct {
	retention time.Duration
	guard     guard.ConstructorGuard
}

func NewPurgeTerminalOrdersCommand(retention time.Duration) (PurgeTerminalOrdersCommand, error) {
	if retention <= 0 {
		return PurgeTerminalOrdersCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, "1ns", "inf")
	}
	return PurgeTerminalOrdersCommand{retention: retention, guard: guard.NewConstructorGuard()}, nil
}

func (c PurgeTerminalOrdersCommand) Validate() error {
	return c.guard.Validate(ErrPurgeTerminalOrdersCommandIsNotConstructed)
}

func (c PurgeTerminalOrdersCommand) Retention() time.Duration {
	return c.retention
}

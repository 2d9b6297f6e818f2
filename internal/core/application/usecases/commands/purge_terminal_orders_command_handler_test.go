package commands_test

import (
	"errors"
	"testing"
	"time"

	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewPurgeTerminalOrdersCommand(t *testing.T) {
	_, err := commands.NewPurgeTerminalOrdersCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewPurgeTerminalOrdersCommand(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, cmd.Retention())
}

func TestPurgeTerminalOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPurgeTerminalOrdersCommand(30 * 24 * time.Hour)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	before := time.Now().Add(-cmd.Retention())
	repo.On("DeleteTerminalBefore", ctx, mock.MatchedBy(func(cutoff time.Time) bool {
		return !cutoff.Before(before) && cutoff.Before(time.Now().Add(-cmd.Retention()+time.Minute))
	})).Return(int64(4), nil).Once()

	n, err := commands.NewPurgeTerminalOrdersCommandHandler(repo).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	repo.AssertExpectations(t)
}

func TestPurgeTerminalOrdersCommandHandler_Handle_StoreError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPurgeTerminalOrdersCommand(time.Hour)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	repo.On("DeleteTerminalBefore", ctx, mock.Anything).Return(int64(0), errors.New("deadlock detected")).Once()

	_, err = commands.NewPurgeTerminalOrdersCommandHandler(repo).Handle(ctx, cmd)

	assert.Equal(t, errs.KindStoreUnavailable, errs.KindOf(err))
}

func TestPurgeTerminalOrdersCommandHandler_KeepsActiveOrders(t *testing.T) {
	vendor, supplier := newActor(t, actor.Vendor), newActor(t, actor.Supplier)
	cancelled := restored(t, vendor, supplier, nil, order.Cancelled)
	pending := restored(t, vendor, supplier, nil, order.Pending)
	store := newMemoryOrders(cancelled, pending)
	cmd, err := commands.NewPurgeTerminalOrdersCommand(time.Minute)
	require.NoError(t, err)

	n, err := commands.NewPurgeTerminalOrdersCommandHandler(store).Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	_, err = store.Get(t.Context(), pending.ID())
	require.NoError(t, err)
	_, err = store.Get(t.Context(), cancelled.ID())
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

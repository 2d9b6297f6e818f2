package commands_test

import (
	"errors"
	"fmt"
	"testing"

	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"
	"supplyhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type createFixture struct {
	cmd       commands.CreateOrderCommand
	repo      *MockOrderRepository
	uow       *MockOrderUoW
	factory   *MockOrderUoWFactory
	directory *MockActorDirectory
	numbers   *fixedNumbers
}

func newCreateFixture(t *testing.T, idempotencyKey string) createFixture {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), validItems(t),
		order.Delivery{Address: "12 Market St"}, idempotencyKey)
	require.NoError(t, err)

	directory := new(MockActorDirectory)
	directory.On("Exists", mock.Anything, actor.Vendor, cmd.VendorID()).Return(true, nil).Maybe()
	directory.On("Exists", mock.Anything, actor.Supplier, cmd.SupplierID()).Return(true, nil).Maybe()

	return createFixture{
		cmd:       cmd,
		repo:      new(MockOrderRepository),
		uow:       new(MockOrderUoW),
		factory:   new(MockOrderUoWFactory),
		directory: directory,
		numbers:   &fixedNumbers{numbers: []order.Number{"ORD-1700000000000-1", "ORD-1700000000000-2"}},
	}
}

func (f createFixture) handler(store ports.IdempotencyStore) commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(f.factory, f.directory, f.numbers, store, nil)
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture(t, "")

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	o, err := f.handler(nil).Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, "25.00", o.Total().String())
	assert.Equal(t, order.Number("ORD-1700000000000-1"), o.Number())
	assert.Len(t, o.Items(), 2)
	f.repo.AssertExpectations(t)
	f.uow.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	f := newCreateFixture(t, "")

	_, err := f.handler(nil).Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
}

func TestCreateOrderCommandHandler_Handle_UnknownSupplier(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), validItems(t),
		order.Delivery{Address: "x"}, "")
	require.NoError(t, err)

	directory := new(MockActorDirectory)
	directory.On("Exists", ctx, actor.Vendor, cmd.VendorID()).Return(true, nil).Once()
	directory.On("Exists", ctx, actor.Supplier, cmd.SupplierID()).Return(false, nil).Once()
	factory := new(MockOrderUoWFactory)

	h := commands.NewCreateOrderCommandHandler(factory, directory, &fixedNumbers{numbers: []order.Number{"ORD-1-1"}}, nil, nil)
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	assert.Contains(t, err.Error(), "supplierId")
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_SameVendorAndSupplier(t *testing.T) {
	same := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(same, same, validItems(t), order.Delivery{Address: "x"}, "")
	require.NoError(t, err)

	h := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), new(MockActorDirectory), &fixedNumbers{numbers: []order.Number{"ORD-1-1"}}, nil, nil)
	_, err = h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, order.ErrSameVendorAndSupplier)
}

func TestCreateOrderCommandHandler_Handle_DirectoryUnavailable(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), validItems(t),
		order.Delivery{Address: "x"}, "")
	require.NoError(t, err)

	directory := new(MockActorDirectory)
	directory.On("Exists", ctx, actor.Vendor, cmd.VendorID()).Return(false, errors.New("dial tcp: refused")).Once()

	h := commands.NewCreateOrderCommandHandler(new(MockOrderUoWFactory), directory, &fixedNumbers{numbers: []order.Number{"ORD-1-1"}}, nil, nil)
	_, err = h.Handle(ctx, cmd)

	assert.Equal(t, errs.KindStoreUnavailable, errs.KindOf(err))
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture(t, "")

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	_, err := f.handler(nil).Handle(ctx, f.cmd)

	require.Error(t, err)
	assert.Equal(t, errs.KindStoreUnavailable, errs.KindOf(err))
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_ItemWriteFails(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture(t, "")

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Return(errors.New("insert order_items: check constraint")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	o, err := f.handler(nil).Handle(ctx, f.cmd)

	require.Nil(t, o)
	require.ErrorIs(t, err, errs.ErrOrderCreation)
	assert.Equal(t, errs.KindOrderCreationFailed, errs.KindOf(err))
	assert.Contains(t, err.Error(), "order_items")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	f.uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture(t, "")

	mock.InOrder(
		f.factory.On("Create").Return(f.uow).Once(),
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.uow.On("OrderRepository").Return(f.repo).Once(),
		f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	_, err := f.handler(nil).Handle(ctx, f.cmd)

	assert.Equal(t, errs.KindOrderCreationFailed, errs.KindOf(err))
	f.uow.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_RetriesDuplicateNumber(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture(t, "")

	var numbers []order.Number
	f.factory.On("Create").Return(f.uow).Twice()
	f.uow.On("Begin", ctx).Return(nil).Twice()
	f.uow.On("OrderRepository").Return(f.repo).Twice()
	f.uow.On("Rollback", ctx).Return(nil).Twice()
	f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(*order.Order).Number())
		}).
		Return(fmt.Errorf("insert order: %w", ports.ErrDuplicateOrderNumber)).Once()
	f.repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).
		Run(func(args mock.Arguments) {
			numbers = append(numbers, args.Get(1).(*order.Order).Number())
		}).
		Return(nil).Once()
	f.uow.On("Commit", ctx).Return(nil).Once()

	o, err := f.handler(nil).Handle(ctx, f.cmd)

	require.NoError(t, err)
	assert.Equal(t, []order.Number{"ORD-1700000000000-1", "ORD-1700000000000-2"}, numbers)
	assert.Equal(t, order.Number("ORD-1700000000000-2"), o.Number())
}

func TestCreateOrderCommandHandler_Handle_GivesUpAfterRepeatedDuplicates(t *testing.T) {
	ctx := t.Context()
	f := newCreateFixture(t, "")

	f.factory.On("Create").Return(f.uow)
	f.uow.On("Begin", ctx).Return(nil)
	f.uow.On("OrderRepository").Return(f.repo)
	f.uow.On("Rollback", ctx).Return(nil)
	f.repo.On("Add", ctx, mock.Anything).Return(ports.ErrDuplicateOrderNumber).Times(3)

	_, err := f.handler(nil).Handle(ctx, f.cmd)

	require.ErrorIs(t, err, errs.ErrOrderCreation)
	f.repo.AssertNumberOfCalls(t, "Add", 3)
}

func TestCreateOrderCommandHandler_Handle_IdempotencyKey(t *testing.T) {
	t.Run("completed key returns the existing order", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateFixture(t, "key-1")
		existing := restored(t, newActor(t, actor.Vendor), newActor(t, actor.Supplier), nil, order.Pending)

		store := new(MockIdempotencyStore)
		store.On("Reserve", ctx, scoped(f, "key-1")).Return(ports.IdempotencyCompleted, existing.ID(), nil).Once()
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("OrderRepository").Return(f.repo).Once()
		f.repo.On("Get", ctx, existing.ID()).Return(existing, nil).Once()

		o, err := f.handler(store).Handle(ctx, f.cmd)

		require.NoError(t, err)
		assert.Same(t, existing, o)
		f.repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("in-flight key is rejected", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateFixture(t, "key-2")

		store := new(MockIdempotencyStore)
		store.On("Reserve", ctx, scoped(f, "key-2")).Return(ports.IdempotencyInFlight, kernel.UUID{}, nil).Once()

		_, err := f.handler(store).Handle(ctx, f.cmd)

		require.ErrorIs(t, err, commands.ErrRequestInFlight)
		f.factory.AssertNotCalled(t, "Create")
	})

	t.Run("new key is completed with the created order", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateFixture(t, "key-3")

		store := new(MockIdempotencyStore)
		store.On("Reserve", ctx, scoped(f, "key-3")).Return(ports.IdempotencyReserved, kernel.UUID{}, nil).Once()
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo).Once()
		f.repo.On("Add", ctx, mock.Anything).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		store.On("Complete", mock.Anything, scoped(f, "key-3"), mock.AnythingOfType("kernel.UUID")).Return(nil).Once()

		o, err := f.handler(store).Handle(ctx, f.cmd)

		require.NoError(t, err)
		store.AssertCalled(t, "Complete", mock.Anything, scoped(f, "key-3"), o.ID())
	})

	t.Run("failed creation releases the key", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateFixture(t, "key-4")

		store := new(MockIdempotencyStore)
		store.On("Reserve", ctx, scoped(f, "key-4")).Return(ports.IdempotencyReserved, kernel.UUID{}, nil).Once()
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", ctx).Return(errors.New("pool exhausted")).Once()
		store.On("Release", mock.Anything, scoped(f, "key-4")).Return(nil).Once()

		_, err := f.handler(store).Handle(ctx, f.cmd)

		require.Error(t, err)
		store.AssertExpectations(t)
	})

	t.Run("failed completion is logged and the order still returned", func(t *testing.T) {
		ctx := t.Context()
		f := newCreateFixture(t, "key-5")
		core, logs := observer.New(zapcore.WarnLevel)

		store := new(MockIdempotencyStore)
		store.On("Reserve", ctx, scoped(f, "key-5")).Return(ports.IdempotencyReserved, kernel.UUID{}, nil).Once()
		f.factory.On("Create").Return(f.uow).Once()
		f.uow.On("Begin", ctx).Return(nil).Once()
		f.uow.On("OrderRepository").Return(f.repo).Once()
		f.repo.On("Add", ctx, mock.Anything).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()
		f.uow.On("Rollback", ctx).Return(nil).Once()
		store.On("Complete", mock.Anything, scoped(f, "key-5"), mock.AnythingOfType("kernel.UUID")).
			Return(errors.New("redis: connection refused")).Once()

		h := commands.NewCreateOrderCommandHandler(f.factory, f.directory, f.numbers, store, zap.New(core))
		o, err := h.Handle(ctx, f.cmd)

		require.NoError(t, err)
		require.NotNil(t, o)
		entries := logs.FilterMessage("complete idempotency key").All()
		require.Len(t, entries, 1)
		assert.Equal(t, o.ID().String(), entries[0].ContextMap()["order_id"])
	})
}

func scoped(f createFixture, key string) string {
	return f.cmd.VendorID().String() + ":" + key
}

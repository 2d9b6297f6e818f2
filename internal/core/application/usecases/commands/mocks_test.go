package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, o *order.Order, expected order.Status) (bool, error) {
	args := m.Called(ctx, o, expected)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Claim(ctx context.Context, id, partnerID kernel.UUID, at time.Time) (*order.Order, error) {
	args := m.Called(ctx, id, partnerID, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockActorDirectory struct{ mock.Mock }

func (m *MockActorDirectory) Exists(ctx context.Context, role actor.Role, id kernel.UUID) (bool, error) {
	args := m.Called(ctx, role, id)
	return args.Bool(0), args.Error(1)
}

type MockIdempotencyStore struct{ mock.Mock }

func (m *MockIdempotencyStore) Reserve(ctx context.Context, key string) (ports.IdempotencyState, kernel.UUID, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ports.IdempotencyState), args.Get(1).(kernel.UUID), args.Error(2)
}

func (m *MockIdempotencyStore) Complete(ctx context.Context, key string, orderID kernel.UUID) error {
	args := m.Called(ctx, key, orderID)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// recordingPublisher collects published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []order.ChangeEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev order.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) Events() []order.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.ChangeEvent(nil), p.events...)
}

// fixedNumbers returns the given numbers in order, repeating the last one.
type fixedNumbers struct {
	mu      sync.Mutex
	numbers []order.Number
}

func (f *fixedNumbers) Next() order.Number {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := f.numbers[0]
	if len(f.numbers) > 1 {
		f.numbers = f.numbers[1:]
	}
	return n
}

func newActor(t *testing.T, role actor.Role) actor.Actor {
	t.Helper()
	a, err := actor.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

// restored builds an order of vendor and supplier at status, bound to
// partner when the status needs one.
func restored(t *testing.T, vendor, supplier actor.Actor, partner *actor.Actor, status order.Status) *order.Order {
	t.Helper()
	var partnerID *kernel.UUID
	if partner != nil {
		id := partner.ID()
		partnerID = &id
	}
	o, err := order.RestoreOrder(order.RestoreParams{
		ID:                kernel.NewUUID(),
		Number:            "ORD-1700000000000-1",
		VendorID:          vendor.ID(),
		SupplierID:        supplier.ID(),
		DeliveryPartnerID: partnerID,
		Status:            status,
		Total:             money(t, "25"),
		Delivery:          order.Delivery{Address: "12 Market St"},
		CreatedAt:         time.Now().Add(-time.Hour),
		UpdatedAt:         time.Now().Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}

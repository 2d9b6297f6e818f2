package commands_test

import (
	"context"
	"sync"
	"time"

	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"
)

// memoryOrders is an in-memory order store with the same conditional update
// semantics as the postgres repository. Every read returns a copy.
type memoryOrders struct {
	mu     sync.Mutex
	orders map[kernel.UUID]*order.Order
}

func newMemoryOrders(orders ...*order.Order) *memoryOrders {
	m := &memoryOrders{orders: make(map[kernel.UUID]*order.Order)}
	for _, o := range orders {
		m.orders[o.ID()] = clone(o)
	}
	return m
}

func clone(o *order.Order) *order.Order {
	var partnerID *kernel.UUID
	if id := o.DeliveryPartnerID(); id != nil {
		copied := *id
		partnerID = &copied
	}
	c, err := order.RestoreOrder(order.RestoreParams{
		ID:                o.ID(),
		Number:            o.Number(),
		VendorID:          o.VendorID(),
		SupplierID:        o.SupplierID(),
		DeliveryPartnerID: partnerID,
		Status:            o.Status(),
		Total:             o.Total(),
		Delivery:          order.Delivery{Address: o.DeliveryAddress(), Date: o.DeliveryDate(), Notes: o.Notes()},
		Items:             o.Items(),
		CreatedAt:         o.CreatedAt(),
		UpdatedAt:         o.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return c
}

func (m *memoryOrders) Add(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[o.ID()] = clone(o)
	return nil
}

func (m *memoryOrders) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id.String())
	}
	return clone(o), nil
}

func (m *memoryOrders) UpdateStatus(_ context.Context, o *order.Order, expected order.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[o.ID()]
	if !ok || stored.Status() != expected {
		return false, nil
	}
	m.orders[o.ID()] = clone(o)
	return true, nil
}

func (m *memoryOrders) Claim(_ context.Context, id, partnerID kernel.UUID, at time.Time) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.orders[id]
	if !ok || stored.Status() != order.ReadyForPickup || stored.HasDeliveryPartner() {
		return nil, nil
	}
	if err := stored.AssignDeliveryPartner(partnerID, at); err != nil {
		return nil, err
	}
	return clone(stored), nil
}

func (m *memoryOrders) DeleteTerminalBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, o := range m.orders {
		if o.Status().IsTerminal() && o.UpdatedAt().Before(cutoff) {
			delete(m.orders, id)
			n++
		}
	}
	return n, nil
}

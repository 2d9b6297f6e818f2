package order_test

import (
	"testing"
	"time"

	"supplyhub/internal/core/domain/model/actor"
	"supplyhub/internal/core/domain/model/kernel"
	"supplyhub/internal/core/domain/model/order"
	"supplyhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func money(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func item(t *testing.T, quantity int, price string) *order.LineItem {
	t.Helper()
	li, err := order.NewLineItem(kernel.NewUUID(), quantity, money(t, price))
	require.NoError(t, err)
	return li
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		order.Number("ORD-1772359200000-7"),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]*order.LineItem{item(t, 2, "10"), item(t, 1, "5")},
		order.Delivery{Address: "  12 Market St  ", Notes: "back door"},
		fixedNow,
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total and starts pending", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "25.00", o.Total().String())
		assert.Equal(t, "12 Market St", o.DeliveryAddress())
		assert.Equal(t, "back door", o.Notes())
		assert.Nil(t, o.DeliveryPartnerID())
		assert.Nil(t, o.DeliveryDate())
		assert.Len(t, o.Items(), 2)
		assert.Equal(t, fixedNow, o.CreatedAt())
		assert.Equal(t, fixedNow, o.UpdatedAt())
	})

	t.Run("rejects empty items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1-1", kernel.NewUUID(), kernel.NewUUID(),
			nil, order.Delivery{Address: "x"}, fixedNow)

		require.ErrorIs(t, err, order.ErrItemsAreRequired)
		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
	})

	t.Run("rejects same vendor and supplier", func(t *testing.T) {
		same := kernel.NewUUID()

		_, err := order.NewOrder(kernel.NewUUID(), "ORD-1-1", same, same,
			[]*order.LineItem{item(t, 1, "1")}, order.Delivery{Address: "x"}, fixedNow)

		require.ErrorIs(t, err, order.ErrSameVendorAndSupplier)
	})

	t.Run("joins every validation error", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "bad", kernel.UUID{}, kernel.NewUUID(),
			nil, order.Delivery{Address: "   "}, fixedNow)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "orderNumber")
		assert.Contains(t, err.Error(), "vendorId")
		assert.Contains(t, err.Error(), "items")
		assert.Contains(t, err.Error(), "deliveryAddress")
	})

	t.Run("keeps the delivery date in UTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+3", 3*60*60)
		date := time.Date(2026, 3, 5, 9, 0, 0, 0, loc)

		o, err := order.NewOrder(kernel.NewUUID(), "ORD-1-1", kernel.NewUUID(), kernel.NewUUID(),
			[]*order.LineItem{item(t, 1, "1")}, order.Delivery{Address: "x", Date: &date}, fixedNow)

		require.NoError(t, err)
		require.NotNil(t, o.DeliveryDate())
		assert.Equal(t, time.UTC, o.DeliveryDate().Location())
		assert.True(t, o.DeliveryDate().Equal(date))
	})
}

func TestNewLineItem(t *testing.T) {
	t.Run("captures total at order time", func(t *testing.T) {
		li := item(t, 3, "2.50")
		assert.Equal(t, "7.50", li.TotalPrice().String())
	})

	t.Run("zero unit price is allowed", func(t *testing.T) {
		li := item(t, 4, "0")
		assert.Equal(t, "0.00", li.TotalPrice().String())
	})

	t.Run("quantity below one is rejected", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), 0, money(t, "1"))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("unconstructed price is rejected", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), 1, kernel.Money{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("line total beyond the stored range is rejected", func(t *testing.T) {
		_, err := order.NewLineItem(kernel.NewUUID(), 10000, money(t, "100000000.00"))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "totalPrice")
	})
}

func TestNewOrder_TotalMatchesStoredItems(t *testing.T) {
	items := []*order.LineItem{item(t, 3, "0.33"), item(t, 7, "1.01"), item(t, 1, "0.01")}

	o, err := order.NewOrder(kernel.NewUUID(), order.Number("ORD-1772359200000-8"),
		kernel.NewUUID(), kernel.NewUUID(), items, order.Delivery{Address: "1 Pier"}, fixedNow)
	require.NoError(t, err)

	sum := kernel.ZeroMoney()
	for _, li := range o.Items() {
		// Every amount already fits numeric(14,2), so rounding by the store is a no-op.
		assert.True(t, li.TotalPrice().Decimal().Equal(li.TotalPrice().Decimal().Round(kernel.MoneyScale)))
		sum = sum.Add(li.TotalPrice())
	}
	assert.True(t, o.Total().Decimal().Equal(o.Total().Decimal().Round(kernel.MoneyScale)))
	assert.True(t, o.Total().IsEqual(sum))
	assert.Equal(t, "8.07", o.Total().String())
}

func TestNewOrder_RejectsTotalBeyondStoredRange(t *testing.T) {
	items := []*order.LineItem{item(t, 1, "600000000000.00"), item(t, 1, "500000000000.00")}

	_, err := order.NewOrder(kernel.NewUUID(), order.Number("ORD-1772359200000-9"),
		kernel.NewUUID(), kernel.NewUUID(), items, order.Delivery{Address: "1 Pier"}, fixedNow)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestOrder_AssignDeliveryPartner(t *testing.T) {
	o := newPendingOrder(t)
	partner := kernel.NewUUID()

	err := o.AssignDeliveryPartner(partner, fixedNow)
	require.ErrorIs(t, err, errs.ErrClaimConflict)

	require.NoError(t, o.MoveTo(order.Confirmed, fixedNow))
	require.NoError(t, o.MoveTo(order.ReadyForPickup, fixedNow))

	later := fixedNow.Add(time.Minute)
	require.NoError(t, o.AssignDeliveryPartner(partner, later))
	assert.Equal(t, order.OutForDelivery, o.Status())
	assert.True(t, o.IsBoundTo(partner))
	assert.Equal(t, later, o.UpdatedAt())

	err = o.AssignDeliveryPartner(kernel.NewUUID(), later)
	require.ErrorIs(t, err, errs.ErrClaimConflict)
}

func TestOrder_MoveToRequiresPartnerConsistency(t *testing.T) {
	o := newPendingOrder(t)

	err := o.MoveTo(order.Delivered, fixedNow)

	require.Error(t, err)
	assert.Equal(t, order.Pending, o.Status())
}

func TestOrder_IsPartyTo(t *testing.T) {
	o := newPendingOrder(t)

	vendor, err := actor.NewActor(o.VendorID(), actor.Vendor)
	require.NoError(t, err)
	supplier, err := actor.NewActor(o.SupplierID(), actor.Supplier)
	require.NoError(t, err)
	stranger, err := actor.NewActor(kernel.NewUUID(), actor.Supplier)
	require.NoError(t, err)
	wrongRole, err := actor.NewActor(o.VendorID(), actor.Supplier)
	require.NoError(t, err)

	assert.True(t, o.IsPartyTo(vendor))
	assert.True(t, o.IsPartyTo(supplier))
	assert.False(t, o.IsPartyTo(stranger))
	assert.False(t, o.IsPartyTo(wrongRole))
}

func TestRestoreOrder(t *testing.T) {
	partner := kernel.NewUUID()
	base := order.RestoreParams{
		ID:         kernel.NewUUID(),
		Number:     "ORD-1-1",
		VendorID:   kernel.NewUUID(),
		SupplierID: kernel.NewUUID(),
		Status:     order.OutForDelivery,
		Total:      money(t, "99.99"),
		Delivery:   order.Delivery{Address: "x"},
		CreatedAt:  fixedNow,
		UpdatedAt:  fixedNow,
	}

	t.Run("restores a claimed order", func(t *testing.T) {
		p := base
		p.DeliveryPartnerID = &partner

		o, err := order.RestoreOrder(p)

		require.NoError(t, err)
		assert.True(t, o.IsBoundTo(partner))
		assert.Equal(t, "99.99", o.Total().String())
	})

	t.Run("rejects out_for_delivery without partner", func(t *testing.T) {
		_, err := order.RestoreOrder(base)
		require.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		p := base
		p.Status = "shipped"
		_, err := order.RestoreOrder(p)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestChangeEvent(t *testing.T) {
	o := newPendingOrder(t)
	require.NoError(t, o.MoveTo(order.Confirmed, fixedNow.Add(time.Second)))

	ev := order.NewChangeEvent(o, order.Pending)

	assert.True(t, ev.OrderID.IsEqual(o.ID()))
	assert.Equal(t, order.Pending, ev.PreviousStatus)
	assert.Equal(t, order.Confirmed, ev.NewStatus)
	assert.Equal(t, o.UpdatedAt(), ev.Timestamp)
	assert.True(t, ev.Involves(o.VendorID()))
	assert.True(t, ev.Involves(o.SupplierID()))
	assert.False(t, ev.Involves(kernel.NewUUID()))
	assert.False(t, ev.AffectsClaimable())

	require.NoError(t, o.MoveTo(order.ReadyForPickup, fixedNow.Add(2*time.Second)))
	assert.True(t, order.NewChangeEvent(o, order.Confirmed).AffectsClaimable())
}

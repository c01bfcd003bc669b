package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStatus_Successor(t *testing.T) {
	t.Run("should walk the strict chain", func(t *testing.T) {
		next, err := order.ItemPending.Successor()
		require.NoError(t, err)
		assert.Equal(t, order.ItemPicked, next)

		next, err = order.ItemPicked.Successor()
		require.NoError(t, err)
		assert.Equal(t, order.ItemPacked, next)

		next, err = order.ItemPacked.Successor()
		require.NoError(t, err)
		assert.Equal(t, order.ItemShipped, next)
	})

	t.Run("should fail for terminal and invalid statuses", func(t *testing.T) {
		_, err := order.ItemShipped.Successor()
		require.Error(t, err)

		_, err = order.ItemStatusUnknown.Successor()
		require.Error(t, err)
	})
}

func TestItemStatus_CanAdvanceTo(t *testing.T) {
	t.Run("immediate successor is allowed", func(t *testing.T) {
		assert.True(t, order.ItemPending.CanAdvanceTo(order.ItemPicked))
		assert.True(t, order.ItemPicked.CanAdvanceTo(order.ItemPacked))
		assert.True(t, order.ItemPacked.CanAdvanceTo(order.ItemShipped))
	})

	t.Run("skips are rejected", func(t *testing.T) {
		assert.False(t, order.ItemPending.CanAdvanceTo(order.ItemPacked))
		assert.False(t, order.ItemPending.CanAdvanceTo(order.ItemShipped))
		assert.False(t, order.ItemPicked.CanAdvanceTo(order.ItemShipped))
	})

	t.Run("regressions are rejected", func(t *testing.T) {
		assert.False(t, order.ItemPicked.CanAdvanceTo(order.ItemPending))
		assert.False(t, order.ItemPacked.CanAdvanceTo(order.ItemPicked))
		assert.False(t, order.ItemShipped.CanAdvanceTo(order.ItemPacked))
	})

	t.Run("staying in place is rejected", func(t *testing.T) {
		assert.False(t, order.ItemPicked.CanAdvanceTo(order.ItemPicked))
	})
}

func TestItemStatus_Validate(t *testing.T) {
	for _, s := range []order.ItemStatus{order.ItemPending, order.ItemPicked, order.ItemPacked, order.ItemShipped} {
		assert.NoError(t, s.Validate(), s.String())
	}
	assert.Error(t, order.ItemStatusUnknown.Validate())
	assert.Error(t, order.ItemStatus(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Picking", order.Picking.String())
	assert.Equal(t, "Packing", order.Packing.String())
	assert.Equal(t, "Shipped", order.Shipped.String())
	assert.Equal(t, "Completed", order.Completed.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestDeriveStatus(t *testing.T) {
	newItem := func(t *testing.T) *order.Item {
		t.Helper()
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID().String(), 1, 100, false)
		require.NoError(t, err)
		return item
	}

	advance := func(t *testing.T, item *order.Item, target order.ItemStatus) {
		t.Helper()
		if target >= order.ItemPicked {
			require.NoError(t, item.Pick(1))
		}
		if target >= order.ItemPacked {
			require.NoError(t, item.Pack(1, "BOX-001"))
		}
		if target >= order.ItemShipped {
			require.NoError(t, item.Ship())
		}
	}

	tests := []struct {
		name     string
		statuses []order.ItemStatus
		want     order.Status
	}{
		{"all pending", []order.ItemStatus{order.ItemPending, order.ItemPending}, order.Pending},
		{"one pending holds the order back", []order.ItemStatus{order.ItemShipped, order.ItemPending}, order.Pending},
		{"all picked", []order.ItemStatus{order.ItemPicked, order.ItemPicked}, order.Picking},
		{"picked and packed mix", []order.ItemStatus{order.ItemPacked, order.ItemPicked}, order.Picking},
		{"all packed", []order.ItemStatus{order.ItemPacked, order.ItemPacked}, order.Packing},
		{"packed and shipped mix", []order.ItemStatus{order.ItemShipped, order.ItemPacked}, order.Packing},
		{"all shipped", []order.ItemStatus{order.ItemShipped, order.ItemShipped}, order.Shipped},
		{"single item pending", []order.ItemStatus{order.ItemPending}, order.Pending},
		{"single item shipped", []order.ItemStatus{order.ItemShipped}, order.Shipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]*order.Item, 0, len(tt.statuses))
			for _, s := range tt.statuses {
				item := newItem(t)
				advance(t, item, s)
				items = append(items, item)
			}

			assert.Equal(t, tt.want, order.DeriveStatus(items))
		})
	}

	t.Run("empty item set has no derivable status", func(t *testing.T) {
		assert.Equal(t, order.StatusUnknown, order.DeriveStatus(nil))
	})
}

// TestDerivedStatusMatchesSnapshot re-derives the status from an order's items
// at every step of the workflow and verifies the stored value always agrees.
func TestDerivedStatusMatchesSnapshot(t *testing.T) {
	itemA, err := order.NewItem(kernel.NewUUID(), "WH-001", 2, 2599, false)
	require.NoError(t, err)
	itemB, err := order.NewItem(kernel.NewUUID(), "SF-002", 1, 1099, true)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "CUST-77", "1 Warehouse Way", "SUP-1", "",
		time.Now(), []*order.Item{itemA, itemB},
	)
	require.NoError(t, err)

	check := func() {
		assert.Equal(t, order.DeriveStatus(o.Items()), o.Status())
	}

	check()
	require.NoError(t, o.PickItem(itemA.ID(), 2))
	check()
	require.NoError(t, o.PickItem(itemB.ID(), 1))
	check()
	require.NoError(t, o.PackItem(itemA.ID(), 2, "BOX-002"))
	check()
	require.NoError(t, o.PackItem(itemB.ID(), 1, "BOX-005"))
	check()
	require.NoError(t, o.ShipItem(itemA.ID(), "DHL", "TRK123"))
	check()
	require.NoError(t, o.ShipItem(itemB.ID(), "DHL", "TRK123"))
	check()
	assert.Equal(t, order.Shipped, o.Status())
}

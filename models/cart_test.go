package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddItemNewService(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ServiceID: 1, ServiceName: "AC Repair", Price: 500})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
	assert.Equal(t, "AC Repair", cart.Items[0].ServiceName)
}

func TestAddItemExistingServiceBumpsQuantity(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ServiceID: 1, ServiceName: "AC Repair", Price: 500})
	// A second add with a different snapshot only bumps quantity
	cart.AddItem(CartItem{ServiceID: 1, ServiceName: "Renamed", Price: 999})

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "AC Repair", cart.Items[0].ServiceName)
	assert.Equal(t, 500.0, cart.Items[0].Price)
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ServiceID: 1, Price: 500})
	cart.AddItem(CartItem{ServiceID: 2, Price: 300})

	cart.SetQuantity(1, 0)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, uint(2), cart.Items[0].ServiceID)

	cart.SetQuantity(2, -3)
	assert.Empty(t, cart.Items)
}

func TestRemoveItemMissingIsNoop(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ServiceID: 1, Price: 500})

	cart.RemoveItem(99)
	assert.Len(t, cart.Items, 1)
}

func TestCartInvariantsUnderMixedOperations(t *testing.T) {
	cart := &Cart{}

	// An arbitrary sequence of mutations
	cart.AddItem(CartItem{ServiceID: 1, Price: 500})
	cart.AddItem(CartItem{ServiceID: 2, Price: 1000})
	cart.AddItem(CartItem{ServiceID: 1, Price: 500})
	cart.SetQuantity(2, 5)
	cart.AddItem(CartItem{ServiceID: 3, Price: 250})
	cart.SetQuantity(3, 0)
	cart.RemoveItem(42)
	cart.AddItem(CartItem{ServiceID: 2, Price: 1000})

	// No duplicate service ids, and every quantity is at least 1
	seen := make(map[uint]bool)
	for _, item := range cart.Items {
		assert.False(t, seen[item.ServiceID], "duplicate service %d", item.ServiceID)
		seen[item.ServiceID] = true
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestTotals(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ServiceID: 1, Price: 500})
	cart.SetQuantity(1, 2)
	cart.AddItem(CartItem{ServiceID: 2, Price: 1000})

	assert.Equal(t, 2000.0, cart.TotalPrice())
	assert.Equal(t, 3, cart.TotalItems())

	summary := cart.Summary()
	assert.Equal(t, 2000.0, summary.Subtotal)
	assert.InDelta(t, 360.0, summary.GST, 0.001)
	assert.InDelta(t, 2360.0, summary.Total, 0.001)
}

func TestClearCart(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ServiceID: 1, Price: 500})
	cart.Clear()

	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.TotalPrice())
	assert.Equal(t, 0, cart.TotalItems())
}

// The cart summary, checkout summary and order-detail summary all come out of
// Totals, so computing them from the same subtotal must agree to the paise.
func TestTotalsAgreeAcrossViews(t *testing.T) {
	cart := &Cart{}
	cart.AddItem(CartItem{ServiceID: 1, Price: 649.50})
	cart.SetQuantity(1, 3)

	fromCart := cart.Summary()
	fromSubtotal := Totals(cart.TotalPrice())
	fromJobCard := (*JobCard)(nil).Summary(cart.TotalPrice())

	assert.Equal(t, fromCart, fromSubtotal)
	assert.Equal(t, fromCart, fromJobCard)
}

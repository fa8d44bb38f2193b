package customer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fixzep/fixzep-server/models"
)

func checkoutCart() *models.Cart {
	cart := &models.Cart{UserID: 7}
	cart.AddItem(models.CartItem{ServiceID: 1, ServiceName: "Deep Cleaning", Price: 1500})
	cart.AddItem(models.CartItem{ServiceID: 2, ServiceName: "AC Repair", Price: 800})
	return cart
}

func TestSettleCartPartialSuccess(t *testing.T) {
	cart := checkoutCart()

	results, created := settleCart(cart, func(item models.CartItem) (*models.Order, error) {
		if item.ServiceID == 2 {
			return nil, errors.New("service 2 is no longer available")
		}
		return &models.Order{ServiceID: item.ServiceID, Status: models.OrderPending}, nil
	})

	assert.Equal(t, 1, created)
	assert.Len(t, results, 2)

	assert.Equal(t, uint(1), results[0].ServiceID)
	assert.NotNil(t, results[0].Order)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, uint(2), results[1].ServiceID)
	assert.Nil(t, results[1].Order)
	assert.Equal(t, "service 2 is no longer available", results[1].Error)

	// One success is enough to empty the cart
	assert.Empty(t, cart.Items)
	assert.Equal(t, "1 of 2 orders created", settlementMessage(created, len(results)))
}

func TestSettleCartAllSucceed(t *testing.T) {
	cart := checkoutCart()

	results, created := settleCart(cart, func(item models.CartItem) (*models.Order, error) {
		return &models.Order{ServiceID: item.ServiceID}, nil
	})

	assert.Equal(t, 2, created)
	assert.Len(t, results, 2)
	assert.Empty(t, cart.Items)
	assert.Equal(t, "2 of 2 orders created", settlementMessage(created, len(results)))
}

func TestSettleCartAllFailKeepsCart(t *testing.T) {
	cart := checkoutCart()

	results, created := settleCart(cart, func(item models.CartItem) (*models.Order, error) {
		return nil, errors.New("slot taken")
	})

	assert.Equal(t, 0, created)
	assert.Len(t, results, 2)
	for _, r := range results {
		assert.Nil(t, r.Order)
		assert.Equal(t, "slot taken", r.Error)
	}

	// Nothing settled, so the cart survives for a retry
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, "0 of 2 orders created", settlementMessage(created, len(results)))
}

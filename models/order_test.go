package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateStatusRejectsInvalidTransitions(t *testing.T) {
	cases := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderPending, OrderInProgress},
		{OrderPending, OrderCompleted},
		{OrderConfirmed, OrderPending},
		{OrderConfirmed, OrderCompleted},
		{OrderInProgress, OrderCanceled},
		{OrderInProgress, OrderPending},
		{OrderCompleted, OrderCanceled},
		{OrderCanceled, OrderConfirmed},
	}

	for _, tc := range cases {
		order := &Order{Status: tc.from}
		err := order.UpdateStatus(nil, tc.to, "")
		assert.Error(t, err, "expected %s -> %s to be rejected", tc.from, tc.to)
		assert.Equal(t, tc.from, order.Status, "status must not change on a rejected transition")
	}
}

func TestCanCancel(t *testing.T) {
	assert.True(t, (&Order{Status: OrderPending}).CanCancel())
	assert.True(t, (&Order{Status: OrderConfirmed}).CanCancel())
	assert.False(t, (&Order{Status: OrderInProgress}).CanCancel())
	assert.False(t, (&Order{Status: OrderCompleted}).CanCancel())
	assert.False(t, (&Order{Status: OrderCanceled}).CanCancel())
}

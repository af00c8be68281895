package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	legal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusInvoiceCreated},
		{OrderStatusConfirmed, OrderStatusInvoiceCreated},
		{OrderStatusConfirmed, OrderStatusExchanged},
		{OrderStatusConfirmed, OrderStatusDown},
		{OrderStatusInvoiceCreated, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusCompleted},
	}
	for _, tc := range legal {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	illegal := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPending, OrderStatusCompleted},
		{OrderStatusPending, OrderStatusExchanged},
		{OrderStatusPending, OrderStatusDown},
		{OrderStatusInvoiceCreated, OrderStatusConfirmed},
		{OrderStatusInvoiceCreated, OrderStatusCompleted},
		{OrderStatusShipped, OrderStatusInvoiceCreated},
		{OrderStatusConfirmed, OrderStatusPending},
		{OrderStatusConfirmed, OrderStatusShipped},
	}
	for _, tc := range illegal {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}

func TestTerminalStatusesHaveNoEdges(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusCompleted, OrderStatusExchanged, OrderStatusDown} {
		assert.Empty(t, NextStatuses(s), "%s is terminal", s)
	}
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus(OrderStatusPending))
	assert.True(t, IsValidStatus(OrderStatusDown))
	assert.False(t, IsValidStatus("cancelled"))
	assert.False(t, IsValidStatus(""))
}

func TestNextStatusesReturnsCopy(t *testing.T) {
	next := NextStatuses(OrderStatusPending)
	next[0] = OrderStatusCompleted
	assert.Equal(t, OrderStatusConfirmed, NextStatuses(OrderStatusPending)[0])
}

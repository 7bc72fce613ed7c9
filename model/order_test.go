package model

import (
	"testing"

	"canteen_manager/constants"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	t.Run("ForwardFlow", func(t *testing.T) {
		assert.True(t, CanTransition(constants.ORDER_PENDING, constants.ORDER_CONFIRMED))
		assert.True(t, CanTransition(constants.ORDER_CONFIRMED, constants.ORDER_PREPARING))
		assert.True(t, CanTransition(constants.ORDER_PREPARING, constants.ORDER_READY))
		assert.True(t, CanTransition(constants.ORDER_READY, constants.ORDER_DELIVERED))
	})

	t.Run("NoSkipping", func(t *testing.T) {
		assert.False(t, CanTransition(constants.ORDER_PENDING, constants.ORDER_PREPARING))
		assert.False(t, CanTransition(constants.ORDER_PENDING, constants.ORDER_READY))
		assert.False(t, CanTransition(constants.ORDER_PENDING, constants.ORDER_DELIVERED))
		assert.False(t, CanTransition(constants.ORDER_CONFIRMED, constants.ORDER_DELIVERED))
	})

	t.Run("NoGoingBack", func(t *testing.T) {
		assert.False(t, CanTransition(constants.ORDER_CONFIRMED, constants.ORDER_PENDING))
		assert.False(t, CanTransition(constants.ORDER_READY, constants.ORDER_PREPARING))
		assert.False(t, CanTransition(constants.ORDER_DELIVERED, constants.ORDER_READY))
	})

	t.Run("CancelFromAnyNonTerminal", func(t *testing.T) {
		for _, from := range []string{
			constants.ORDER_PENDING,
			constants.ORDER_CONFIRMED,
			constants.ORDER_PREPARING,
			constants.ORDER_READY,
		} {
			assert.True(t, CanTransition(from, constants.ORDER_CANCELLED), "cancel from %s", from)
		}
	})

	t.Run("TerminalStatesAreFinal", func(t *testing.T) {
		for _, to := range []string{
			constants.ORDER_PENDING,
			constants.ORDER_CONFIRMED,
			constants.ORDER_PREPARING,
			constants.ORDER_READY,
			constants.ORDER_DELIVERED,
			constants.ORDER_CANCELLED,
		} {
			assert.False(t, CanTransition(constants.ORDER_DELIVERED, to))
			assert.False(t, CanTransition(constants.ORDER_CANCELLED, to))
		}
	})

	t.Run("SelfTransitionDisallowed", func(t *testing.T) {
		assert.False(t, CanTransition(constants.ORDER_PENDING, constants.ORDER_PENDING))
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		assert.False(t, CanTransition("bogus", constants.ORDER_CONFIRMED))
		assert.False(t, CanTransition(constants.ORDER_PENDING, "bogus"))
	})
}

func TestIsTerminalOrderStatus(t *testing.T) {
	assert.True(t, IsTerminalOrderStatus(constants.ORDER_DELIVERED))
	assert.True(t, IsTerminalOrderStatus(constants.ORDER_CANCELLED))
	assert.False(t, IsTerminalOrderStatus(constants.ORDER_PENDING))
	assert.False(t, IsTerminalOrderStatus(constants.ORDER_READY))
}

func TestIsValidOrderStatus(t *testing.T) {
	for _, status := range []string{"pending", "confirmed", "preparing", "ready", "delivered", "cancelled"} {
		assert.True(t, IsValidOrderStatus(status), status)
	}
	assert.False(t, IsValidOrderStatus("shipped"))
	assert.False(t, IsValidOrderStatus(""))
}

func TestIsValidPaymentStatus(t *testing.T) {
	for _, status := range []string{"pending", "paid", "failed", "refunded"} {
		assert.True(t, IsValidPaymentStatus(status), status)
	}
	assert.False(t, IsValidPaymentStatus("chargeback"))
	assert.False(t, IsValidPaymentStatus(""))
}

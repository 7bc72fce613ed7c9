package helper

import (
	"regexp"
	"testing"

	"canteen_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderCode(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{13,}-[A-Z0-9]{4}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := GenerateOrderCode()
		assert.Regexp(t, pattern, code)
		seen[code] = true
	}
	// the random suffix keeps codes distinct even within one millisecond
	assert.Greater(t, len(seen), 1)
}

func TestBuildOrderItems(t *testing.T) {
	menus := map[uint]model.Menu{
		1: {DTO: model.DTO{ID: 1}, Name: "Masala Dosa", Price: 60},
		2: {DTO: model.DTO{ID: 2}, Name: "Filter Coffee", Price: 25},
	}

	t.Run("RecomputesFromStoredPrice", func(t *testing.T) {
		requested := []model.OrderItemInput{
			{MenuItemId: 1, Quantity: 2, Price: 1}, // client price is ignored
			{MenuItemId: 2, Quantity: 1, Price: 999},
		}

		items, total, err := BuildOrderItems(menus, requested)
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, "Masala Dosa", items[0].Name)
		assert.Equal(t, 60.0, items[0].Price)
		assert.Equal(t, 120.0, items[0].Total)
		assert.Equal(t, 25.0, items[1].Total)
		assert.Equal(t, 145.0, total)
	})

	t.Run("UnknownMenuItem", func(t *testing.T) {
		_, _, err := BuildOrderItems(menus, []model.OrderItemInput{{MenuItemId: 42, Quantity: 1}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "42")
	})

	t.Run("QuantityFloor", func(t *testing.T) {
		items, total, err := BuildOrderItems(menus, []model.OrderItemInput{{MenuItemId: 2, Quantity: 0}})
		require.NoError(t, err)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, 25.0, total)
	})

	t.Run("Empty", func(t *testing.T) {
		items, total, err := BuildOrderItems(menus, nil)
		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, total)
	})
}

func TestTotalsMatch(t *testing.T) {
	assert.True(t, TotalsMatch(100, 100))
	assert.True(t, TotalsMatch(100.004, 100))
	assert.True(t, TotalsMatch(99.995, 100))
	assert.False(t, TotalsMatch(100.02, 100))
	assert.False(t, TotalsMatch(90, 100))
}

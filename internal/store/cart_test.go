package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront/client/internal/domain/catalog"
	"github.com/storefront/client/internal/storage"
)

func newTestCart(t *testing.T) (*Cart, *storage.MemoryStorage) {
	t.Helper()
	st := storage.NewMemoryStorage()
	return NewCart(st, zap.NewNop()), st
}

func TestCartAddItem(t *testing.T) {
	t.Run("same triple merges quantities", func(t *testing.T) {
		cart, _ := newTestCart(t)
		shirt := testProduct("SHIRT-001", "Oxford Shirt", 50)

		cart.AddItem(shirt, "M", "White", 2)
		cart.AddItem(shirt, "M", "White", 3)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 5, items[0].Quantity)
		assert.Equal(t, 5, cart.ItemCount())
	})

	t.Run("different size is a separate line", func(t *testing.T) {
		cart, _ := newTestCart(t)
		shirt := testProduct("SHIRT-001", "Oxford Shirt", 50)

		cart.AddItem(shirt, "M", "White", 1)
		cart.AddItem(shirt, "L", "White", 1)
		cart.AddItem(shirt, "M", "Navy", 1)

		assert.Len(t, cart.Items(), 3)
	})

	t.Run("legacy and canonical IDs share one identity", func(t *testing.T) {
		cart, _ := newTestCart(t)
		canonical := catalog.Product{CanonicalID: "SHIRT-001", LegacyID: "64a1b2c3", Name: "Oxford Shirt", Price: decimal.NewFromInt(50)}

		cart.AddItem(canonical, "M", "White", 1)
		cart.AddItem(canonical, "M", "White", 1)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "SHIRT-001", items[0].Key())
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("product without identifier is rejected", func(t *testing.T) {
		cart, _ := newTestCart(t)
		cart.AddItem(catalog.Product{Name: "Mystery Shirt"}, "M", "White", 1)
		assert.Empty(t, cart.Items())
	})

	t.Run("price is captured at add time", func(t *testing.T) {
		cart, _ := newTestCart(t)
		shirt := testProduct("SHIRT-001", "Oxford Shirt", 50)
		cart.AddItem(shirt, "M", "White", 1)

		// A later catalog price change must not affect the cart line
		shirt.Price = decimal.NewFromInt(80)
		items := cart.Items()
		require.Len(t, items, 1)
		assert.True(t, items[0].Price.Equal(decimal.NewFromInt(50)))
	})
}

func TestCartRemoveItem(t *testing.T) {
	cart, _ := newTestCart(t)
	shirt := testProduct("SHIRT-001", "Oxford Shirt", 50)
	cart.AddItem(shirt, "M", "White", 1)
	cart.AddItem(shirt, "L", "White", 1)

	t.Run("removes only the matching triple", func(t *testing.T) {
		cart.RemoveItem("SHIRT-001", "M", "White")
		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "L", items[0].Size)
	})

	t.Run("missing item is a no-op", func(t *testing.T) {
		cart.RemoveItem("SHIRT-001", "XL", "White")
		assert.Len(t, cart.Items(), 1)
	})

	t.Run("re-adding after removal starts a fresh line", func(t *testing.T) {
		cart.RemoveItem("SHIRT-001", "L", "White")
		cart.AddItem(shirt, "L", "White", 3)

		items := cart.Items()
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})
}

func TestCartSetQuantity(t *testing.T) {
	cart, _ := newTestCart(t)
	shirt := testProduct("SHIRT-001", "Oxford Shirt", 50)
	cart.AddItem(shirt, "M", "White", 2)

	t.Run("overwrites quantity", func(t *testing.T) {
		cart.SetQuantity("SHIRT-001", "M", "White", 7)
		assert.Equal(t, 7, cart.ItemCount())
	})

	t.Run("zero removes the line", func(t *testing.T) {
		cart.SetQuantity("SHIRT-001", "M", "White", 0)
		assert.Empty(t, cart.Items())
	})

	t.Run("missing item is a no-op", func(t *testing.T) {
		cart.SetQuantity("SHIRT-001", "M", "White", 3)
		assert.Empty(t, cart.Items())
	})
}

func TestCartTotal(t *testing.T) {
	cart, _ := newTestCart(t)
	cart.AddItem(testProduct("SHIRT-001", "Oxford Shirt", 50), "M", "White", 2)
	cart.AddItem(testProduct("PANTS-001", "Chinos", 80), "32", "Khaki", 1)

	assert.True(t, cart.Total().Equal(decimal.NewFromInt(180)))
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCartPersistence(t *testing.T) {
	st := storage.NewMemoryStorage()
	cart := NewCart(st, zap.NewNop())
	cart.AddItem(testProduct("SHIRT-001", "Oxford Shirt", 50), "M", "White", 2)

	t.Run("rehydrates from storage", func(t *testing.T) {
		revived := NewCart(st, zap.NewNop())
		items := revived.Items()
		require.Len(t, items, 1)
		assert.Equal(t, "SHIRT-001", items[0].Key())
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("clear persists the empty state", func(t *testing.T) {
		cart.Clear()
		revived := NewCart(st, zap.NewNop())
		assert.Empty(t, revived.Items())
	})
}

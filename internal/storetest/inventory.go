package storetest

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func inventory(t *testing.T, backendName string, factory Factory) types.Inventory {
	t.Helper()
	inv, err := Attach(t, factory, Config(backendName)).Inventory()
	require.NoError(t, err)
	return inv
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testInventory(t *testing.T, backendName string, factory Factory) {
	t.Run("add then find round trips for any key casing", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		want := types.NewProduct("Widget", price("9.99"), 10)
		require.NoError(t, inv.AddProduct(want))

		for _, key := range []string{"Widget", "widget", "WIDGET"} {
			got, err := inv.FindProduct(key)
			require.NoError(t, err, key)
			assert.Equal(t, want.Name, got.Name)
			assert.True(t, want.Price.Equal(got.Price), "price %s != %s", want.Price, got.Price)
			assert.Equal(t, want.StockQuantity, got.StockQuantity)
		}
	})

	t.Run("widget stock and removal scenario", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		require.NoError(t, inv.AddProduct(types.NewProduct("Widget", price("9.99"), 10)))

		updated, err := inv.UpdateStock("Widget", -3)
		require.NoError(t, err)
		assert.Equal(t, 7, updated.StockQuantity)

		got, err := inv.FindProduct("Widget")
		require.NoError(t, err)
		assert.Equal(t, 7, got.StockQuantity)

		require.NoError(t, inv.RemoveProduct("Widget"))
		_, err = inv.FindProduct("Widget")
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("stock may go negative", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		require.NoError(t, inv.AddProduct(types.NewProduct("Bolt", price("0.10"), 2)))
		got, err := inv.UpdateStock("bolt", -5)
		require.NoError(t, err)
		assert.Equal(t, -3, got.StockQuantity)
	})

	t.Run("stock overflow is rejected without mutation", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		require.NoError(t, inv.AddProduct(types.NewProduct("Widget", price("1"), 1)))

		_, err := inv.UpdateStock("Widget", math.MaxInt)
		assert.ErrorIs(t, err, types.ErrStockOverflow)
		got, err := inv.FindProduct("Widget")
		require.NoError(t, err)
		assert.Equal(t, 1, got.StockQuantity)

		_, err = inv.UpdateStock("Widget", -1)
		require.NoError(t, err)
		got, err = inv.UpdateStock("Widget", math.MinInt)
		require.NoError(t, err)
		assert.Equal(t, math.MinInt, got.StockQuantity)
		_, err = inv.UpdateStock("Widget", -1)
		assert.ErrorIs(t, err, types.ErrStockOverflow)
	})

	t.Run("empty name is rejected without mutation", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		assert.ErrorIs(t, inv.AddProduct(types.NewProduct("", price("1"), 1)), types.ErrInvalidName)
		n, err := inv.Len()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("missing product reports not found", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		_, err := inv.FindProduct("Gadget")
		assert.ErrorIs(t, err, types.ErrNotFound)
		_, err = inv.UpdateStock("Gadget", 1)
		assert.ErrorIs(t, err, types.ErrNotFound)
		_, err = inv.SetPrice("Gadget", price("1"))
		assert.ErrorIs(t, err, types.ErrNotFound)
		assert.ErrorIs(t, inv.RemoveProduct("Gadget"), types.ErrNotFound)
	})

	t.Run("set price keeps decimal precision", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		require.NoError(t, inv.AddProduct(types.NewProduct("Gear", price("1.10"), 1)))
		got, err := inv.SetPrice("gear", price("1234.567"))
		require.NoError(t, err)
		assert.True(t, got.Price.Equal(price("1234.567")))

		got, err = inv.FindProduct("Gear")
		require.NoError(t, err)
		assert.Equal(t, "1234.567", got.Price.String())
	})

	t.Run("duplicate names are shadowed by the first match", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		require.NoError(t, inv.AddProduct(types.NewProduct("Widget", price("1"), 1)))
		require.NoError(t, inv.AddProduct(types.NewProduct("widget", price("2"), 2)))

		n, err := inv.Len()
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		got, err := inv.FindProduct("WIDGET")
		require.NoError(t, err)
		assert.Equal(t, 1, got.StockQuantity)

		_, err = inv.UpdateStock("Widget", 10)
		require.NoError(t, err)
		all, err := types.Collect(inv.Products())
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, 11, all[0].StockQuantity)
		assert.Equal(t, 2, all[1].StockQuantity)

		// Removing the first match exposes the shadowed duplicate.
		require.NoError(t, inv.RemoveProduct("Widget"))
		got, err = inv.FindProduct("Widget")
		require.NoError(t, err)
		assert.Equal(t, "widget", got.Name)
		assert.Equal(t, 2, got.StockQuantity)
	})

	t.Run("products are listed in insertion order and re-iterable", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		seq := inv.Products()

		for _, name := range []string{"Charlie", "Alpha", "Bravo"} {
			require.NoError(t, inv.AddProduct(types.NewProduct(name, price("1"), 1)))
		}
		require.NoError(t, inv.RemoveProduct("Alpha"))
		require.NoError(t, inv.AddProduct(types.NewProduct("Delta", price("1"), 1)))

		for range 2 {
			all, err := types.Collect(seq)
			require.NoError(t, err)
			var names []string
			for _, p := range all {
				names = append(names, p.Name)
			}
			assert.Equal(t, []string{"Charlie", "Bravo", "Delta"}, names)
		}
	})

	t.Run("returned products are copies", func(t *testing.T) {
		inv := inventory(t, backendName, factory)
		require.NoError(t, inv.AddProduct(types.NewProduct("Widget", price("1"), 5)))
		got, err := inv.FindProduct("Widget")
		require.NoError(t, err)
		require.NoError(t, got.AdjustStock(100))

		again, err := inv.FindProduct("Widget")
		require.NoError(t, err)
		assert.Equal(t, 5, again.StockQuantity)
	})
}

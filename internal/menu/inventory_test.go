package menu

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func runInventory(t *testing.T, lines ...string) (types.Inventory, string) {
	t.Helper()
	store, err := attach(t).Inventory()
	require.NoError(t, err)
	p, out := script(lines...)
	require.NoError(t, NewInventory(store, p, zap.NewNop()).Run(context.Background()))
	return store, out.String()
}

func TestInventoryWidgetSession(t *testing.T) {
	store, out := runInventory(t,
		"1", "Widget", "abc", "9.99", "ten", "10",
		"3",
		"2", "widget", "x", "-3",
		"3",
		"4", "WIDGET",
		"4", "Widget",
		"6",
	)

	assert.Contains(t, out, "Invalid input! Please enter a valid decimal number.")
	assert.Contains(t, out, "Invalid input! Please enter a valid integer.")
	assert.Contains(t, out, "Product added successfully!")
	assert.Contains(t, out, "Name: Widget, Price: $9.99, Stock: 10")
	assert.Contains(t, out, "Stock updated successfully!")
	assert.Contains(t, out, "Name: Widget, Price: $9.99, Stock: 7")
	assert.Contains(t, out, "Product removed successfully!")
	assert.Contains(t, out, "Product not found!")

	n, err := store.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInventoryRejectsEmptyName(t *testing.T) {
	store, out := runInventory(t, "1", "", "1.00", "1", "6")

	assert.Contains(t, out, "Product name cannot be empty!")
	assert.NotContains(t, out, "Product added successfully!")
	n, err := store.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInventoryUpdateMissingSkipsQuantityPrompt(t *testing.T) {
	_, out := runInventory(t, "2", "Gadget", "6")

	assert.Contains(t, out, "Product not found!")
	assert.NotContains(t, out, "Enter quantity to add or subtract: ")
}

func TestInventoryUpdatePriceFormatsCurrency(t *testing.T) {
	_, out := runInventory(t,
		"1", "Gear", "1", "2",
		"5", "gear", "1234.5",
		"3",
		"6",
	)

	assert.Contains(t, out, "Price updated successfully!")
	assert.Contains(t, out, "Name: Gear, Price: $1,234.50, Stock: 2")
}

func TestInventoryDuplicateNamesShadow(t *testing.T) {
	_, out := runInventory(t,
		"1", "Widget", "1", "1",
		"1", "widget", "2", "2",
		"2", "WIDGET", "5",
		"3",
		"6",
	)

	assert.Contains(t, out, "Name: Widget, Price: $1.00, Stock: 6")
	assert.Contains(t, out, "Name: widget, Price: $2.00, Stock: 2")
	assert.Less(t, strings.Index(out, "Name: Widget,"), strings.Index(out, "Name: widget,"))
}

func TestInventoryEOFMidOperationAddsNothing(t *testing.T) {
	store, _ := runInventory(t, "1", "Widget", "9.99")

	n, err := store.Len()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInventoryOversizedNameIsReprompted(t *testing.T) {
	store, out := runInventory(t,
		"1", strings.Repeat("n", 70000), "Widget", "9.99", "10",
		"6",
	)

	assert.Contains(t, out, "Invalid input! Line is too long.")
	assert.Contains(t, out, "Product added successfully!")
	got, err := store.FindProduct("Widget")
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQuantity)
}

func TestInventoryStockOverflowIsRejected(t *testing.T) {
	store, out := runInventory(t,
		"1", "Widget", "1", "1",
		"2", "Widget", "9223372036854775807",
		"6",
	)

	assert.Contains(t, out, "Stock quantity out of range! No change made.")
	assert.NotContains(t, out, "Stock updated successfully!")
	got, err := store.FindProduct("Widget")
	require.NoError(t, err)
	assert.Equal(t, 1, got.StockQuantity)
}

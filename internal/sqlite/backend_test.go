package sqlite

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/internal/storetest"
	"github.com/mesh-intelligence/trackers/pkg/types"
)

func TestBackendSuite(t *testing.T) {
	storetest.Run(t, types.BackendSQLite, func() types.Backend { return NewBackend() })
}

func TestAttachCreatesSchema(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(storetest.Config(types.BackendSQLite)))
	t.Cleanup(func() { _ = b.Detach() })

	for _, table := range []string{"products", "books", "loans", "students", "grades", "tasks"} {
		var name string
		err := b.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestAttachRejectsBlankSeedTitle(t *testing.T) {
	b := NewBackend()
	cfg := storetest.Config(types.BackendSQLite)
	cfg.LibrarySeed = []string{"Go in Action", ""}

	assert.ErrorIs(t, b.Attach(cfg), types.ErrInvalidTitle)
	assert.Nil(t, b.db)

	require.NoError(t, b.Attach(storetest.Config(types.BackendSQLite)))
	t.Cleanup(func() { _ = b.Detach() })
}

func TestDetachDiscardsDatabase(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(storetest.Config(types.BackendSQLite)))
	inv, err := b.Inventory()
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(types.NewProduct("Widget", decimal.RequireFromString("9.99"), 10)))

	require.NoError(t, b.Detach())
	assert.Nil(t, b.db)

	require.NoError(t, b.Attach(storetest.Config(types.BackendSQLite)))
	t.Cleanup(func() { _ = b.Detach() })
	inv, err = b.Inventory()
	require.NoError(t, err)
	_, err = inv.FindProduct("Widget")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestPriceStoredAsDecimalText(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(storetest.Config(types.BackendSQLite)))
	t.Cleanup(func() { _ = b.Detach() })

	inv, err := b.Inventory()
	require.NoError(t, err)
	require.NoError(t, inv.AddProduct(types.NewProduct("Gear", decimal.RequireFromString("0.1"), 1)))
	_, err = inv.SetPrice("Gear", decimal.RequireFromString("0.3"))
	require.NoError(t, err)

	var raw string
	require.NoError(t, b.db.QueryRow("SELECT price FROM products").Scan(&raw))
	assert.Equal(t, "0.3", raw)
}

func TestRangingDoesNotHoldConnection(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(storetest.Config(types.BackendSQLite)))
	t.Cleanup(func() { _ = b.Detach() })

	lib, err := b.Library()
	require.NoError(t, err)

	// Borrowing inside the loop needs the single pooled connection.
	for book, err := range lib.Books() {
		require.NoError(t, err)
		_, err = lib.Borrow("Alice", book.Title)
		if err != nil {
			assert.ErrorIs(t, err, types.ErrBorrowLimit)
		}
	}
	held, err := types.Collect(lib.Borrowed("Alice"))
	require.NoError(t, err)
	assert.Len(t, held, types.DefaultBorrowLimit)
}

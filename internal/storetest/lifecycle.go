package storetest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func testLifecycle(t *testing.T, backendName string, factory Factory) {
	t.Run("attach twice returns ErrAlreadyAttached", func(t *testing.T) {
		b := Attach(t, factory, Config(backendName))
		assert.ErrorIs(t, b.Attach(Config(backendName)), types.ErrAlreadyAttached)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		b := factory()
		cfg := Config(backendName)
		cfg.BorrowLimit = 0
		assert.ErrorIs(t, b.Attach(cfg), types.ErrBorrowLimitInvalid)

		_, err := b.Inventory()
		assert.ErrorIs(t, err, types.ErrDetached)
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		b := factory()
		require.NoError(t, b.Attach(Config(backendName)))
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("getters fail after detach", func(t *testing.T) {
		b := factory()
		require.NoError(t, b.Attach(Config(backendName)))
		require.NoError(t, b.Detach())

		_, err := b.Inventory()
		assert.ErrorIs(t, err, types.ErrDetached)
		_, err = b.Library()
		assert.ErrorIs(t, err, types.ErrDetached)
		_, err = b.Gradebook()
		assert.ErrorIs(t, err, types.ErrDetached)
		_, err = b.Tasks()
		assert.ErrorIs(t, err, types.ErrDetached)
	})

	t.Run("stores obtained before detach fail after detach", func(t *testing.T) {
		b := factory()
		require.NoError(t, b.Attach(Config(backendName)))
		inv, err := b.Inventory()
		require.NoError(t, err)
		lib, err := b.Library()
		require.NoError(t, err)
		require.NoError(t, b.Detach())

		assert.ErrorIs(t, inv.AddProduct(types.NewProduct("Widget", decimal.Zero, 1)), types.ErrDetached)
		_, err = lib.FindBook("C# Fundamentals")
		assert.ErrorIs(t, err, types.ErrDetached)
		_, err = types.Collect(lib.Books())
		assert.ErrorIs(t, err, types.ErrDetached)
	})

	t.Run("reattach starts empty", func(t *testing.T) {
		b := factory()
		require.NoError(t, b.Attach(Config(backendName)))
		inv, err := b.Inventory()
		require.NoError(t, err)
		require.NoError(t, inv.AddProduct(types.NewProduct("Widget", decimal.Zero, 1)))
		require.NoError(t, b.Detach())

		require.NoError(t, b.Attach(Config(backendName)))
		t.Cleanup(func() { _ = b.Detach() })
		inv, err = b.Inventory()
		require.NoError(t, err)
		n, err := inv.Len()
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

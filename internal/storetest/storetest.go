// Package storetest holds the behaviour suite every types.Backend must pass.
// Backend packages call Run from their own tests so the memory and SQLite
// stores are held to identical semantics.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

// Factory returns a new, detached backend.
type Factory func() types.Backend

// Run executes the full suite against backends produced by factory.
// backendName is written into the Config passed to Attach.
func Run(t *testing.T, backendName string, factory Factory) {
	t.Run("Lifecycle", func(t *testing.T) { testLifecycle(t, backendName, factory) })
	t.Run("Inventory", func(t *testing.T) { testInventory(t, backendName, factory) })
	t.Run("Library", func(t *testing.T) { testLibrary(t, backendName, factory) })
	t.Run("Gradebook", func(t *testing.T) { testGradebook(t, backendName, factory) })
	t.Run("Tasks", func(t *testing.T) { testTasks(t, backendName, factory) })
}

// Config returns the default configuration for backendName.
func Config(backendName string) types.Config {
	cfg := types.DefaultConfig()
	cfg.Backend = backendName
	return cfg
}

// Attach creates a backend from factory, attaches it with cfg, and detaches
// it when the test ends.
func Attach(t *testing.T, factory Factory, cfg types.Config) types.Backend {
	t.Helper()
	b := factory()
	require.NoError(t, b.Attach(cfg))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

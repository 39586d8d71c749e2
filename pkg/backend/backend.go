// Package backend provides the public factory for record store backends.
// The implementations stay internal; callers only see types.Backend.
//
// Example:
//
//	b, err := backend.New(types.BackendSQLite)
//	if err != nil {
//	    return err
//	}
//	if err := b.Attach(cfg); err != nil {
//	    return err
//	}
//	defer b.Detach()
package backend

import (
	"fmt"

	"github.com/mesh-intelligence/trackers/internal/memory"
	"github.com/mesh-intelligence/trackers/internal/sqlite"
	"github.com/mesh-intelligence/trackers/pkg/types"
)

// New returns a detached backend for name. Call Attach before use.
// Returns ErrBackendUnknown for names other than memory and sqlite.
func New(name string) (types.Backend, error) {
	switch name {
	case types.BackendMemory:
		return memory.NewBackend(), nil
	case types.BackendSQLite:
		return sqlite.NewBackend(), nil
	case "":
		return nil, types.ErrBackendEmpty
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, name)
	}
}

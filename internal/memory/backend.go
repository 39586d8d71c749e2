// Package memory implements the in-process record store backend. Records are
// held in ordered slices for the lifetime of the attachment and discarded on
// Detach.
//
// The backend and its stores are not safe for concurrent use; each tracker
// drives them from a single menu loop.
package memory

import (
	"slices"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// Backend implements types.Backend over Go slices.
type Backend struct {
	attached bool
	config   types.Config

	inventory *inventoryStore
	library   *libraryStore
	gradebook *gradebookStore
	tasks     *taskStore
}

// NewBackend creates a detached memory backend. Call Attach before use.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach validates config, creates empty stores, and seeds the library.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	b.config = config
	b.inventory = &inventoryStore{backend: b}
	b.library = &libraryStore{
		backend:  b,
		limit:    config.BorrowLimit,
		borrowed: make(map[string][]string),
	}
	b.gradebook = &gradebookStore{backend: b}
	b.tasks = &taskStore{backend: b}

	for _, title := range slices.Clone(config.LibrarySeed) {
		if err := b.library.seed(title); err != nil {
			return err
		}
	}

	b.attached = true
	return nil
}

// Detach drops every record. Stores obtained before Detach return
// ErrDetached from then on. Detach is idempotent.
func (b *Backend) Detach() error {
	if !b.attached {
		return nil
	}
	b.attached = false
	b.inventory = nil
	b.library = nil
	b.gradebook = nil
	b.tasks = nil
	return nil
}

// Inventory returns the product store.
func (b *Backend) Inventory() (types.Inventory, error) {
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.inventory, nil
}

// Library returns the book store.
func (b *Backend) Library() (types.Library, error) {
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.library, nil
}

// Gradebook returns the student store.
func (b *Backend) Gradebook() (types.Gradebook, error) {
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.gradebook, nil
}

// Tasks returns the task list.
func (b *Backend) Tasks() (types.TaskList, error) {
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.tasks, nil
}

package types

// Backend groups the four record stores behind one lifecycle. Callers attach
// once at program start, hand the stores to a menu, and detach on exit.
type Backend interface {
	// Attach prepares empty stores described by config and seeds the
	// library. Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources and discards every record.
	// Idempotent. After Detach, store operations return ErrDetached.
	Detach() error

	// Inventory returns the product store.
	Inventory() (Inventory, error)

	// Library returns the book store with its per-user borrow ledger.
	Library() (Library, error)

	// Gradebook returns the student store.
	Gradebook() (Gradebook, error)

	// Tasks returns the task list.
	Tasks() (TaskList, error)
}

// Package sqlite implements the record store backend on an in-memory SQLite
// database. SQLite serves as the query engine only: each Attach opens a
// private database, and Detach discards it along with every record.
package sqlite

import (
	"database/sql"
	"fmt"
	"iter"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

// Compile-time interface check.
var _ types.Backend = (*Backend)(nil)

// memoryDSN opens a database private to its connection. The pool is capped
// at one connection so the database lives exactly as long as the *sql.DB.
const memoryDSN = "file::memory:"

// Backend implements types.Backend over an in-memory SQLite database.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	inventory *inventoryTable
	library   *libraryTable
	gradebook *gradebookTable
	tasks     *tasksTable
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach opens a fresh database, creates the schema, and seeds the library.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return fmt.Errorf("opening sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}
	if err := seedLibrary(db, config.LibrarySeed); err != nil {
		db.Close()
		return err
	}

	b.db = db
	b.config = config
	b.inventory = &inventoryTable{backend: b}
	b.library = &libraryTable{backend: b, limit: config.BorrowLimit}
	b.gradebook = &gradebookTable{backend: b}
	b.tasks = &tasksTable{backend: b}
	b.attached = true
	return nil
}

// Detach closes the database, dropping every record. Tables obtained before
// Detach return ErrDetached from then on. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	b.attached = false
	b.inventory = nil
	b.library = nil
	b.gradebook = nil
	b.tasks = nil

	db := b.db
	b.db = nil
	if err := db.Close(); err != nil {
		return fmt.Errorf("closing sqlite: %w", err)
	}
	return nil
}

// Inventory returns the products table.
func (b *Backend) Inventory() (types.Inventory, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.inventory, nil
}

// Library returns the books table.
func (b *Backend) Library() (types.Library, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.library, nil
}

// Gradebook returns the students table.
func (b *Backend) Gradebook() (types.Gradebook, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.gradebook, nil
}

// Tasks returns the tasks table.
func (b *Backend) Tasks() (types.TaskList, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.tasks, nil
}

// use acquires the read lock and verifies that the calling table still
// belongs to the current attachment. The caller must call the returned
// unlock.
func (b *Backend) use(current func() bool) (*sql.DB, func(), error) {
	b.mu.RLock()
	if !b.attached || !current() {
		b.mu.RUnlock()
		return nil, nil, types.ErrDetached
	}
	return b.db, b.mu.RUnlock, nil
}

func createSchema(db *sql.DB) error {
	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	for _, ddl := range indexDDL {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

func seedLibrary(db *sql.DB, titles []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, title := range titles {
		if strings.TrimSpace(title) == "" {
			return types.ErrInvalidTitle
		}
		if _, err := tx.Exec("INSERT INTO books (title) VALUES (?)", title); err != nil {
			return fmt.Errorf("seeding book %q: %w", title, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}
	return nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// scanFunc reads one row into a seq and a record.
type scanFunc[T any] func(*sql.Rows) (int64, T, error)

// queryAll runs query and scans every row in result order. Rows are closed
// before returning so callers may issue further statements.
func queryAll[T any](q querier, scan scanFunc[T], query string, args ...any) ([]int64, []T, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	var seqs []int64
	var out []T
	for rows.Next() {
		seq, v, err := scan(rows)
		if err != nil {
			return nil, nil, err
		}
		seqs = append(seqs, seq)
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading rows: %w", err)
	}
	return seqs, out, nil
}

// queryFirst returns the first row from query accepted by match, or
// ErrNotFound. Matching runs in Go so every backend shares the same
// case-folding rules.
func queryFirst[T any](q querier, scan scanFunc[T], match func(T) bool, query string, args ...any) (int64, T, error) {
	seqs, all, err := queryAll(q, scan, query, args...)
	if err != nil {
		var zero T
		return 0, zero, err
	}
	for i, v := range all {
		if match(v) {
			return seqs[i], v, nil
		}
	}
	var zero T
	return 0, zero, types.ErrNotFound
}

// count returns the row count of table.
func count(q querier, table string) (int, error) {
	var n int
	if err := q.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}

// snapshot yields the records returned by load. load runs each time the
// sequence is ranged and releases the connection before anything is
// yielded, so loop bodies may call back into the store.
func snapshot[T any](load func() ([]T, error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		all, err := load()
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		for _, v := range all {
			if !yield(v, nil) {
				return
			}
		}
	}
}

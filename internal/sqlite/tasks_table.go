package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.TaskList = (*tasksTable)(nil)

// tasksTable stores tasks. A task's 1-based position is its rank by seq.
type tasksTable struct {
	backend *Backend
}

func (tt *tasksTable) lock() (*sql.DB, func(), error) {
	return tt.backend.use(func() bool { return tt.backend.tasks == tt })
}

func scanTask(rows *sql.Rows) (int64, types.Task, error) {
	var (
		seq int64
		t   types.Task
	)
	if err := rows.Scan(&seq, &t.Description, &t.IsCompleted); err != nil {
		return 0, types.Task{}, fmt.Errorf("scanning task: %w", err)
	}
	return seq, t, nil
}

// taskAt returns the seq and task at a 1-based position.
func taskAt(q querier, position int) (int64, types.Task, error) {
	if position < 1 {
		return 0, types.Task{}, types.ErrNotFound
	}
	var (
		seq int64
		t   types.Task
	)
	err := q.QueryRow(
		"SELECT seq, description, completed FROM tasks ORDER BY seq LIMIT 1 OFFSET ?", position-1,
	).Scan(&seq, &t.Description, &t.IsCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, types.Task{}, types.ErrNotFound
	}
	if err != nil {
		return 0, types.Task{}, fmt.Errorf("getting task %d: %w", position, err)
	}
	return seq, t, nil
}

func (tt *tasksTable) AddTask(description string) (int, types.Task, error) {
	db, unlock, err := tt.lock()
	if err != nil {
		return 0, types.Task{}, err
	}
	defer unlock()

	task, err := types.NewTask(description)
	if err != nil {
		return 0, types.Task{}, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, types.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("INSERT INTO tasks (description) VALUES (?)", task.Description); err != nil {
		return 0, types.Task{}, fmt.Errorf("inserting task: %w", err)
	}
	n, err := count(tx, "tasks")
	if err != nil {
		return 0, types.Task{}, err
	}
	if err := tx.Commit(); err != nil {
		return 0, types.Task{}, fmt.Errorf("committing task: %w", err)
	}
	return n, task, nil
}

func (tt *tasksTable) FindTask(position int) (types.Task, error) {
	db, unlock, err := tt.lock()
	if err != nil {
		return types.Task{}, err
	}
	defer unlock()

	_, t, err := taskAt(db, position)
	return t, err
}

func (tt *tasksTable) CompleteTask(position int) (types.Task, error) {
	db, unlock, err := tt.lock()
	if err != nil {
		return types.Task{}, err
	}
	defer unlock()

	tx, err := db.Begin()
	if err != nil {
		return types.Task{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	seq, t, err := taskAt(tx, position)
	if err != nil {
		return types.Task{}, err
	}
	t.Complete()
	if _, err := tx.Exec("UPDATE tasks SET completed = 1 WHERE seq = ?", seq); err != nil {
		return types.Task{}, fmt.Errorf("completing task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return types.Task{}, fmt.Errorf("committing task: %w", err)
	}
	return t, nil
}

func (tt *tasksTable) Tasks() iter.Seq2[types.Task, error] {
	return snapshot(func() ([]types.Task, error) {
		db, unlock, err := tt.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()
		_, all, err := queryAll(db, scanTask, "SELECT seq, description, completed FROM tasks ORDER BY seq")
		return all, err
	})
}

func (tt *tasksTable) Len() (int, error) {
	db, unlock, err := tt.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return count(db, "tasks")
}

// Task entity for the task list tracker.
package types

import "strings"

// Task status labels.
const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"
)

// Task is an item on the task list. Tasks are addressed by their 1-based
// position in the list.
type Task struct {
	Description string
	IsCompleted bool
}

// NewTask returns a pending task with the given description.
// Returns ErrInvalidDescription if the description is blank.
func NewTask(description string) (Task, error) {
	if strings.TrimSpace(description) == "" {
		return Task{}, ErrInvalidDescription
	}
	return Task{Description: description}, nil
}

// Complete marks the task as done. Idempotent.
func (t *Task) Complete() {
	t.IsCompleted = true
}

// Status returns TaskStatusCompleted or TaskStatusPending.
func (t Task) Status() string {
	if t.IsCompleted {
		return TaskStatusCompleted
	}
	return TaskStatusPending
}

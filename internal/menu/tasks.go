package menu

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

// Tasks drives the task list menu.
type Tasks struct {
	store types.TaskList
	p     *Prompter
	log   *zap.Logger
}

// NewTasks returns a controller for store.
func NewTasks(store types.TaskList, p *Prompter, log *zap.Logger) *Tasks {
	return &Tasks{store: store, p: p, log: log}
}

// Run loops over the task menu until exit or end of input.
func (c *Tasks) Run(ctx context.Context) error {
	m := &Menu{
		Title:  "Task Manager",
		Prompt: "Choose an option: ",
		Options: []Option{
			{Label: "Add Task", Run: c.add},
			{Label: "Mark Task as Complete", Run: c.complete},
			{Label: "Display Tasks", Run: c.display},
		},
		Exit:    "Quit",
		Goodbye: "Exiting Task Manager...",
	}
	return m.Run(ctx, c.p)
}

func (c *Tasks) add(ctx context.Context) error {
	desc, err := c.p.Line("Enter your task: ")
	if err != nil {
		return err
	}
	pos, _, err := c.store.AddTask(desc)
	if errors.Is(err, types.ErrInvalidDescription) {
		c.p.Println("Task description cannot be empty.")
		return nil
	}
	if err != nil {
		return err
	}
	c.log.Debug("task added", zap.Int("position", pos), zap.String("description", desc))
	c.p.Println("Task added successfully.")
	return nil
}

func (c *Tasks) complete(ctx context.Context) error {
	n, err := c.store.Len()
	if err != nil {
		return err
	}
	if n == 0 {
		c.p.Println("No tasks available to mark as completed.")
		return nil
	}

	c.p.Println("Enter the task number to mark as completed:")
	if err := c.display(ctx); err != nil {
		return err
	}
	pos, err := c.p.Int("")
	if err == nil {
		_, err = c.store.CompleteTask(pos)
	}
	switch {
	case errors.Is(err, ErrMalformedInput), errors.Is(err, types.ErrNotFound):
		c.log.Debug("task not completed", zap.Error(err))
		c.p.Println("Invalid task number. Please try again.")
		return nil
	case err != nil:
		return err
	}
	c.log.Debug("task completed", zap.Int("position", pos))
	c.p.Println("Task marked as completed.")
	return nil
}

func (c *Tasks) display(ctx context.Context) error {
	tasks, err := types.Collect(c.store.Tasks())
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		c.p.Println("No tasks available.")
		return nil
	}
	c.p.Println("Your Tasks:")
	for i, t := range tasks {
		c.p.Printf("%d. %s [%s]\n", i+1, t.Description, t.Status())
	}
	return nil
}

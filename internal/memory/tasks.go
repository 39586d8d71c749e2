package memory

import (
	"iter"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.TaskList = (*taskStore)(nil)

// taskStore keeps tasks in list order. Positions are 1-based.
type taskStore struct {
	backend *Backend
	tasks   List[types.Task]
}

func (s *taskStore) check() error {
	if s.backend.tasks != s {
		return types.ErrDetached
	}
	return nil
}

func (s *taskStore) AddTask(description string) (int, types.Task, error) {
	if err := s.check(); err != nil {
		return 0, types.Task{}, err
	}
	task, err := types.NewTask(description)
	if err != nil {
		return 0, types.Task{}, err
	}
	s.tasks.Append(task)
	return s.tasks.Len(), task, nil
}

// at returns the task at a 1-based position.
func (s *taskStore) at(position int) (*types.Task, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if position < 1 || position > s.tasks.Len() {
		return nil, types.ErrNotFound
	}
	return s.tasks.At(position - 1), nil
}

func (s *taskStore) FindTask(position int) (types.Task, error) {
	t, err := s.at(position)
	if err != nil {
		return types.Task{}, err
	}
	return *t, nil
}

func (s *taskStore) CompleteTask(position int) (types.Task, error) {
	t, err := s.at(position)
	if err != nil {
		return types.Task{}, err
	}
	t.Complete()
	return *t, nil
}

func (s *taskStore) Tasks() iter.Seq2[types.Task, error] {
	return func(yield func(types.Task, error) bool) {
		if err := s.check(); err != nil {
			yield(types.Task{}, err)
			return
		}
		for t := range s.tasks.All(nil) {
			if !yield(t, nil) {
				return
			}
		}
	}
}

func (s *taskStore) Len() (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.tasks.Len(), nil
}

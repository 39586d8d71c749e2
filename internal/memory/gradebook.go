package memory

import (
	"iter"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.Gradebook = (*gradebookStore)(nil)

// gradebookStore keeps students in insertion order with unique IDs.
type gradebookStore struct {
	backend  *Backend
	students List[types.Student]
}

func (s *gradebookStore) check() error {
	if s.backend.gradebook != s {
		return types.ErrDetached
	}
	return nil
}

func (s *gradebookStore) find(id int) int {
	return s.students.Index(func(st types.Student) bool { return st.ID == id })
}

func (s *gradebookStore) AddStudent(st types.Student) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return err
	}
	if s.find(st.ID) >= 0 {
		return types.ErrDuplicateID
	}
	s.students.Append(st.Clone())
	return nil
}

func (s *gradebookStore) FindStudent(id int) (types.Student, error) {
	if err := s.check(); err != nil {
		return types.Student{}, err
	}
	i := s.find(id)
	if i < 0 {
		return types.Student{}, types.ErrNotFound
	}
	return s.students.At(i).Clone(), nil
}

func (s *gradebookStore) AddGrade(id int, g types.Grade) (types.Student, error) {
	if err := s.check(); err != nil {
		return types.Student{}, err
	}
	if err := g.Validate(); err != nil {
		return types.Student{}, err
	}
	i := s.find(id)
	if i < 0 {
		return types.Student{}, types.ErrNotFound
	}
	st := s.students.At(i)
	st.AddGrade(g)
	return st.Clone(), nil
}

func (s *gradebookStore) Students() iter.Seq2[types.Student, error] {
	return func(yield func(types.Student, error) bool) {
		if err := s.check(); err != nil {
			yield(types.Student{}, err)
			return
		}
		for st := range s.students.All(types.Student.Clone) {
			if !yield(st, nil) {
				return
			}
		}
	}
}

func (s *gradebookStore) Len() (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	return s.students.Len(), nil
}

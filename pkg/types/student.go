// Student and Grade entities for the grade tracker.
package types

import (
	"math"
	"slices"
)

// Grade is a single scored subject. Grades have no key of their own; they
// belong to exactly one Student in insertion order.
type Grade struct {
	Subject string
	Score   float64
}

// Validate returns ErrInvalidScore when the score is NaN or infinite.
func (g Grade) Validate() error {
	if math.IsNaN(g.Score) || math.IsInf(g.Score, 0) {
		return ErrInvalidScore
	}
	return nil
}

// Student is identified by a unique integer ID.
type Student struct {
	ID     int
	Name   string
	Grades []Grade
}

// Validate checks every grade the student already carries.
func (s Student) Validate() error {
	for _, g := range s.Grades {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AddGrade appends a grade to the student's ordered grade list.
func (s *Student) AddGrade(g Grade) {
	s.Grades = append(s.Grades, g)
}

// Average returns the mean score across all grades, or 0 when the student
// has none.
func (s Student) Average() float64 {
	if len(s.Grades) == 0 {
		return 0
	}
	var total float64
	for _, g := range s.Grades {
		total += g.Score
	}
	return total / float64(len(s.Grades))
}

// Clone returns a copy of the student that shares no grade storage with s.
func (s Student) Clone() Student {
	s.Grades = slices.Clone(s.Grades)
	return s
}

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"iter"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

var _ types.Gradebook = (*gradebookTable)(nil)

// gradebookTable stores students and their grades in two tables joined on
// student_id.
type gradebookTable struct {
	backend *Backend
}

func (gt *gradebookTable) lock() (*sql.DB, func(), error) {
	return gt.backend.use(func() bool { return gt.backend.gradebook == gt })
}

func scanStudent(rows *sql.Rows) (int64, types.Student, error) {
	var (
		seq int64
		st  types.Student
	)
	if err := rows.Scan(&seq, &st.ID, &st.Name); err != nil {
		return 0, types.Student{}, fmt.Errorf("scanning student: %w", err)
	}
	return seq, st, nil
}

// gradeRow is a grade with the student it belongs to.
type gradeRow struct {
	StudentID int
	types.Grade
}

func scanGrade(rows *sql.Rows) (int64, gradeRow, error) {
	var (
		seq int64
		g   gradeRow
	)
	if err := rows.Scan(&seq, &g.StudentID, &g.Subject, &g.Score); err != nil {
		return 0, gradeRow{}, fmt.Errorf("scanning grade: %w", err)
	}
	return seq, g, nil
}

// loadStudent reads one student with grades in insertion order.
func loadStudent(q querier, id int) (types.Student, error) {
	st := types.Student{ID: id}
	err := q.QueryRow("SELECT name FROM students WHERE student_id = ?", id).Scan(&st.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Student{}, types.ErrNotFound
	}
	if err != nil {
		return types.Student{}, fmt.Errorf("getting student %d: %w", id, err)
	}

	_, grades, err := queryAll(q, scanGrade,
		"SELECT seq, student_id, subject, score FROM grades WHERE student_id = ? ORDER BY seq", id)
	if err != nil {
		return types.Student{}, fmt.Errorf("getting grades for student %d: %w", id, err)
	}
	for _, g := range grades {
		st.AddGrade(g.Grade)
	}
	return st, nil
}

func insertGrade(q querier, id int, g types.Grade) error {
	if _, err := q.Exec(
		"INSERT INTO grades (student_id, subject, score) VALUES (?, ?, ?)",
		id, g.Subject, g.Score,
	); err != nil {
		return fmt.Errorf("inserting grade: %w", err)
	}
	return nil
}

func (gt *gradebookTable) AddStudent(st types.Student) error {
	db, unlock, err := gt.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if err := st.Validate(); err != nil {
		return err
	}
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow("SELECT 1 FROM students WHERE student_id = ?", st.ID).Scan(&exists)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking student existence: %w", err)
	}
	if exists {
		return types.ErrDuplicateID
	}

	if _, err := tx.Exec("INSERT INTO students (student_id, name) VALUES (?, ?)", st.ID, st.Name); err != nil {
		return fmt.Errorf("inserting student: %w", err)
	}
	for _, g := range st.Grades {
		if err := insertGrade(tx, st.ID, g); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing student: %w", err)
	}
	return nil
}

func (gt *gradebookTable) FindStudent(id int) (types.Student, error) {
	db, unlock, err := gt.lock()
	if err != nil {
		return types.Student{}, err
	}
	defer unlock()
	return loadStudent(db, id)
}

func (gt *gradebookTable) AddGrade(id int, g types.Grade) (types.Student, error) {
	db, unlock, err := gt.lock()
	if err != nil {
		return types.Student{}, err
	}
	defer unlock()

	if err := g.Validate(); err != nil {
		return types.Student{}, err
	}
	tx, err := db.Begin()
	if err != nil {
		return types.Student{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := loadStudent(tx, id); err != nil {
		return types.Student{}, err
	}
	if err := insertGrade(tx, id, g); err != nil {
		return types.Student{}, err
	}
	st, err := loadStudent(tx, id)
	if err != nil {
		return types.Student{}, err
	}
	if err := tx.Commit(); err != nil {
		return types.Student{}, fmt.Errorf("committing grade: %w", err)
	}
	return st, nil
}

func (gt *gradebookTable) Students() iter.Seq2[types.Student, error] {
	return snapshot(func() ([]types.Student, error) {
		db, unlock, err := gt.lock()
		if err != nil {
			return nil, err
		}
		defer unlock()

		_, students, err := queryAll(db, scanStudent, "SELECT seq, student_id, name FROM students ORDER BY seq")
		if err != nil {
			return nil, err
		}
		_, grades, err := queryAll(db, scanGrade, "SELECT seq, student_id, subject, score FROM grades ORDER BY seq")
		if err != nil {
			return nil, err
		}
		byID := make(map[int][]types.Grade, len(students))
		for _, g := range grades {
			byID[g.StudentID] = append(byID[g.StudentID], g.Grade)
		}
		for i := range students {
			students[i].Grades = byID[students[i].ID]
		}
		return students, nil
	})
}

func (gt *gradebookTable) Len() (int, error) {
	db, unlock, err := gt.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return count(db, "students")
}

package menu

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func runGrades(t *testing.T, lines ...string) (types.Gradebook, string) {
	t.Helper()
	store, err := attach(t).Gradebook()
	require.NoError(t, err)
	p, out := script(lines...)
	require.NoError(t, NewGrades(store, p, zap.NewNop()).Run(context.Background()))
	return store, out.String()
}

func TestGradesSession(t *testing.T) {
	store, out := runGrades(t,
		"1", "Ann", "one", "1",
		"1", "Ben", "2",
		"2", "1", "Math", "high", "90",
		"2", "1", "Art", "85.5",
		"3",
		"4",
	)

	assert.Contains(t, out, "Student added successfully!")
	assert.Contains(t, out, "Invalid input! Please enter a valid integer.")
	assert.Contains(t, out, "Invalid input! Please enter a valid number.")
	assert.Contains(t, out, "Select a student:\n1. Ann (ID: 1)\n2. Ben (ID: 2)\n")
	assert.Contains(t, out, "Grade added successfully!")
	assert.Contains(t, out, "Name: Ann, ID: 1\nGrades:\nSubject: Math, Score: 90\nSubject: Art, Score: 85.5\nAverage Score: 87.75\n")
	assert.Contains(t, out, "Name: Ben, ID: 2\nGrades:\nNo grades available.\n"+strings.Repeat("-", 30))
	assert.Contains(t, out, "Exiting the application, Thank you.")

	st, err := store.FindStudent(1)
	require.NoError(t, err)
	assert.Len(t, st.Grades, 2)
}

func TestGradesDuplicateID(t *testing.T) {
	store, out := runGrades(t,
		"1", "Ann", "1",
		"1", "Ben", "1",
		"4",
	)

	assert.Contains(t, out, "Student with the same ID already exists!")
	n, err := store.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGradesEmptyList(t *testing.T) {
	_, out := runGrades(t,
		"2",
		"3",
		"4",
	)

	assert.Equal(t, 2, strings.Count(out, "No students found!"))
	assert.NotContains(t, out, "Enter the subject: ")
}

func TestGradesSelectsStudentByListNumber(t *testing.T) {
	store, out := runGrades(t,
		"1", "Ann", "42",
		"1", "Ben", "7",
		"2", "0", "3", "x", "2", "Math", "88",
		"4",
	)

	assert.Contains(t, out, "Select a student:\n1. Ann (ID: 42)\n2. Ben (ID: 7)\n")
	assert.Equal(t, 2, strings.Count(out, "Invalid selection! Choose a number from 1 to 2."))
	assert.Contains(t, out, "Invalid input! Please enter a valid integer.")
	assert.Contains(t, out, "Grade added successfully!")
	assert.NotContains(t, out, "Invalid choice! Try again.")

	ben, err := store.FindStudent(7)
	require.NoError(t, err)
	assert.Equal(t, []types.Grade{{Subject: "Math", Score: 88}}, ben.Grades)
	ann, err := store.FindStudent(42)
	require.NoError(t, err)
	assert.Empty(t, ann.Grades)
}

package storetest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func gradebook(t *testing.T, backendName string, factory Factory) types.Gradebook {
	t.Helper()
	gb, err := Attach(t, factory, Config(backendName)).Gradebook()
	require.NoError(t, err)
	return gb
}

func testGradebook(t *testing.T, backendName string, factory Factory) {
	t.Run("add then find round trips", func(t *testing.T) {
		gb := gradebook(t, backendName, factory)
		require.NoError(t, gb.AddStudent(types.Student{ID: 1, Name: "Ann"}))

		got, err := gb.FindStudent(1)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ID)
		assert.Equal(t, "Ann", got.Name)
		assert.Empty(t, got.Grades)
		assert.Zero(t, got.Average())
	})

	t.Run("non-finite scores are rejected without mutation", func(t *testing.T) {
		gb := gradebook(t, backendName, factory)
		require.NoError(t, gb.AddStudent(types.Student{ID: 1, Name: "Ann"}))

		for _, score := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := gb.AddGrade(1, types.Grade{Subject: "Math", Score: score})
			assert.ErrorIs(t, err, types.ErrInvalidScore, "%v", score)
		}
		got, err := gb.FindStudent(1)
		require.NoError(t, err)
		assert.Empty(t, got.Grades)

		err = gb.AddStudent(types.Student{ID: 2, Name: "Ben", Grades: []types.Grade{{Subject: "Art", Score: math.NaN()}}})
		assert.ErrorIs(t, err, types.ErrInvalidScore)
		_, err = gb.FindStudent(2)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("duplicate ID is rejected without mutation", func(t *testing.T) {
		gb := gradebook(t, backendName, factory)
		require.NoError(t, gb.AddStudent(types.Student{ID: 1, Name: "Ann"}))
		assert.ErrorIs(t, gb.AddStudent(types.Student{ID: 1, Name: "Ben"}), types.ErrDuplicateID)

		n, err := gb.Len()
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		got, err := gb.FindStudent(1)
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
	})

	t.Run("grades accumulate and average", func(t *testing.T) {
		gb := gradebook(t, backendName, factory)
		require.NoError(t, gb.AddStudent(types.Student{ID: 1, Name: "Ann"}))

		_, err := gb.AddGrade(1, types.Grade{Subject: "Math", Score: 90})
		require.NoError(t, err)
		got, err := gb.AddGrade(1, types.Grade{Subject: "Art", Score: 80})
		require.NoError(t, err)
		assert.InDelta(t, 85.0, got.Average(), 1e-9)

		got, err = gb.FindStudent(1)
		require.NoError(t, err)
		assert.Equal(t, []types.Grade{{Subject: "Math", Score: 90}, {Subject: "Art", Score: 80}}, got.Grades)
		assert.InDelta(t, 85.0, got.Average(), 1e-9)
	})

	t.Run("grade for unknown student reports not found", func(t *testing.T) {
		gb := gradebook(t, backendName, factory)
		_, err := gb.AddGrade(42, types.Grade{Subject: "Math", Score: 50})
		assert.ErrorIs(t, err, types.ErrNotFound)
		_, err = gb.FindStudent(42)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("returned students are isolated copies", func(t *testing.T) {
		gb := gradebook(t, backendName, factory)
		st := types.Student{ID: 7, Name: "Cat", Grades: []types.Grade{{Subject: "Math", Score: 70}}}
		require.NoError(t, gb.AddStudent(st))
		st.Grades[0].Score = 0

		got, err := gb.FindStudent(7)
		require.NoError(t, err)
		require.Len(t, got.Grades, 1)
		assert.InDelta(t, 70.0, got.Grades[0].Score, 1e-9)

		got.AddGrade(types.Grade{Subject: "Art", Score: 10})
		got.Grades[0].Score = 1
		again, err := gb.FindStudent(7)
		require.NoError(t, err)
		assert.Equal(t, []types.Grade{{Subject: "Math", Score: 70}}, again.Grades)
	})

	t.Run("students are listed in insertion order", func(t *testing.T) {
		gb := gradebook(t, backendName, factory)
		seq := gb.Students()
		for _, st := range []types.Student{{ID: 3, Name: "C"}, {ID: 1, Name: "A"}, {ID: 2, Name: "B"}} {
			require.NoError(t, gb.AddStudent(st))
		}
		_, err := gb.AddGrade(1, types.Grade{Subject: "Math", Score: 60})
		require.NoError(t, err)

		for range 2 {
			all, err := types.Collect(seq)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []int{3, 1, 2}, []int{all[0].ID, all[1].ID, all[2].ID})
			assert.Len(t, all[1].Grades, 1)
		}
	})
}

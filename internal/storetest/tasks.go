package storetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/pkg/types"
)

func taskList(t *testing.T, backendName string, factory Factory) types.TaskList {
	t.Helper()
	tl, err := Attach(t, factory, Config(backendName)).Tasks()
	require.NoError(t, err)
	return tl
}

func testTasks(t *testing.T, backendName string, factory Factory) {
	t.Run("positions are one-based in add order", func(t *testing.T) {
		tl := taskList(t, backendName, factory)
		pos, task, err := tl.AddTask("Buy milk")
		require.NoError(t, err)
		assert.Equal(t, 1, pos)
		assert.Equal(t, types.TaskStatusPending, task.Status())

		pos, _, err = tl.AddTask("Walk dog")
		require.NoError(t, err)
		assert.Equal(t, 2, pos)

		got, err := tl.FindTask(2)
		require.NoError(t, err)
		assert.Equal(t, "Walk dog", got.Description)
	})

	t.Run("blank description is rejected", func(t *testing.T) {
		tl := taskList(t, backendName, factory)
		for _, desc := range []string{"", "   ", "\t"} {
			_, _, err := tl.AddTask(desc)
			assert.ErrorIs(t, err, types.ErrInvalidDescription, "%q", desc)
		}
		n, err := tl.Len()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("complete is idempotent", func(t *testing.T) {
		tl := taskList(t, backendName, factory)
		_, _, err := tl.AddTask("Buy milk")
		require.NoError(t, err)

		for range 2 {
			got, err := tl.CompleteTask(1)
			require.NoError(t, err)
			assert.True(t, got.IsCompleted)
			assert.Equal(t, types.TaskStatusCompleted, got.Status())
		}
		got, err := tl.FindTask(1)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted)
	})

	t.Run("out of range positions report not found", func(t *testing.T) {
		tl := taskList(t, backendName, factory)
		_, _, err := tl.AddTask("Buy milk")
		require.NoError(t, err)

		for _, pos := range []int{0, -1, 2} {
			_, err := tl.CompleteTask(pos)
			assert.ErrorIs(t, err, types.ErrNotFound, "position %d", pos)
			_, err = tl.FindTask(pos)
			assert.ErrorIs(t, err, types.ErrNotFound, "position %d", pos)
		}
		got, err := tl.FindTask(1)
		require.NoError(t, err)
		assert.False(t, got.IsCompleted)
	})

	t.Run("tasks are listed in order with their status", func(t *testing.T) {
		tl := taskList(t, backendName, factory)
		seq := tl.Tasks()
		for _, desc := range []string{"one", "two", "three"} {
			_, _, err := tl.AddTask(desc)
			require.NoError(t, err)
		}
		_, err := tl.CompleteTask(2)
		require.NoError(t, err)

		for range 2 {
			all, err := types.Collect(seq)
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, "one", all[0].Description)
			assert.False(t, all[0].IsCompleted)
			assert.Equal(t, "two", all[1].Description)
			assert.True(t, all[1].IsCompleted)
			assert.Equal(t, "three", all[2].Description)
		}
	})
}

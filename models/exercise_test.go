package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultExercisesCoverClosedIDSet(t *testing.T) {
	require.Len(t, DefaultExercises, 5)

	seen := map[int]bool{}
	for _, ex := range DefaultExercises {
		assert.GreaterOrEqual(t, ex.ID, ExerciseNeckRotation)
		assert.LessOrEqual(t, ex.ID, ExerciseAnklePumps)
		assert.False(t, seen[ex.ID], "duplicate exercise id %d", ex.ID)
		seen[ex.ID] = true

		assert.NotEmpty(t, ex.Name)
		assert.NotEmpty(t, ex.Description)
		assert.NotEmpty(t, ex.Illustration)
	}
}

func TestExerciseByID(t *testing.T) {
	ex, ok := ExerciseByID(DefaultExercises, ExerciseHipBridge)
	require.True(t, ok)
	assert.Equal(t, "Hip Bridge", ex.Name)

	_, ok = ExerciseByID(DefaultExercises, 99)
	assert.False(t, ok)
}

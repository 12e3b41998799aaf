package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// neckPose builds shoulders 200px apart (mid at x=200) with the nose offset
// from the midpoint by the given amount, so offset/2 == rotation%.
func neckPose(noseOffset float64, extra ...models.Keypoint) models.Pose {
	keypoints := []models.Keypoint{
		kp(models.Nose, 200+noseOffset, 100, 0.9),
		kp(models.LeftShoulder, 100, 200, 0.9),
		kp(models.RightShoulder, 300, 200, 0.9),
	}
	return pose(append(keypoints, extra...)...)
}

func TestNeckRotationBands(t *testing.T) {
	tests := []struct {
		name       string
		noseOffset float64
		wantValid  bool
		wantInMsg  string
	}{
		{"excellent at 45 percent", 90, true, "Excellent rotation"},
		{"good at 35 percent", 70, true, "Good rotation"},
		{"nice start at 25 percent", 50, true, "Nice start"},
		{"directional prompt at 15 percent", 30, false, "toward the right"},
		{"directional prompt toward left", -30, false, "toward the left"},
		{"generic prompt at 5 percent", 10, false, "Turn your head slowly"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := neckRotationRule.Validate(neckPose(tc.noseOffset))
			assert.Equal(t, tc.wantValid, result.IsValid)
			assert.Contains(t, result.Message, tc.wantInMsg)
		})
	}
}

func TestNeckRotationConfidenceGate(t *testing.T) {
	p := pose(
		kp(models.Nose, 200, 100, 0.3),
		kp(models.LeftShoulder, 100, 200, 0.9),
		kp(models.RightShoulder, 300, 200, 0.9),
	)

	result := neckRotationRule.Validate(p)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Message, "can't see: nose")
}

func TestNeckRotationDegenerateShoulders(t *testing.T) {
	p := pose(
		kp(models.Nose, 200, 100, 0.9),
		kp(models.LeftShoulder, 200, 200, 0.9),
		kp(models.RightShoulder, 200, 200, 0.9),
	)

	result := neckRotationRule.Validate(p)
	require.False(t, result.IsValid)
	assert.Equal(t, neckRotationRule.Unavailable, result.Message)
}

func TestNeckRotationHeadLevelWarning(t *testing.T) {
	t.Run("tilted head appends warning", func(t *testing.T) {
		p := neckPose(90,
			kp(models.LeftEar, 180, 90, 0.9),
			kp(models.RightEar, 220, 120, 0.9),
		)
		result := neckRotationRule.Validate(p)
		assert.True(t, result.IsValid, "warning must not flip the verdict")
		assert.Contains(t, result.Message, "Keep your head level")
	})

	t.Run("level ears stay quiet", func(t *testing.T) {
		p := neckPose(90,
			kp(models.LeftEar, 180, 90, 0.9),
			kp(models.RightEar, 220, 95, 0.9),
		)
		result := neckRotationRule.Validate(p)
		assert.NotContains(t, result.Message, "Keep your head level")
	})

	t.Run("low-confidence ear disables the check", func(t *testing.T) {
		p := neckPose(90,
			kp(models.LeftEar, 180, 90, 0.9),
			kp(models.RightEar, 220, 150, 0.2),
		)
		result := neckRotationRule.Validate(p)
		assert.NotContains(t, result.Message, "Keep your head level")
	})
}

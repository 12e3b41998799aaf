package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// seatedPose builds a seated figure (hips above knees) whose left leg holds
// the given hip-knee-ankle angle. The right leg has no ankle, so only the
// left leg is measurable unless extra joints are supplied.
func seatedPose(leftLegAngle float64, extra ...models.Keypoint) models.Pose {
	return pose(append(legAt(legs[0], leftLegAngle, 100),
		append([]models.Keypoint{
			kp(models.RightHip, 150, 100, 0.9),
			kp(models.RightKnee, 150, 200, 0.9),
		}, extra...)...)...)
}

// legAt places hip/knee/ankle keypoints so the knee angle equals degrees:
// the thigh hangs straight down from the hip and the shin swings forward.
func legAt(leg legJoints, degrees, hipX float64) []models.Keypoint {
	rad := (degrees - 90) * math.Pi / 180
	kneeX, kneeY := hipX, 200.0
	return []models.Keypoint{
		kp(leg.hip, hipX, 100, 0.9),
		kp(leg.knee, kneeX, kneeY, 0.9),
		kp(leg.ankle, kneeX+100*math.Cos(rad), kneeY+100*math.Sin(rad), 0.9),
	}
}

func TestLegAtProducesRequestedAngle(t *testing.T) {
	for _, degrees := range []float64{90, 130, 155, 165, 180} {
		p := pose(legAt(legs[0], degrees, 100)...)
		angle, ok := JointAngle(p, models.LeftHip, models.LeftKnee, models.LeftAnkle)
		require.True(t, ok)
		assert.InDelta(t, degrees, angle, 1e-6)
	}
}

func TestKneeExtensionBands(t *testing.T) {
	tests := []struct {
		name      string
		angle     float64
		wantValid bool
		wantInMsg string
	}{
		{"excellent straight leg at 180", 180, true, "Excellent straight leg"},
		{"excellent just inside the band", 176, true, "Excellent straight leg"},
		{"extended but not straight at 165", 165, true, "straighten a bit more"},
		{"almost there at 155", 155, false, "25° of bend left"},
		{"partially extended at 130", 130, false, "50° of bend remaining"},
		{"still in start position at 95", 95, false, "Still in the start position"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := kneeExtensionRule.Validate(seatedPose(tc.angle))
			assert.Equal(t, tc.wantValid, result.IsValid)
			assert.Contains(t, result.Message, tc.wantInMsg)
		})
	}
}

// The excellent band is inclusive at its 175-degree edge, unlike the
// strictly-exclusive bands elsewhere.
func TestKneeExtensionExcellentBandInclusiveEdge(t *testing.T) {
	excellent := kneeExtensionRule.Bands[1]
	assert.True(t, excellent.matches(175))
	assert.True(t, excellent.matches(180))
	assert.False(t, excellent.matches(174.999))
}

func TestKneeExtensionNoMeasurableLeg(t *testing.T) {
	p := pose(
		kp(models.LeftHip, 100, 100, 0.9),
		kp(models.RightHip, 150, 100, 0.9),
		kp(models.LeftKnee, 100, 200, 0.9),
		kp(models.RightKnee, 150, 200, 0.9),
		// no ankles
	)

	result := kneeExtensionRule.Validate(p)
	require.False(t, result.IsValid)
	assert.Equal(t, kneeExtensionRule.Unavailable, result.Message)
}

func TestKneeExtensionRepositionListsMissingJoints(t *testing.T) {
	p := pose(
		kp(models.LeftHip, 100, 100, 0.9),
		kp(models.LeftKnee, 100, 200, 0.9),
	)

	result := kneeExtensionRule.Validate(p)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Message, "right hip")
	assert.Contains(t, result.Message, "right knee")
}

func TestKneeExtensionPostureWarning(t *testing.T) {
	// Hips at the same height as the knees: not seated upright.
	p := pose(
		kp(models.LeftHip, 100, 200, 0.9),
		kp(models.RightHip, 150, 200, 0.9),
		kp(models.LeftKnee, 100, 200, 0.9),
		kp(models.RightKnee, 150, 200, 0.9),
		kp(models.LeftAnkle, 200, 200, 0.9),
	)

	result := kneeExtensionRule.Validate(p)
	assert.Contains(t, result.Message, "Sit upright")
}

func TestKneeExtensionRestingLegNote(t *testing.T) {
	t.Run("one extended one bent", func(t *testing.T) {
		keypoints := append(legAt(legs[0], 180, 100), legAt(legs[1], 95, 150)...)
		result := kneeExtensionRule.Validate(pose(keypoints...))
		assert.True(t, result.IsValid)
		assert.Contains(t, result.Message, "Other leg staying bent")
	})

	t.Run("only one measurable leg stays quiet", func(t *testing.T) {
		result := kneeExtensionRule.Validate(seatedPose(180))
		assert.NotContains(t, result.Message, "Other leg")
	})
}

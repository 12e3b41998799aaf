package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

func kp(name models.JointName, x, y, score float64) models.Keypoint {
	return models.Keypoint{Name: name, X: x, Y: y, Score: score}
}

func pose(keypoints ...models.Keypoint) models.Pose {
	return models.Pose{Keypoints: keypoints}
}

func TestLookup(t *testing.T) {
	p := pose(
		kp(models.Nose, 10, 20, 0.9),
		kp(models.LeftShoulder, 5, 50, 0.1),
	)

	nose, ok := Lookup(p, models.Nose)
	require.True(t, ok)
	assert.Equal(t, 10.0, nose.X)
	assert.Equal(t, 20.0, nose.Y)

	// Lookup ignores the confidence gate
	_, ok = Lookup(p, models.LeftShoulder)
	assert.True(t, ok)

	_, ok = Lookup(p, models.RightAnkle)
	assert.False(t, ok)
}

func TestVisibleAppliesConfidenceGate(t *testing.T) {
	p := pose(
		kp(models.Nose, 10, 20, 0.39),
		kp(models.LeftShoulder, 5, 50, 0.4),
	)

	_, ok := Visible(p, models.Nose)
	assert.False(t, ok, "score below 0.4 must be treated as absent")

	_, ok = Visible(p, models.LeftShoulder)
	assert.True(t, ok, "score of exactly 0.4 passes the gate")

	_, ok = Visible(p, models.RightAnkle)
	assert.False(t, ok)
}

func TestAngleConfidenceGate(t *testing.T) {
	good := kp(models.LeftHip, 0, 0, 0.9)
	mid := kp(models.LeftKnee, 0, 100, 0.9)
	bad := kp(models.LeftAnkle, 0, 200, 0.39)

	for _, tc := range []struct {
		name       string
		p1, p2, p3 models.Keypoint
	}{
		{"first gated", bad, mid, good},
		{"vertex gated", good, bad, mid},
		{"third gated", good, mid, bad},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := Angle(tc.p1, tc.p2, tc.p3)
			assert.False(t, ok)
		})
	}
}

func TestAngleValues(t *testing.T) {
	tests := []struct {
		name       string
		p1, p2, p3 models.Keypoint
		want       float64
	}{
		{
			name: "straight line reads 180",
			p1:   kp(models.LeftHip, 0, 0, 1),
			p2:   kp(models.LeftKnee, 100, 0, 1),
			p3:   kp(models.LeftAnkle, 200, 0, 1),
			want: 180,
		},
		{
			name: "right angle",
			p1:   kp(models.LeftShoulder, 0, -100, 1),
			p2:   kp(models.LeftElbow, 0, 0, 1),
			p3:   kp(models.LeftWrist, 100, 0, 1),
			want: 90,
		},
		{
			name: "raw difference above 180 reflects back",
			p1:   kp(models.LeftHip, -100, -100, 1),
			p2:   kp(models.LeftKnee, 0, 0, 1),
			p3:   kp(models.LeftAnkle, -100, 100, 1),
			want: 90,
		},
		{
			name: "45 degrees",
			p1:   kp(models.LeftHip, 100, 0, 1),
			p2:   kp(models.LeftKnee, 0, 0, 1),
			p3:   kp(models.LeftAnkle, 100, 100, 1),
			want: 45,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Angle(tc.p1, tc.p2, tc.p3)
			require.True(t, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 180.0)
		})
	}
}

func TestJointAngleMissingJoint(t *testing.T) {
	p := pose(
		kp(models.LeftHip, 0, 0, 0.9),
		kp(models.LeftKnee, 0, 100, 0.9),
		// no left ankle at all
	)

	_, ok := JointAngle(p, models.LeftHip, models.LeftKnee, models.LeftAnkle)
	assert.False(t, ok)
}

// Package engine turns a single frame's pose keypoints into a validity
// verdict and a coaching message for the selected exercise. Everything in
// this package is pure and stateless: each frame is judged on its own, with
// no smoothing or memory of earlier frames.
package engine

import (
	"math"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// MinConfidence is the confidence gate: a keypoint below this score is
// treated as absent everywhere in the engine.
const MinConfidence = 0.4

// Lookup returns the keypoint with the given name, regardless of its score.
// The second return is false when the pose carries no entry for that joint.
func Lookup(pose models.Pose, joint models.JointName) (models.Keypoint, bool) {
	for _, kp := range pose.Keypoints {
		if kp.Name == joint {
			return kp, true
		}
	}
	return models.Keypoint{}, false
}

// Visible reports whether the joint is present and passes the confidence
// gate, returning it when it does.
func Visible(pose models.Pose, joint models.JointName) (models.Keypoint, bool) {
	kp, ok := Lookup(pose, joint)
	if !ok || kp.Score < MinConfidence {
		return models.Keypoint{}, false
	}
	return kp, true
}

// Angle computes the angle in degrees at vertex p2 between the rays toward
// p1 and p3. The result lies in [0,180]; ok is false when any of the three
// keypoints fails the confidence gate. Coincident points are not
// special-cased — callers must treat a non-finite value as unavailable.
func Angle(p1, p2, p3 models.Keypoint) (float64, bool) {
	if p1.Score < MinConfidence || p2.Score < MinConfidence || p3.Score < MinConfidence {
		return 0, false
	}

	a := math.Atan2(p3.Y-p2.Y, p3.X-p2.X) - math.Atan2(p1.Y-p2.Y, p1.X-p2.X)
	deg := math.Abs(a * 180 / math.Pi)
	if deg > 180 {
		deg = 360 - deg
	}
	return deg, true
}

// JointAngle is Angle over named joints: the angle at the middle joint.
func JointAngle(pose models.Pose, a, vertex, b models.JointName) (float64, bool) {
	pa, ok := Lookup(pose, a)
	if !ok {
		return 0, false
	}
	pv, ok := Lookup(pose, vertex)
	if !ok {
		return 0, false
	}
	pb, ok := Lookup(pose, b)
	if !ok {
		return 0, false
	}
	return Angle(pa, pv, pb)
}

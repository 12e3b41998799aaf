package engine

import (
	"fmt"
	"math"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// Neck rotation is judged by how far the nose has moved off the shoulder
// midpoint, normalized by shoulder width so the verdict does not depend on
// how close the user stands to the camera:
//
//	rotation% = |noseX - shoulderMidX| / shoulderWidth * 100
var neckRotationRule = Rule{
	Exercise: models.ExerciseNeckRotation,
	Required: []models.JointName{models.Nose, models.LeftShoulder, models.RightShoulder},
	Reposition: func(missing []models.JointName) string {
		return fmt.Sprintf("➡️ Face the camera so your head and both shoulders are visible (can't see: %s).", jointLabels(missing))
	},
	Feature:     neckRotationPercent,
	Unavailable: "➡️ Sit up straight and face the camera so your shoulders are level in view.",
	Bands: []Band{
		{Above: 40, Valid: true, Msg: staticMsg("✅ Excellent rotation! Hold for a moment, then return to center.")},
		{Above: 30, Valid: true, Msg: staticMsg("✅ Good rotation — turn just a little further if you can.")},
		{Above: 20, Valid: true, Msg: staticMsg("✅ Nice start — keep turning gently toward your shoulder.")},
		{Above: 10, Valid: false, Msg: func(pose models.Pose, _ float64) string {
			return fmt.Sprintf("➡️ Rotate your head further toward the %s.", rotationDirection(pose))
		}},
		{Above: math.Inf(-1), Valid: false, Msg: staticMsg("➡️ Turn your head slowly toward your left or right shoulder.")},
	},
	Secondary: []SecondaryCheck{headLevelCheck},
}

func neckRotationPercent(pose models.Pose) (float64, bool) {
	nose, _ := Visible(pose, models.Nose)
	left, _ := Visible(pose, models.LeftShoulder)
	right, _ := Visible(pose, models.RightShoulder)

	width := math.Abs(left.X - right.X)
	if width == 0 {
		return 0, false
	}
	midX := (left.X + right.X) / 2
	return math.Abs(nose.X-midX) / width * 100, true
}

// rotationDirection names the side the head is already moving toward, in
// image coordinates.
func rotationDirection(pose models.Pose) string {
	nose, _ := Visible(pose, models.Nose)
	left, _ := Visible(pose, models.LeftShoulder)
	right, _ := Visible(pose, models.RightShoulder)

	if nose.X < (left.X+right.X)/2 {
		return "left"
	}
	return "right"
}

// headLevelCheck warns when the ears sit at visibly different heights,
// meaning the user is tilting rather than rotating. Only fires when both
// ears pass the confidence gate.
func headLevelCheck(pose models.Pose) (string, bool) {
	leftEar, okL := Visible(pose, models.LeftEar)
	rightEar, okR := Visible(pose, models.RightEar)
	if !okL || !okR {
		return "", false
	}
	if math.Abs(leftEar.Y-rightEar.Y) > 10 {
		return "⚠️ Keep your head level while turning — don't tilt it sideways.", true
	}
	return "", false
}

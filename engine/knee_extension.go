package engine

import (
	"fmt"
	"math"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

type legJoints struct {
	label string
	hip   models.JointName
	knee  models.JointName
	ankle models.JointName
}

var legs = []legJoints{
	{"left", models.LeftHip, models.LeftKnee, models.LeftAnkle},
	{"right", models.RightHip, models.RightKnee, models.RightAnkle},
}

// Seated knee extension is judged by the hip-knee-ankle angle of the most
// extended leg: a straight leg reads close to 180 degrees, a seated resting
// leg close to 90. The leg counts as extended above 160 degrees; the
// overextension band guards readings past 200 should the angle measure ever
// stop reflecting into [0,180].
var kneeExtensionRule = Rule{
	Exercise: models.ExerciseKneeExtension,
	Required: []models.JointName{models.LeftHip, models.RightHip, models.LeftKnee, models.RightKnee},
	Reposition: func(missing []models.JointName) string {
		return fmt.Sprintf("➡️ Sit sideways to the camera so your hips and knees are visible (can't see: %s).", jointLabels(missing))
	},
	Feature:     bestLegAngle,
	Unavailable: "➡️ Move back so at least one full leg — hip, knee and ankle — is in view.",
	Bands: []Band{
		{Above: 200, Valid: false, Msg: staticMsg("⚠️ Knee overextended — relax the leg slightly.")},
		{Above: 175, OrEqual: true, Valid: true, Msg: staticMsg("✅ Excellent straight leg! Hold it briefly before lowering.")},
		{Above: 160, Valid: true, Msg: staticMsg("✅ Leg extended — straighten a bit more to finish the movement.")},
		{Above: 150, Valid: false, Msg: func(_ models.Pose, angle float64) string {
			return fmt.Sprintf("➡️ Almost there — about %d° of bend left, straighten your knee fully.", flexionDegrees(angle))
		}},
		{Above: 120, Valid: false, Msg: func(_ models.Pose, angle float64) string {
			return fmt.Sprintf("➡️ Partially extended — %d° of bend remaining, keep lifting your foot.", flexionDegrees(angle))
		}},
		{Above: math.Inf(-1), Valid: false, Msg: staticMsg("➡️ Still in the start position — straighten your knee and raise your foot.")},
	},
	Secondary: []SecondaryCheck{sittingPostureCheck, restingLegCheck},
}

func flexionDegrees(angle float64) int {
	return int(math.Round(180 - angle))
}

// bestLegAngle returns the larger hip-knee-ankle angle of the two legs.
// Angles cap at 180, so larger always means closer to fully extended.
// Unavailable when neither leg has all three joints past the gate.
func bestLegAngle(pose models.Pose) (float64, bool) {
	best := math.Inf(-1)
	found := false
	for _, leg := range legs {
		angle, ok := JointAngle(pose, leg.hip, leg.knee, leg.ankle)
		if !ok {
			continue
		}
		found = true
		if angle > best {
			best = angle
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// sittingPostureCheck verifies the seated start position: hips above the
// knees in the frame (smaller y). Hips and knees are all required joints,
// so the averages are always available here.
func sittingPostureCheck(pose models.Pose) (string, bool) {
	leftHip, _ := Visible(pose, models.LeftHip)
	rightHip, _ := Visible(pose, models.RightHip)
	leftKnee, _ := Visible(pose, models.LeftKnee)
	rightKnee, _ := Visible(pose, models.RightKnee)

	avgHipY := (leftHip.Y + rightHip.Y) / 2
	avgKneeY := (leftKnee.Y + rightKnee.Y) / 2
	if avgHipY >= avgKneeY {
		return "⚠️ Sit upright on a chair with your hips above your knees.", true
	}
	return "", false
}

// restingLegCheck notes when exactly one leg is extended and the other is
// staying bent for support.
func restingLegCheck(pose models.Pose) (string, bool) {
	var extended, bent int
	for _, leg := range legs {
		angle, ok := JointAngle(pose, leg.hip, leg.knee, leg.ankle)
		if !ok {
			continue
		}
		if angle > 160 && angle < 200 {
			extended++
		} else {
			bent++
		}
	}
	if extended == 1 && bent == 1 {
		return "Other leg staying bent — good support.", true
	}
	return "", false
}

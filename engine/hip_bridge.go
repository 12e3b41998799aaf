package engine

import (
	"fmt"
	"math"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// Hip bridge is judged by how far the hip line has risen above the shoulder
// line: lift = avgShoulderY - avgHipY, positive once the hips sit higher in
// the frame than the shoulders. Like shoulder flexion, the raw pixel
// thresholds assume a ~640x480 capture.
var hipBridgeRule = Rule{
	Exercise: models.ExerciseHipBridge,
	Required: []models.JointName{models.LeftHip, models.RightHip, models.LeftShoulder, models.RightShoulder},
	Reposition: func(missing []models.JointName) string {
		return fmt.Sprintf("➡️ Lie on your back side-on to the camera so your shoulders and hips are visible (can't see: %s).", jointLabels(missing))
	},
	Feature:     hipLift,
	Unavailable: "➡️ Lie flat with your whole torso in view of the camera.",
	Bands: []Band{
		{Above: 15, Valid: true, Msg: staticMsg("✅ Excellent bridge! Hips high — hold the position.")},
		{Above: 8, Valid: true, Msg: staticMsg("✅ Good lift — squeeze your glutes at the top.")},
		{Above: 0, Valid: true, Msg: staticMsg("✅ Hips are lifting — keep pressing up past your shoulders.")},
		{Above: -5, Valid: false, Msg: staticMsg("➡️ Almost there — hips nearly level, push up through your heels.")},
		{Above: -15, Valid: false, Msg: staticMsg("➡️ Hips partially lifted — keep pressing them toward the ceiling.")},
		{Above: math.Inf(-1), Valid: false, Msg: staticMsg("➡️ Still in the start position — press your feet down and lift your hips.")},
	},
	Secondary: []SecondaryCheck{bentKneesCheck, hipLevelCheck},
}

func hipLift(pose models.Pose) (float64, bool) {
	leftShoulder, _ := Visible(pose, models.LeftShoulder)
	rightShoulder, _ := Visible(pose, models.RightShoulder)
	leftHip, _ := Visible(pose, models.LeftHip)
	rightHip, _ := Visible(pose, models.RightHip)

	avgShoulderY := (leftShoulder.Y + rightShoulder.Y) / 2
	avgHipY := (leftHip.Y + rightHip.Y) / 2
	return avgShoulderY - avgHipY, true
}

// bentKneesCheck verifies the feet stay planted: a bridging leg should hold
// a hip-knee-ankle angle between 75 and 150 degrees. Knees and ankles are
// optional joints; legs without a measurable angle are skipped.
func bentKneesCheck(pose models.Pose) (string, bool) {
	for _, leg := range legs {
		angle, ok := JointAngle(pose, leg.hip, leg.knee, leg.ankle)
		if !ok {
			continue
		}
		if angle <= 75 || angle >= 150 {
			return "⚠️ Bend your knees and keep your feet flat on the floor.", true
		}
	}
	return "", false
}

// hipLevelCheck warns when one hip rides noticeably higher than the other.
func hipLevelCheck(pose models.Pose) (string, bool) {
	leftHip, _ := Visible(pose, models.LeftHip)
	rightHip, _ := Visible(pose, models.RightHip)
	if math.Abs(leftHip.Y-rightHip.Y) > 15 {
		return "⚠️ Keep your hips level — one side is higher than the other.", true
	}
	return "", false
}

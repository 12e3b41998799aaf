package engine

import (
	"fmt"
	"math"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

type armJoints struct {
	label    string
	shoulder models.JointName
	elbow    models.JointName
	wrist    models.JointName
}

var arms = []armJoints{
	{"left", models.LeftShoulder, models.LeftElbow, models.LeftWrist},
	{"right", models.RightShoulder, models.RightElbow, models.RightWrist},
}

// Shoulder flexion is judged per arm: the arm counts as raised when the
// wrist sits above the shoulder in the frame (smaller y), and the primary
// magnitude is the raw pixel height difference shoulderY - wristY. The
// pixel thresholds match a ~640x480 capture; they are deliberately not
// normalized (see DESIGN.md).
var shoulderFlexionRule = Rule{
	Exercise: models.ExerciseShoulderFlexion,
	Required: []models.JointName{models.LeftShoulder, models.RightShoulder},
	Reposition: func(missing []models.JointName) string {
		return fmt.Sprintf("➡️ Step back so both shoulders are in the frame (can't see: %s).", jointLabels(missing))
	},
	Feature:     bestArmRaise,
	Unavailable: "➡️ Bring at least one arm fully into view, hand included.",
	Bands: []Band{
		{Above: 30, Valid: true, Msg: staticMsg("✅ Excellent! Arm raised high — hold it there.")},
		{Above: 15, Valid: true, Msg: staticMsg("✅ Good lift — keep reaching upward.")},
		{Above: 0, Valid: true, Msg: staticMsg("✅ Arm slightly raised — keep going, reach higher.")},
		{Above: math.Inf(-1), Valid: false, Msg: staticMsg("➡️ Raise at least one arm up above shoulder height.")},
	},
	Secondary: []SecondaryCheck{elbowExtensionCheck},
}

// bestArmRaise returns the largest shoulderY-wristY over arms whose wrist is
// visible. Negative values mean every visible wrist is below its shoulder.
// Unavailable when no wrist passes the gate on either side.
func bestArmRaise(pose models.Pose) (float64, bool) {
	best := math.Inf(-1)
	found := false
	for _, arm := range arms {
		shoulder, _ := Visible(pose, arm.shoulder)
		wrist, ok := Visible(pose, arm.wrist)
		if !ok {
			continue
		}
		found = true
		if diff := shoulder.Y - wrist.Y; diff > best {
			best = diff
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

// elbowExtensionCheck looks at each raised arm's shoulder-elbow-wrist angle:
// between 150 and 210 degrees the arm counts as extended, below 150 the
// elbow is bent and gets a corrective note.
func elbowExtensionCheck(pose models.Pose) (string, bool) {
	notes := ""
	for _, arm := range arms {
		shoulder, _ := Visible(pose, arm.shoulder)
		wrist, ok := Visible(pose, arm.wrist)
		if !ok || wrist.Y >= shoulder.Y {
			continue
		}
		angle, ok := JointAngle(pose, arm.shoulder, arm.elbow, arm.wrist)
		if !ok {
			continue
		}
		switch {
		case angle > 150 && angle < 210:
			notes += fmt.Sprintf(" Keep your %s elbow extended like that.", arm.label)
		case angle < 150:
			notes += fmt.Sprintf(" ⚠️ Straighten your %s elbow.", arm.label)
		}
	}
	if notes == "" {
		return "", false
	}
	return notes[1:], true
}

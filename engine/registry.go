package engine

import (
	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// NotImplementedMessage is the fixed fallback for exercise ids outside the
// closed 1..5 set. Unreachable through the catalog, but the registry must
// never panic on a bad id.
const NotImplementedMessage = "Exercise validation not implemented"

var rules = map[int]Rule{
	models.ExerciseNeckRotation:    neckRotationRule,
	models.ExerciseShoulderFlexion: shoulderFlexionRule,
	models.ExerciseKneeExtension:   kneeExtensionRule,
	models.ExerciseHipBridge:       hipBridgeRule,
	models.ExerciseAnklePumps:      anklePumpsRule,
}

// Classify dispatches the pose to the validator for the given exercise id.
// Validators are pure functions of the pose and their static thresholds; no
// exercise-specific state lives here.
func Classify(exerciseID int, pose models.Pose) models.ValidationResult {
	rule, ok := rules[exerciseID]
	if !ok {
		return models.ValidationResult{IsValid: false, Message: NotImplementedMessage}
	}
	return rule.Validate(pose)
}

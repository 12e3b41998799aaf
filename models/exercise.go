package models

// Exercise ids form a closed set; the registry falls back to a fixed
// "not implemented" result for anything else.
const (
	ExerciseNeckRotation    = 1
	ExerciseShoulderFlexion = 2
	ExerciseKneeExtension   = 3
	ExerciseHipBridge       = 4
	ExerciseAnklePumps      = 5
)

// Exercise is immutable reference data describing one prescribed movement.
type Exercise struct {
	ID           int    `json:"id" toml:"id"`
	Name         string `json:"name" toml:"name"`
	Description  string `json:"description" toml:"description"`
	Illustration string `json:"illustration" toml:"illustration"`
}

// ValidationResult is the engine's judgment for a single frame. Both fields
// are always populated; the message may embed status glyphs the client uses
// for color-coding.
type ValidationResult struct {
	IsValid bool   `json:"is_valid"`
	Message string `json:"message"`
}

// Feedback colors consumed by the rendering client. Neutral is chosen by the
// frame cycle when no exercise is selected or no body was detected; the
// validators themselves only ever produce valid (green) or invalid (red).
const (
	FeedbackColorValid   = "green"
	FeedbackColorInvalid = "red"
	FeedbackColorNeutral = "gray"
)

// DefaultExercises is the built-in catalog. A TOML file may override names,
// descriptions and illustrations, but the id set is fixed.
var DefaultExercises = []Exercise{
	{
		ID:           ExerciseNeckRotation,
		Name:         "Neck Rotation",
		Description:  "Sit upright and slowly turn your head toward one shoulder, then the other. Keep your chin level throughout.",
		Illustration: "exercises/neck_rotation.png",
	},
	{
		ID:           ExerciseShoulderFlexion,
		Name:         "Shoulder Flexion",
		Description:  "Raise one or both arms forward and up above shoulder height, keeping the elbow straight.",
		Illustration: "exercises/shoulder_flexion.png",
	},
	{
		ID:           ExerciseKneeExtension,
		Name:         "Seated Knee Extension",
		Description:  "Sit on a chair and straighten one knee until the leg is level, keeping the other foot on the floor.",
		Illustration: "exercises/knee_extension.png",
	},
	{
		ID:           ExerciseHipBridge,
		Name:         "Hip Bridge",
		Description:  "Lie on your back with knees bent and feet flat, then lift your hips until they pass shoulder level.",
		Illustration: "exercises/hip_bridge.png",
	},
	{
		ID:           ExerciseAnklePumps,
		Name:         "Ankle Pumps",
		Description:  "With both feet in view, point and flex your ankles in a steady rhythm.",
		Illustration: "exercises/ankle_pumps.png",
	},
}

// ExerciseByID returns the catalog entry for id, or false for ids outside
// the closed set.
func ExerciseByID(exercises []Exercise, id int) (Exercise, bool) {
	for _, ex := range exercises {
		if ex.ID == id {
			return ex, true
		}
	}
	return Exercise{}, false
}

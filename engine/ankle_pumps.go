package engine

import (
	"math"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// Ankle pumps have no single-frame geometry to measure — the movement only
// exists over time, and the engine deliberately does no temporal reasoning.
// The validator therefore only confirms that both ankles are confidently
// tracked and hands out the repetition guidance.
var anklePumpsRule = Rule{
	Exercise:   models.ExerciseAnklePumps,
	Required:   []models.JointName{models.LeftAnkle, models.RightAnkle},
	Reposition: anklePumpsReposition,
	Bands: []Band{
		{Above: math.Inf(-1), Valid: true, Msg: staticMsg("✅ Both ankles in view — pump your feet up and down in a steady rhythm, about 10 repetitions.")},
	},
}

// anklePumpsReposition tells the user which foot the camera can already see.
func anklePumpsReposition(missing []models.JointName) string {
	if len(missing) == 2 {
		return "➡️ Step back so both feet and ankles are visible to the camera."
	}
	switch missing[0] {
	case models.LeftAnkle:
		return "➡️ Right ankle in view — shift so your left foot is visible too."
	default:
		return "➡️ Left ankle in view — shift so your right foot is visible too."
	}
}

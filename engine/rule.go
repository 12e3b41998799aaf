package engine

import (
	"math"
	"strings"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// Band is one rung of a coaching ladder. Bands are evaluated in order and
// the first match wins: a band matches when the feature value is strictly
// above its threshold (or equal, when OrEqual is set). The last band of a
// ladder uses -Inf as a catch-all.
type Band struct {
	Above   float64
	OrEqual bool
	Valid   bool
	Msg     func(pose models.Pose, value float64) string
}

func (b Band) matches(v float64) bool {
	return v > b.Above || (b.OrEqual && v == b.Above)
}

// SecondaryCheck inspects auxiliary joint relationships and returns a note
// to append to the primary message. Secondary checks never flip the primary
// verdict; that is enforced structurally by the evaluator.
type SecondaryCheck func(pose models.Pose) (string, bool)

// Rule is the declarative description of one exercise validator: the
// confidence gate (Required + Reposition), a primary feature extractor, an
// ordered band ladder, and secondary checks. One generic evaluator,
// Rule.Validate, interprets every rule.
type Rule struct {
	Exercise int

	// Required joints must all pass the confidence gate before the feature
	// is computed; otherwise Reposition builds the instructive invalid
	// message from the missing set.
	Required   []models.JointName
	Reposition func(missing []models.JointName) string

	// Feature derives the primary magnitude. May be nil for exercises with
	// no measurable feature (ankle pumps), in which case the ladder is
	// evaluated with a zero value. Unavailable is returned when the feature
	// cannot be derived from the visible joints.
	Feature     func(pose models.Pose) (float64, bool)
	Unavailable string

	Bands     []Band
	Secondary []SecondaryCheck
}

// Validate runs the rule against a single frame's pose. It is pure: two
// calls with the same pose produce identical results.
func (r Rule) Validate(pose models.Pose) models.ValidationResult {
	var missing []models.JointName
	for _, joint := range r.Required {
		if _, ok := Visible(pose, joint); !ok {
			missing = append(missing, joint)
		}
	}
	if len(missing) > 0 {
		return models.ValidationResult{IsValid: false, Message: r.Reposition(missing)}
	}

	value := 0.0
	if r.Feature != nil {
		v, ok := r.Feature(pose)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return models.ValidationResult{IsValid: false, Message: r.Unavailable}
		}
		value = v
	}

	result := models.ValidationResult{IsValid: false, Message: r.Unavailable}
	for _, band := range r.Bands {
		if band.matches(value) {
			result = models.ValidationResult{IsValid: band.Valid, Message: band.Msg(pose, value)}
			break
		}
	}

	for _, check := range r.Secondary {
		if note, ok := check(pose); ok {
			result.Message += " " + note
		}
	}
	return result
}

// staticMsg adapts a fixed string to the band message signature.
func staticMsg(msg string) func(models.Pose, float64) string {
	return func(models.Pose, float64) string { return msg }
}

// jointLabels renders joint names for user-facing messages
// ("left_shoulder" -> "left shoulder").
func jointLabels(joints []models.JointName) string {
	labels := make([]string, len(joints))
	for i, j := range joints {
		labels[i] = strings.ReplaceAll(string(j), "_", " ")
	}
	return strings.Join(labels, ", ")
}

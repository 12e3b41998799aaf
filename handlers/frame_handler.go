package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Telerehab-Labs/telerehab-go-sdk/engine"
	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
	"github.com/Telerehab-Labs/telerehab-go-sdk/utils"
)

// Feedback is the per-frame coaching payload sent to the rendering client:
// the verdict, the message, and a color hint. Color is decided here, not in
// the validators — neutral covers the no-exercise and no-pose cases where
// classification never ran.
type Feedback struct {
	ExerciseID int    `json:"exercise_id,omitempty"`
	IsValid    bool   `json:"is_valid"`
	Message    string `json:"message"`
	Color      string `json:"color"`
}

// FrameHandler is the frame cycle: one goroutine that drains the session's
// pose channel, judges each pose against the active exercise, and pushes
// feedback. Cycles are serialized by construction — a new pose is only
// picked up after the previous verdict went out.
type FrameHandler struct {
	session *CoachSession
}

func InitFrameHandler(session *CoachSession) *FrameHandler {
	session.Logger.Info("Initializing Frame Handler...")

	frameHandler := &FrameHandler{session: session}

	go frameHandler.run()

	return frameHandler
}

func (h *FrameHandler) run() {
	h.session.Logger.Info("Frame handler goroutine started")

	for {
		select {
		case pose := <-h.session.PoseCh:
			h.judge(pose)
		case <-h.session.Ctx.Done():
			h.session.Logger.Info("Frame handler goroutine stopped")
			return
		}
	}
}

// judge runs one detection-validation-render cycle for a pose. Every frame
// is judged independently; there is no smoothing across frames.
func (h *FrameHandler) judge(pose models.Pose) {
	exercise, ok := h.session.ActiveExercise()
	if !ok {
		h.sendFeedback(Feedback{
			IsValid: false,
			Message: "Select an exercise to begin.",
			Color:   models.FeedbackColorNeutral,
		})
		return
	}

	result := engine.Classify(exercise.ID, pose)

	utils.FramesProcessed.WithLabelValues(exercise.Name).Inc()
	verdict := "invalid"
	color := models.FeedbackColorInvalid
	if result.IsValid {
		verdict = "valid"
		color = models.FeedbackColorValid
	}
	utils.ValidationVerdicts.WithLabelValues(verdict).Inc()

	ctx, cancel := context.WithTimeout(h.session.Ctx, 2*time.Second)
	defer cancel()
	if err := h.session.Store.RecordResult(ctx, h.session.ID, result.IsValid); err != nil {
		h.session.Logger.Warn("Failed to record frame result", zap.Error(err))
	}

	h.sendFeedback(Feedback{
		ExerciseID: exercise.ID,
		IsValid:    result.IsValid,
		Message:    result.Message,
		Color:      color,
	})
}

// NotifyNoPose reports a frame in which the estimator found no body at all.
// Validators are not invoked for such frames.
func (h *FrameHandler) NotifyNoPose() {
	h.sendFeedback(Feedback{
		IsValid: false,
		Message: "No person detected — step back into the camera's view.",
		Color:   models.FeedbackColorNeutral,
	})
}

func (h *FrameHandler) sendFeedback(feedback Feedback) {
	h.session.sendWebSocketMessage("feedback", feedback)
}

package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SessionsActive tracks currently open coaching sessions.
	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "telerehab_sessions_active",
		Help: "Number of currently open coaching sessions.",
	})

	// FramesProcessed counts frames that went through validation, per exercise.
	FramesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telerehab_frames_processed_total",
		Help: "Frames judged by the validation engine, labeled by exercise name.",
	}, []string{"exercise"})

	// FramesDropped counts frames discarded because the previous cycle was
	// still running (skip-frame backpressure).
	FramesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telerehab_frames_dropped_total",
		Help: "Frames dropped because the frame cycle was busy.",
	})

	// ValidationVerdicts counts judged frames by verdict.
	ValidationVerdicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "telerehab_validation_verdicts_total",
		Help: "Validation results, labeled valid or invalid.",
	}, []string{"verdict"})

	// EstimatorErrors counts failed calls to the external pose estimator.
	EstimatorErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "telerehab_estimator_errors_total",
		Help: "Failed calls to the external pose estimation service.",
	})
)

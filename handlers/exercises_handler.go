package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/Telerehab-Labs/telerehab-go-sdk/models"
)

// ExercisesHandler serves the exercise catalog so clients can render the
// selection screen (names, descriptions, illustration references).
type ExercisesHandler struct {
	catalog []models.Exercise
}

func NewExercisesHandler(catalog []models.Exercise) *ExercisesHandler {
	return &ExercisesHandler{catalog: catalog}
}

func (h *ExercisesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.catalog); err != nil {
		zap.L().Error("Failed to encode exercise catalog", zap.Error(err))
	}
}

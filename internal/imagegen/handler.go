package imagegen

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dmatos-dev/quizforge/internal/config"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GenerateImages accepts a job and answers with the task id to poll.
func (h *Handler) GenerateImages(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid request body for image generation")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		config.Error(w, http.StatusBadRequest, "prompt is required")
		return
	}

	taskID, err := h.service.Submit(r.Context(), req)
	if err != nil {
		log.WithError(err).Error("Failed to submit image job")
		config.Error(w, http.StatusBadGateway, "failed to submit image job", err.Error())
		return
	}

	config.JSON(w, http.StatusAccepted, map[string]interface{}{
		"success": true,
		"taskId":  taskID,
	})
}

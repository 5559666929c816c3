package task

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmatos-dev/quizforge/internal/config"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// StatusResponse is the polling contract body.
type StatusResponse struct {
	Success bool            `json:"success"`
	TaskID  string          `json:"taskId"`
	Status  Status          `json:"status"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// GetTaskStatus serves one poll. Clients repeat the call until they
// observe a terminal status.
func (h *Handler) GetTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	taskID := chi.URLParam(r, "taskID")
	if taskID == "" {
		config.Error(w, http.StatusBadRequest, "task id required")
		return
	}

	t, err := h.store.Get(taskID)
	if err != nil {
		if errors.Is(err, ErrUnknownTask) {
			config.Error(w, http.StatusNotFound, "task not found")
			return
		}
		log.WithError(err).Error("Failed to look up task")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, StatusResponse{
		Success: true,
		TaskID:  t.ID,
		Status:  t.Status,
		Result:  t.Result,
		Error:   t.Error,
	})
}

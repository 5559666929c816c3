package quizgen

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmatos-dev/quizforge/internal/config"
	"github.com/dmatos-dev/quizforge/internal/llm"
)

type Handler struct {
	service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

// GenerateQuiz streams quiz generation as server-sent events. Validation
// failures are rejected with a synchronous 400 before the stream opens;
// once streaming has begun, failures surface as the terminal error event.
func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var cfg QuizConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz generation")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := ValidateConfig(cfg); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			config.Error(w, http.StatusBadRequest, "invalid quiz config", verr.Details...)
		} else {
			config.Error(w, http.StatusBadRequest, "invalid quiz config", err.Error())
		}
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("Response writer does not support streaming")
		config.Error(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-transform")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	sink := newSSEWriter(w, flusher)
	if _, err := h.service.GenerateWithProgress(r.Context(), cfg, sink); err != nil {
		log.WithError(err).Error("Quiz generation failed")
	}
}

// RegenerateQuestion replaces a single question. The response carries the
// fresh question; the caller swaps it in.
func (h *Handler) RegenerateQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload struct {
		Question    Question    `json:"question"`
		QuizContext QuizContext `json:"quizContext"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Invalid request body for question regeneration")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := ValidateRegenerate(payload.Question, payload.QuizContext); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			config.Error(w, http.StatusBadRequest, "invalid regeneration request", verr.Details...)
		} else {
			config.Error(w, http.StatusBadRequest, "invalid regeneration request", err.Error())
		}
		return
	}

	question, err := h.service.Regenerate(r.Context(), payload.Question, payload.QuizContext)
	if err != nil {
		log.WithError(err).Error("Question regeneration failed")
		config.Error(w, StatusForError(err), "failed to regenerate question", err.Error())
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

// StatusForError maps pipeline errors onto response status codes.
func StatusForError(err error) int {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}

	var unavailable *llm.ErrUnavailable
	var malformed *llm.ErrMalformedResponse
	if errors.As(err, &unavailable) || errors.As(err, &malformed) {
		return http.StatusBadGateway
	}

	var parseErr *ParseError
	if errors.As(err, &parseErr) ||
		errors.Is(err, ErrMalformedOutput) ||
		errors.Is(err, ErrMissingQuestions) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

package quiz

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmatos-dev/quizforge/internal/auth"
	"github.com/dmatos-dev/quizforge/internal/config"
	"github.com/dmatos-dev/quizforge/internal/quizgen"
)

type Handler struct {
	service QuizService
}

func NewHandler(s QuizService) *Handler {
	return &Handler{service: s}
}

// SaveQuiz persists a quiz the client generated through the streaming
// endpoint.
func (h *Handler) SaveQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var generated quizgen.Quiz
	if err := json.NewDecoder(r.Body).Decode(&generated); err != nil {
		log.WithError(err).Warn("Invalid request body for quiz save")
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(generated.Questions) == 0 {
		config.Error(w, http.StatusBadRequest, "quiz must contain at least one question")
		return
	}

	// Derived, never trusted from the client.
	generated.RecomputeTotalPoints()

	quiz, err := h.service.SaveGenerated(r.Context(), userID, &generated)
	if err != nil {
		log.WithError(err).Error("Failed to save quiz")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusCreated, quiz)
}

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	quiz, err := h.service.GetQuizWithQuestions(r.Context(), quizID)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.WithError(err).Error("Failed to fetch quiz")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, quiz)
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		config.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	quizzes, err := h.service.ListQuizzesByUser(r.Context(), claims.UserID)
	if err != nil {
		log.WithError(err).Error("Failed to list quizzes")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, quizzes)
}

func (h *Handler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	if err := h.service.DeleteQuiz(r.Context(), quizID); err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			config.Error(w, http.StatusNotFound, "quiz not found")
			return
		}
		log.WithError(err).Error("Failed to delete quiz")
		config.Error(w, http.StatusInternalServerError, "internal server error")
		return
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "quiz deleted successfully",
	})
}

// RegenerateQuestion replaces one stored question with a freshly generated
// one and answers with the new row.
func (h *Handler) RegenerateQuestion(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	quizID := chi.URLParam(r, "id")
	questionID := chi.URLParam(r, "questionID")

	question, err := h.service.ReplaceQuestion(r.Context(), quizID, questionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizNotFound):
			config.Error(w, http.StatusNotFound, "quiz not found")
		case errors.Is(err, ErrQuestionNotFound):
			config.Error(w, http.StatusNotFound, "question not found")
		default:
			log.WithError(err).Error("Failed to regenerate stored question")
			config.Error(w, quizgen.StatusForError(err), "failed to regenerate question", err.Error())
		}
		return
	}

	config.JSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

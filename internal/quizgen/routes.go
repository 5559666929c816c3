package quizgen

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/generate", h.GenerateQuiz)
	r.Post("/regenerate", h.RegenerateQuestion)
	return r
}

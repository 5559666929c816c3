package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmatos-dev/quizforge/internal/auth"
	"github.com/dmatos-dev/quizforge/internal/imagegen"
	"github.com/dmatos-dev/quizforge/internal/middlewares"
	"github.com/dmatos-dev/quizforge/internal/quiz"
	"github.com/dmatos-dev/quizforge/internal/quizgen"
	"github.com/dmatos-dev/quizforge/internal/task"
)

type RouterConfig struct {
	QuizGenHandler  *quizgen.Handler
	QuizHandler     *quiz.Handler
	ImageGenHandler *imagegen.Handler
	TaskHandler     *task.Handler
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/quiz", quizgen.Routes(cfg.QuizGenHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/images", imagegen.Routes(cfg.ImageGenHandler))
		r.Mount("/tasks", task.Routes(cfg.TaskHandler))
	})

	return r
}

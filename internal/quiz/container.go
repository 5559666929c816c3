package quiz

import (
	"gorm.io/gorm"

	"github.com/dmatos-dev/quizforge/internal/quizgen"
)

type QuizContainer struct {
	Handler *Handler
	Service QuizService
}

func NewQuizContainer(db *gorm.DB, generator quizgen.Service) *QuizContainer {
	repo := NewRepository(db)
	service := NewService(db, repo, generator)
	handler := NewHandler(service)

	return &QuizContainer{
		Handler: handler,
		Service: service,
	}
}

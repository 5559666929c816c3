package quizgen

import "github.com/dmatos-dev/quizforge/internal/llm"

type QuizGenContainer struct {
	Handler *Handler
	Service Service
}

func NewQuizGenContainer(provider llm.Provider) *QuizGenContainer {
	service := NewService(provider)
	handler := NewHandler(service)

	return &QuizGenContainer{
		Handler: handler,
		Service: service,
	}
}

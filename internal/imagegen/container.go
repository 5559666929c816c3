package imagegen

import "github.com/dmatos-dev/quizforge/internal/task"

type ImageGenContainer struct {
	Handler *Handler
}

func NewImageGenContainer(client Client, tasks task.Store) *ImageGenContainer {
	service := NewService(client, tasks)
	handler := NewHandler(service)

	return &ImageGenContainer{
		Handler: handler,
	}
}

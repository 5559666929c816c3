package container

import (
	"context"
	"log"
	"os"

	"github.com/dmatos-dev/quizforge/internal/auth"
	"github.com/dmatos-dev/quizforge/internal/config"
	"github.com/dmatos-dev/quizforge/internal/imagegen"
	"github.com/dmatos-dev/quizforge/internal/llm"
	"github.com/dmatos-dev/quizforge/internal/quiz"
	"github.com/dmatos-dev/quizforge/internal/quizgen"
	"github.com/dmatos-dev/quizforge/internal/task"
)

type Container struct {
	QuizGenContainer  *quizgen.QuizGenContainer
	QuizContainer     *quiz.QuizContainer
	ImageGenContainer *imagegen.ImageGenContainer
	TaskContainer     *task.TaskContainer
}

func New() *Container {
	config.Init()
	auth.Init()

	llmCfg := llm.ConfigFromEnv()
	if err := llmCfg.Validate(); err != nil {
		log.Fatalf("invalid LLM configuration: %v", err)
	}
	provider, err := llm.NewProvider(context.Background(), llmCfg)
	if err != nil {
		log.Fatalf("failed to build LLM provider: %v", err)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := config.DB.AutoMigrate(&quiz.Quiz{}, &quiz.QuizQuestion{}); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	taskStore := task.NewMemoryStore()
	imageClient := imagegen.NewClient(
		config.GetEnv("IMAGE_API_URL", ""),
		config.GetEnv("IMAGE_API_KEY", ""),
	)

	quizGenContainer := quizgen.NewQuizGenContainer(provider)
	quizContainer := quiz.NewQuizContainer(config.DB, quizGenContainer.Service)
	imageGenContainer := imagegen.NewImageGenContainer(imageClient, taskStore)
	taskContainer := task.NewTaskContainer(taskStore)

	return &Container{
		QuizGenContainer:  quizGenContainer,
		QuizContainer:     quizContainer,
		ImageGenContainer: imageGenContainer,
		TaskContainer:     taskContainer,
	}
}

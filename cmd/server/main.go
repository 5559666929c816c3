package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dmatos-dev/quizforge/internal/config"
	"github.com/dmatos-dev/quizforge/internal/container"
	"github.com/dmatos-dev/quizforge/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		QuizGenHandler:  c.QuizGenContainer.Handler,
		QuizHandler:     c.QuizContainer.Handler,
		ImageGenHandler: c.ImageGenContainer.Handler,
		TaskHandler:     c.TaskContainer.Handler,
	})

	addr := ":" + config.GetEnv("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", addr).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Graceful shutdown failed")
	}
}

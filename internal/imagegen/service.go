package imagegen

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dmatos-dev/quizforge/internal/config"
	"github.com/dmatos-dev/quizforge/internal/task"
)

// Service submits image jobs to the upstream and mirrors their progress
// into the task store that clients poll.
type Service interface {
	Submit(ctx context.Context, req GenerateRequest) (string, error)
}

type service struct {
	client       Client
	tasks        task.Store
	pollInterval time.Duration
	pollBudget   time.Duration
}

func NewService(client Client, tasks task.Store) Service {
	return &service{
		client:       client,
		tasks:        tasks,
		pollInterval: 2 * time.Second,
		pollBudget:   5 * time.Minute,
	}
}

// Submit forwards the job upstream and returns the local task id the
// client polls. Upstream submission failures surface synchronously; after
// that, all progress flows through the task store.
func (s *service) Submit(ctx context.Context, req GenerateRequest) (string, error) {
	log := config.WithContext(ctx)

	jobID, err := s.client.SubmitJob(ctx, req)
	if err != nil {
		log.WithError(err).Error("Failed to submit image job upstream")
		return "", err
	}

	t := s.tasks.Create()
	log.WithFields(logrus.Fields{"task_id": t.ID, "job_id": jobID}).Info("Image job submitted")

	go s.watch(t.ID, jobID)

	return t.ID, nil
}

// watch polls the upstream until the job reaches a terminal state, then
// resolves the local task. It runs detached from the submitting request.
func (s *service) watch(taskID, jobID string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.pollBudget)
	defer cancel()

	log := logrus.WithFields(logrus.Fields{"task_id": taskID, "job_id": jobID})

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Warn("Image job polling budget exhausted")
			_ = s.tasks.Fail(taskID, "image generation timed out")
			return
		case <-ticker.C:
		}

		status, err := s.client.JobStatus(ctx, jobID)
		if err != nil {
			log.WithError(err).Warn("Image job poll failed, retrying")
			continue
		}

		switch {
		case status.Failed:
			log.Warnf("Image job failed: %s", status.Error)
			_ = s.tasks.Fail(taskID, status.Error)
			return
		case status.Done:
			result, err := json.Marshal(map[string]interface{}{"images": status.Images})
			if err != nil {
				_ = s.tasks.Fail(taskID, "failed to encode image result")
				return
			}
			log.Infof("Image job succeeded with %d images", len(status.Images))
			_ = s.tasks.Resolve(taskID, result)
			return
		}
	}
}

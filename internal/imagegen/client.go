package imagegen

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the asynchronous upstream image API: one call submits a
// job, further calls poll it. The upstream is task-based by nature, which
// is why this workflow polls instead of streaming.
type Client interface {
	SubmitJob(ctx context.Context, req GenerateRequest) (string, error)
	JobStatus(ctx context.Context, jobID string) (*JobStatus, error)
}

type restClient struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(30 * time.Second)

	return &restClient{http: httpClient}
}

type submitResponse struct {
	TaskID string `json:"task_id"`
	Error  string `json:"error,omitempty"`
}

func (c *restClient) SubmitJob(ctx context.Context, req GenerateRequest) (string, error) {
	var out submitResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/v1/images/generations")
	if err != nil {
		return "", fmt.Errorf("submit image job: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("submit image job: upstream status %d", resp.StatusCode())
	}
	if out.TaskID == "" {
		return "", fmt.Errorf("submit image job: upstream returned no task id")
	}

	return out.TaskID, nil
}

type statusResponse struct {
	Status string  `json:"status"`
	Images []Image `json:"images,omitempty"`
	Error  string  `json:"error,omitempty"`
}

func (c *restClient) JobStatus(ctx context.Context, jobID string) (*JobStatus, error) {
	var out statusResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/v1/tasks/" + jobID)
	if err != nil {
		return nil, fmt.Errorf("poll image job: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("poll image job: upstream status %d", resp.StatusCode())
	}

	status := &JobStatus{Images: out.Images, Error: out.Error}
	switch out.Status {
	case "succeeded", "completed":
		status.Done = true
	case "failed", "error":
		status.Failed = true
		if status.Error == "" {
			status.Error = "image generation failed"
		}
	}

	return status, nil
}

package task

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an asynchronous task. The only legal
// transitions are pending→succeeded and pending→failed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// ErrUnknownTask indicates a status lookup for a nonexistent task id.
var ErrUnknownTask = errors.New("unknown task")

// Task holds the polling-visible state of one asynchronous job.
type Task struct {
	ID        string          `json:"taskId"`
	Status    Status          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Terminal reports whether the task has reached a final state.
func (t Task) Terminal() bool {
	return t.Status == StatusSucceeded || t.Status == StatusFailed
}

// Store maps opaque task ids to task state. Implementations must support
// concurrent writers (job completion) and concurrent readers (polling
// clients). The store is injected by the caller; lifetime and eviction
// are the caller's concern.
type Store interface {
	Create() Task
	Get(id string) (Task, error)
	Resolve(id string, result json.RawMessage) error
	Fail(id string, errMsg string) error
}

type memoryStore struct {
	mu    sync.RWMutex
	tasks map[string]Task
}

// NewMemoryStore creates an in-memory Store. Tasks live for the process
// lifetime; nothing is evicted.
func NewMemoryStore() Store {
	return &memoryStore{tasks: make(map[string]Task)}
}

func (s *memoryStore) Create() Task {
	t := Task{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.tasks[t.ID] = t
	s.mu.Unlock()

	return t
}

func (s *memoryStore) Get(id string) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return Task{}, ErrUnknownTask
	}
	return t, nil
}

func (s *memoryStore) Resolve(id string, result json.RawMessage) error {
	return s.transition(id, func(t *Task) {
		t.Status = StatusSucceeded
		t.Result = result
	})
}

func (s *memoryStore) Fail(id string, errMsg string) error {
	return s.transition(id, func(t *Task) {
		t.Status = StatusFailed
		t.Error = errMsg
	})
}

func (s *memoryStore) transition(id string, apply func(*Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrUnknownTask
	}
	// Terminal states are frozen.
	if t.Terminal() {
		return nil
	}

	apply(&t)
	s.tasks[id] = t
	return nil
}

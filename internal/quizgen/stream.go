package quizgen

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// EventType discriminates progress events on the generation stream.
type EventType string

const (
	EventStart    EventType = "start"
	EventProgress EventType = "progress"
	EventError    EventType = "error"
	EventResult   EventType = "result"
)

// ProgressEvent is one message on the generation stream. "start" is always
// first; "error" and "result" are terminal.
type ProgressEvent struct {
	Type    EventType `json:"type"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
	Quiz    *Quiz     `json:"quiz,omitempty"`
}

// EventSink receives progress events. Send returns an error once the
// consumer is gone; the orchestration then stops emitting.
type EventSink interface {
	Send(ev ProgressEvent) error
}

// sseWriter emits progress events as a text/event-stream body, flushing
// after every event so the first byte reaches the client before any slow
// work runs.
type sseWriter struct {
	w http.ResponseWriter
	f http.Flusher

	mu     sync.Mutex
	failed bool
}

func newSSEWriter(w http.ResponseWriter, f http.Flusher) *sseWriter {
	return &sseWriter{w: w, f: f}
}

func (s *sseWriter) Send(ev ProgressEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed {
		return fmt.Errorf("event stream closed")
	}

	data, err := json.Marshal(ev)
	if err != nil {
		s.failed = true
		return err
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		s.failed = true
		return err
	}
	s.f.Flush()
	return nil
}

package quizgen

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmatos-dev/quizforge/internal/config"
	"github.com/dmatos-dev/quizforge/internal/llm"
)

// Service drives the quiz-generation pipeline: prompt build, completion
// call, parse. Inputs are assumed validated.
type Service interface {
	Generate(ctx context.Context, cfg QuizConfig) (*Quiz, error)
	GenerateWithProgress(ctx context.Context, cfg QuizConfig, sink EventSink) (*Quiz, error)
	Regenerate(ctx context.Context, q Question, qctx QuizContext) (*Question, error)
}

type service struct {
	provider llm.Provider
}

func NewService(provider llm.Provider) Service {
	return &service{provider: provider}
}

func (s *service) Generate(ctx context.Context, cfg QuizConfig) (*Quiz, error) {
	return s.generate(ctx, cfg, nil)
}

// GenerateWithProgress runs the pipeline while pushing progress events to
// the sink. The start event is emitted synchronously before any slow work
// so the transport sees its first byte immediately. Every failure surfaces
// as exactly one terminal error event; the quiz rides the terminal result
// event on success.
func (s *service) GenerateWithProgress(ctx context.Context, cfg QuizConfig, sink EventSink) (*Quiz, error) {
	emitter := &emitter{sink: sink}
	emitter.emit(ProgressEvent{Type: EventStart})

	quiz, err := s.generate(ctx, cfg, emitter)
	if err != nil {
		emitter.emit(ProgressEvent{Type: EventError, Error: err.Error()})
		return nil, err
	}

	emitter.emit(ProgressEvent{Type: EventResult, Quiz: quiz})
	return quiz, nil
}

func (s *service) generate(ctx context.Context, cfg QuizConfig, em *emitter) (*Quiz, error) {
	log := config.WithContext(ctx)
	log.WithField("subject", cfg.Subject).Info("Starting quiz generation")

	prompt := BuildPrompt(cfg)

	em.emit(ProgressEvent{Type: EventProgress, Message: "Generating questions with the language model"})

	raw, err := s.provider.Complete(ctx, llm.Request{
		System: systemPrompt,
		Prompt: prompt,
		Model:  cfg.Model,
	})
	if err != nil {
		log.WithError(err).Error("Completion call failed")
		return nil, err
	}

	em.emit(ProgressEvent{Type: EventProgress, Message: "Parsing model response"})

	parsed, err := ParseQuizResponse(raw)
	if err != nil {
		log.WithError(err).Error("Failed to parse model response")
		return nil, err
	}

	title := parsed.Title
	if title == "" {
		title = cfg.Subject
	}

	quiz := &Quiz{
		ID:          uuid.NewString(),
		Title:       title,
		Subject:     cfg.Subject,
		Grade:       cfg.Grade,
		Topics:      cfg.Topics,
		Difficulty:  cfg.Difficulty,
		Questions:   parsed.Questions,
		TotalPoints: parsed.TotalPoints,
		CreatedAt:   time.Now(),
	}

	log.WithField("quiz_id", quiz.ID).Infof("Generated %d questions", len(quiz.Questions))
	return quiz, nil
}

// Regenerate produces a replacement for a single question, matching its
// kind and point value. The returned question always carries a fresh id;
// the original is left for the caller to swap out.
func (s *service) Regenerate(ctx context.Context, q Question, qctx QuizContext) (*Question, error) {
	log := config.WithContext(ctx)
	log.WithField("question_id", q.ID).Info("Regenerating question")

	prompt := BuildQuestionPrompt(q, qctx)

	raw, err := s.provider.Complete(ctx, llm.Request{
		System: systemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		log.WithError(err).Error("Completion call failed")
		return nil, err
	}

	fresh, err := ParseQuestionResponse(raw)
	if err != nil {
		log.WithError(err).Error("Failed to parse regenerated question")
		return nil, err
	}

	// The replacement keeps the original's kind, point value and
	// difficulty even when the model drifts.
	fresh.Kind = q.Kind
	fresh.Points = q.Points
	if q.Difficulty != "" {
		fresh.Difficulty = q.Difficulty
	}
	if strings.TrimSpace(fresh.Content) == "" {
		return nil, ErrMissingQuestions
	}

	log.WithField("question_id", fresh.ID).Info("Question regenerated")
	return fresh, nil
}

// emitter drops events once the sink reports a dead consumer, so nothing
// is ever written to a closed stream. A nil emitter discards everything.
type emitter struct {
	sink EventSink
	dead bool
}

func (e *emitter) emit(ev ProgressEvent) {
	if e == nil || e.dead || e.sink == nil {
		return
	}
	if err := e.sink.Send(ev); err != nil {
		e.dead = true
	}
}

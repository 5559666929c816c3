package quizgen_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dmatos-dev/quizforge/internal/quizgen"
)

func TestValidateConfig(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		if err := quizgen.ValidateConfig(baseConfig()); err != nil {
			t.Fatalf("expected valid config, got %v", err)
		}
	})

	t.Run("CustomContentWithoutTopics", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Topics = nil
		cfg.CustomContent = "Reference text."

		if err := quizgen.ValidateConfig(cfg); err != nil {
			t.Fatalf("custom content should satisfy the topic requirement, got %v", err)
		}
	})

	failing := []struct {
		name   string
		mutate func(*quizgen.QuizConfig)
		detail string
	}{
		{
			name:   "MissingSubject",
			mutate: func(cfg *quizgen.QuizConfig) { cfg.Subject = "" },
			detail: "Subject",
		},
		{
			name:   "MissingGrade",
			mutate: func(cfg *quizgen.QuizConfig) { cfg.Grade = "" },
			detail: "Grade",
		},
		{
			name:   "BadDifficulty",
			mutate: func(cfg *quizgen.QuizConfig) { cfg.Difficulty = "impossible" },
			detail: "Difficulty",
		},
		{
			name: "NoTopicsNoContent",
			mutate: func(cfg *quizgen.QuizConfig) {
				cfg.Topics = nil
				cfg.CustomContent = "   "
			},
			detail: "topics must not be empty",
		},
		{
			name: "NegativeCount",
			mutate: func(cfg *quizgen.QuizConfig) {
				cfg.QuestionCounts.Choice = -1
			},
			detail: "must not be negative",
		},
		{
			name: "AllCountsZero",
			mutate: func(cfg *quizgen.QuizConfig) {
				cfg.QuestionCounts = quizgen.QuestionCounts{}
			},
			detail: "at least one question count",
		},
		{
			name: "CountedKindWithoutPoints",
			mutate: func(cfg *quizgen.QuizConfig) {
				cfg.Points.Choice = 0
			},
			detail: "choice questions require a positive point value",
		},
	}

	for _, tc := range failing {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			tc.mutate(&cfg)

			err := quizgen.ValidateConfig(cfg)
			var verr *quizgen.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(verr.Error(), tc.detail) {
				t.Errorf("expected detail containing %q, got %q", tc.detail, verr.Error())
			}
		})
	}
}

func TestValidateRegenerate(t *testing.T) {
	validQuestion := quizgen.Question{
		Kind:    quizgen.KindChoice,
		Content: "What is 2+2?",
	}
	validContext := quizgen.QuizContext{
		Subject: "Mathematics",
		Grade:   "3",
		Topics:  []string{"addition"},
	}

	t.Run("Valid", func(t *testing.T) {
		if err := quizgen.ValidateRegenerate(validQuestion, validContext); err != nil {
			t.Fatalf("expected valid inputs, got %v", err)
		}
	})

	t.Run("MissingContent", func(t *testing.T) {
		q := validQuestion
		q.Content = "  "
		err := quizgen.ValidateRegenerate(q, validContext)
		var verr *quizgen.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("MissingContext", func(t *testing.T) {
		err := quizgen.ValidateRegenerate(validQuestion, quizgen.QuizContext{})
		var verr *quizgen.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(verr.Details) != 3 {
			t.Errorf("expected 3 details, got %v", verr.Details)
		}
	})
}

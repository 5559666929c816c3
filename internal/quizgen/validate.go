package quizgen

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError reports a malformed QuizConfig. It is always raised
// synchronously, before any upstream call or stream is opened.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid quiz config: " + strings.Join(e.Details, "; ")
}

// ValidateConfig checks the QuizConfig invariants: required fields, at
// least one positive question count, and a positive point value for every
// kind that has a positive count.
func ValidateConfig(cfg QuizConfig) error {
	var details []string

	if err := validate.Struct(cfg); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				details = append(details, fmt.Sprintf("field %s failed on %q", fe.Field(), fe.Tag()))
			}
		} else {
			details = append(details, err.Error())
		}
	}

	if len(cfg.Topics) == 0 && strings.TrimSpace(cfg.CustomContent) == "" {
		details = append(details, "topics must not be empty when no customContent is given")
	}

	counts := cfg.QuestionCounts
	if counts.Choice < 0 || counts.FillBlank < 0 || counts.ShortAnswer < 0 {
		details = append(details, "question counts must not be negative")
	}
	if counts.Total() <= 0 {
		details = append(details, "at least one question count must be positive")
	}

	if counts.Choice > 0 && cfg.Points.Choice <= 0 {
		details = append(details, "choice questions require a positive point value")
	}
	if counts.FillBlank > 0 && cfg.Points.FillBlank <= 0 {
		details = append(details, "fillBlank questions require a positive point value")
	}
	if counts.ShortAnswer > 0 && cfg.Points.ShortAnswer <= 0 {
		details = append(details, "shortAnswer questions require a positive point value")
	}

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

// ValidateRegenerate checks the inputs of a single-question regeneration.
func ValidateRegenerate(q Question, qctx QuizContext) error {
	var details []string

	if strings.TrimSpace(q.Content) == "" {
		details = append(details, "question content is required")
	}
	if q.Kind == "" {
		details = append(details, "question type is required")
	}
	if strings.TrimSpace(qctx.Subject) == "" {
		details = append(details, "quizContext.subject is required")
	}
	if strings.TrimSpace(qctx.Grade) == "" {
		details = append(details, "quizContext.grade is required")
	}
	if len(qctx.Topics) == 0 {
		details = append(details, "quizContext.topics must not be empty")
	}

	if len(details) > 0 {
		return &ValidationError{Details: details}
	}
	return nil
}

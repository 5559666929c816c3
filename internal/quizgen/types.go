package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind identifies how a question is answered.
type Kind string

const (
	KindChoice      Kind = "choice"
	KindFillBlank   Kind = "fill-blank"
	KindShortAnswer Kind = "short-answer"
)

// Difficulty is the quiz-level difficulty setting.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuizConfig is the request to generate a quiz.
type QuizConfig struct {
	Subject        string         `json:"subject" validate:"required"`
	Grade          string         `json:"grade" validate:"required"`
	Topics         []string       `json:"topics"`
	Difficulty     Difficulty     `json:"difficulty" validate:"required,oneof=easy medium hard"`
	QuestionCounts QuestionCounts `json:"questionCounts"`
	Points         QuestionPoints `json:"points"`
	Requirements   string         `json:"requirements,omitempty"`
	CustomContent  string         `json:"customContent,omitempty"`
	Model          string         `json:"model,omitempty"`
}

// QuestionCounts maps question kinds to how many to generate.
type QuestionCounts struct {
	Choice      int `json:"choice"`
	FillBlank   int `json:"fillBlank"`
	ShortAnswer int `json:"shortAnswer"`
}

func (c QuestionCounts) Total() int {
	return c.Choice + c.FillBlank + c.ShortAnswer
}

// QuestionPoints maps question kinds to the point value per question.
type QuestionPoints struct {
	Choice      float64 `json:"choice"`
	FillBlank   float64 `json:"fillBlank"`
	ShortAnswer float64 `json:"shortAnswer"`
}

// TotalPoints computes the point total the quiz should carry:
// Σ count × points over all kinds.
func (cfg QuizConfig) TotalPoints() float64 {
	return float64(cfg.QuestionCounts.Choice)*cfg.Points.Choice +
		float64(cfg.QuestionCounts.FillBlank)*cfg.Points.FillBlank +
		float64(cfg.QuestionCounts.ShortAnswer)*cfg.Points.ShortAnswer
}

// QuizContext is the QuizConfig subset needed to regenerate one question.
type QuizContext struct {
	Subject string   `json:"subject"`
	Grade   string   `json:"grade"`
	Topics  []string `json:"topics"`
}

// Answer holds a correct answer that may be a single string or an ordered
// sequence of strings for multi-part answers. It accepts both shapes on
// the wire and marshals back to the simplest one.
type Answer []string

func (a *Answer) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*a = Answer{single}
		return nil
	}

	var parts []string
	if err := json.Unmarshal(b, &parts); err == nil {
		*a = Answer(parts)
		return nil
	}

	return fmt.Errorf("correctAnswer must be a string or an array of strings")
}

func (a Answer) MarshalJSON() ([]byte, error) {
	switch len(a) {
	case 0:
		return json.Marshal("")
	case 1:
		return json.Marshal(a[0])
	default:
		return json.Marshal([]string(a))
	}
}

func (a Answer) String() string {
	return strings.Join(a, "; ")
}

// Question is one item of a quiz.
type Question struct {
	ID            string     `json:"id"`
	Kind          Kind       `json:"type"`
	Content       string     `json:"content"`
	Options       []string   `json:"options,omitempty"`
	CorrectAnswer Answer     `json:"correctAnswer"`
	Points        float64    `json:"points"`
	Difficulty    Difficulty `json:"difficulty"`
	Explanation   string     `json:"explanation,omitempty"`
}

// Quiz is an ordered sequence of questions plus metadata. TotalPoints is
// derived and must always equal the sum of the question points.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Subject     string     `json:"subject"`
	Grade       string     `json:"grade"`
	Topics      []string   `json:"topics,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Questions   []Question `json:"questions"`
	TotalPoints float64    `json:"totalPoints"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RecomputeTotalPoints refreshes TotalPoints from the questions. Call it
// after any change to the question list.
func (q *Quiz) RecomputeTotalPoints() {
	var total float64
	for _, question := range q.Questions {
		total += question.Points
	}
	q.TotalPoints = total
}

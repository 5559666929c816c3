package quizgen

import (
	"fmt"
	"strconv"
	"strings"
)

const systemPrompt = `You are an expert exam writer for a study platform.

Rules:
- Produce questions that are clear, self-contained and appropriate for the given grade.
- Multiple choice questions have exactly 4 plausible options and a single correct one.
- Fill-in-the-blank questions mark each blank with ____ and may have multi-part answers.
- Short answer questions expect a concise free-text answer.
- Never reveal the answer inside the question text.
- Respond with a single valid JSON object and nothing else: no prose, no code fences, no comments.`

// BuildPrompt renders the user prompt for a full quiz generation. The
// caller is responsible for validating cfg first; the builder assumes the
// QuizConfig invariants hold.
func BuildPrompt(cfg QuizConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a %s quiz for grade %s students about %s.\n", cfg.Difficulty, cfg.Grade, cfg.Subject)

	// Literal reference text wins over the topic list when both are given.
	if strings.TrimSpace(cfg.CustomContent) != "" {
		b.WriteString("\nBase every question on the following reference material:\n")
		b.WriteString(cfg.CustomContent)
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "Topics to cover: %s\n", strings.Join(cfg.Topics, ", "))
	}

	b.WriteString("\nQuestion plan:\n")
	writeKindLine(&b, "choice", cfg.QuestionCounts.Choice, cfg.Points.Choice)
	writeKindLine(&b, "fill-blank", cfg.QuestionCounts.FillBlank, cfg.Points.FillBlank)
	writeKindLine(&b, "short-answer", cfg.QuestionCounts.ShortAnswer, cfg.Points.ShortAnswer)
	fmt.Fprintf(&b, "Total points: %s\n", formatPoints(cfg.TotalPoints()))

	b.WriteString(outputFormatDirective)

	if cfg.Requirements != "" {
		b.WriteString("\nAdditional requirements:\n")
		b.WriteString(cfg.Requirements)
		b.WriteString("\n")
	}

	return b.String()
}

// BuildQuestionPrompt renders the prompt for regenerating a single
// question. The replacement must match the original's kind and point value.
func BuildQuestionPrompt(q Question, qctx QuizContext) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate exactly one replacement %s question for a grade %s quiz about %s.\n",
		q.Kind, qctx.Grade, qctx.Subject)
	fmt.Fprintf(&b, "Topics: %s\n", strings.Join(qctx.Topics, ", "))
	fmt.Fprintf(&b, "The question is worth %s points and has difficulty %q.\n", formatPoints(q.Points), q.Difficulty)
	fmt.Fprintf(&b, "It must differ from this question: %s\n", q.Content)

	b.WriteString(`
Output format: respond with a single JSON object describing the question,
with the fields "type", "content", "options" (choice questions only),
"correctAnswer", "points", "difficulty" and "explanation".
`)

	return b.String()
}

const outputFormatDirective = `
Output format: respond with a single JSON object:
{
  "title": "quiz title",
  "questions": [
    {
      "type": "choice | fill-blank | short-answer",
      "content": "question text",
      "options": ["only for choice questions"],
      "correctAnswer": "answer text, or an array for multi-part answers",
      "points": 5,
      "difficulty": "easy | medium | hard",
      "explanation": "brief explanation"
    }
  ]
}
`

func writeKindLine(b *strings.Builder, label string, count int, points float64) {
	if count <= 0 {
		return
	}
	fmt.Fprintf(b, "- %d %s questions, %s points each\n", count, label, formatPoints(points))
}

func formatPoints(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

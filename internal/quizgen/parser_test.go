package quizgen_test

import (
	"errors"
	"testing"

	"github.com/dmatos-dev/quizforge/internal/quizgen"
)

const strictQuizJSON = `{
	"title": "Fractions Basics",
	"questions": [
		{
			"type": "choice",
			"content": "What is 1/2 + 1/4?",
			"options": ["1/4", "2/4", "3/4", "4/4"],
			"correctAnswer": "3/4",
			"points": 2,
			"difficulty": "easy",
			"explanation": "Convert to a common denominator."
		},
		{
			"type": "short-answer",
			"content": "Explain what a denominator is.",
			"correctAnswer": "The bottom number of a fraction.",
			"points": 3,
			"difficulty": "hard"
		}
	]
}`

func TestParseQuizResponse(t *testing.T) {
	t.Run("StrictJSON", func(t *testing.T) {
		parsed, err := quizgen.ParseQuizResponse(strictQuizJSON)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}

		if parsed.Title != "Fractions Basics" {
			t.Errorf("unexpected title: %q", parsed.Title)
		}
		if len(parsed.Questions) != 2 {
			t.Fatalf("expected 2 questions, got %d", len(parsed.Questions))
		}
		if parsed.Questions[0].Kind != quizgen.KindChoice {
			t.Errorf("unexpected kind for first question: %q", parsed.Questions[0].Kind)
		}
		if parsed.Questions[1].Kind != quizgen.KindShortAnswer {
			t.Errorf("unexpected kind for second question: %q", parsed.Questions[1].Kind)
		}
		if parsed.TotalPoints != 5 {
			t.Errorf("expected total points 5, got %v", parsed.TotalPoints)
		}
	})

	t.Run("ProseAndCodeFences", func(t *testing.T) {
		raw := "Sure! Here is your quiz:\n```json\n" + strictQuizJSON + "\n```\nLet me know if you need anything else."

		parsed, err := quizgen.ParseQuizResponse(raw)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed on fenced output: %v", err)
		}
		if len(parsed.Questions) != 2 {
			t.Errorf("expected 2 questions, got %d", len(parsed.Questions))
		}
	})

	t.Run("CommentsAndTrailingCommas", func(t *testing.T) {
		raw := `{
			// quiz metadata
			"title": "Geometry", /* block comment */
			"questions": [
				{
					"type": "choice",
					"content": "How many sides does a triangle have?",
					"options": ["2", "3", "4",],
					"correctAnswer": "3",
					"points": 1,
				},
			],
		}`

		parsed, err := quizgen.ParseQuizResponse(raw)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed on commented output: %v", err)
		}
		if parsed.Title != "Geometry" {
			t.Errorf("unexpected title: %q", parsed.Title)
		}
		if len(parsed.Questions[0].Options) != 3 {
			t.Errorf("expected 3 options, got %d", len(parsed.Questions[0].Options))
		}
	})

	t.Run("ObjectLiteralFallback", func(t *testing.T) {
		raw := `{
			title: 'History Review',
			questions: [
				{
					type: 'choice',
					content: 'Who wrote the Declaration of Independence?',
					options: ['Adams', 'Jefferson', 'Franklin'],
					correctAnswer: 'Jefferson',
					points: 2,
					difficulty: 'easy'
				}
			]
		}`

		parsed, err := quizgen.ParseQuizResponse(raw)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed on object-literal output: %v", err)
		}
		if parsed.Title != "History Review" {
			t.Errorf("unexpected title: %q", parsed.Title)
		}
		if got := parsed.Questions[0].CorrectAnswer.String(); got != "Jefferson" {
			t.Errorf("unexpected answer: %q", got)
		}
	})

	t.Run("EscapedQuoteInLiteral", func(t *testing.T) {
		raw := `{title: 'It\'s a quiz', questions: [{content: 'What is "gravity"?', correctAnswer: 'a force'}]}`

		parsed, err := quizgen.ParseQuizResponse(raw)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}
		if parsed.Title != "It's a quiz" {
			t.Errorf("unexpected title: %q", parsed.Title)
		}
		if parsed.Questions[0].Content != `What is "gravity"?` {
			t.Errorf("unexpected content: %q", parsed.Questions[0].Content)
		}
	})

	t.Run("NoObject", func(t *testing.T) {
		_, err := quizgen.ParseQuizResponse("I cannot generate a quiz for that topic.")
		if !errors.Is(err, quizgen.ErrMalformedOutput) {
			t.Fatalf("expected ErrMalformedOutput, got %v", err)
		}
	})

	t.Run("MissingQuestions", func(t *testing.T) {
		_, err := quizgen.ParseQuizResponse(`{"title": "Empty"}`)
		if !errors.Is(err, quizgen.ErrMissingQuestions) {
			t.Fatalf("expected ErrMissingQuestions, got %v", err)
		}
	})

	t.Run("EmptyQuestionsArray", func(t *testing.T) {
		_, err := quizgen.ParseQuizResponse(`{"title": "Empty", "questions": []}`)
		if !errors.Is(err, quizgen.ErrMissingQuestions) {
			t.Fatalf("expected ErrMissingQuestions, got %v", err)
		}
	})

	t.Run("Unparseable", func(t *testing.T) {
		_, err := quizgen.ParseQuizResponse(`{"title": "Broken", "questions": [{]}`)
		var perr *quizgen.ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected ParseError, got %v", err)
		}
	})
}

func TestNormalizedDefaults(t *testing.T) {
	t.Run("SparseQuestion", func(t *testing.T) {
		parsed, err := quizgen.ParseQuizResponse(`{"questions": [{}]}`)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}

		q := parsed.Questions[0]
		if q.ID == "" {
			t.Error("expected a generated question id")
		}
		if q.Kind != quizgen.KindChoice {
			t.Errorf("expected default kind choice, got %q", q.Kind)
		}
		if q.Content != "Untitled question" {
			t.Errorf("unexpected default content: %q", q.Content)
		}
		if q.Points != 1 {
			t.Errorf("expected default points 1, got %v", q.Points)
		}
		if q.Difficulty != quizgen.DifficultyMedium {
			t.Errorf("expected default difficulty medium, got %q", q.Difficulty)
		}
		if len(q.CorrectAnswer) != 1 || q.CorrectAnswer[0] != "" {
			t.Errorf("expected empty answer default, got %v", q.CorrectAnswer)
		}
		if q.Options == nil {
			t.Error("expected non-nil options slice")
		}
	})

	t.Run("FreshIDs", func(t *testing.T) {
		raw := `{"questions": [{"id": "model-made-up-id", "content": "Q1"}]}`

		first, err := quizgen.ParseQuizResponse(raw)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}
		second, err := quizgen.ParseQuizResponse(raw)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}

		if first.Questions[0].ID == "model-made-up-id" {
			t.Error("model-provided id must not be kept")
		}
		if first.Questions[0].ID == second.Questions[0].ID {
			t.Error("each parse must assign a fresh id")
		}
	})

	t.Run("KindAliases", func(t *testing.T) {
		cases := map[string]quizgen.Kind{
			"multiple_choice":   quizgen.KindChoice,
			"Multiple-Choice":   quizgen.KindChoice,
			"fill_blank":        quizgen.KindFillBlank,
			"fill-in-the-blank": quizgen.KindFillBlank,
			"shortAnswer":       quizgen.KindShortAnswer,
			"nonsense":          quizgen.KindChoice,
		}
		for alias, want := range cases {
			parsed, err := quizgen.ParseQuizResponse(`{"questions": [{"type": "` + alias + `"}]}`)
			if err != nil {
				t.Fatalf("ParseQuizResponse failed for alias %q: %v", alias, err)
			}
			if got := parsed.Questions[0].Kind; got != want {
				t.Errorf("alias %q: expected kind %q, got %q", alias, want, got)
			}
		}
	})

	t.Run("AnswerArray", func(t *testing.T) {
		parsed, err := quizgen.ParseQuizResponse(`{"questions": [{"correctAnswer": ["red", "blue"]}]}`)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}
		answer := parsed.Questions[0].CorrectAnswer
		if len(answer) != 2 || answer[0] != "red" || answer[1] != "blue" {
			t.Errorf("unexpected answer: %v", answer)
		}
	})

	t.Run("StringPoints", func(t *testing.T) {
		parsed, err := quizgen.ParseQuizResponse(`{"questions": [{"points": "2.5"}]}`)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}
		if parsed.Questions[0].Points != 2.5 {
			t.Errorf("expected points 2.5, got %v", parsed.Questions[0].Points)
		}
	})

	t.Run("NonPositivePoints", func(t *testing.T) {
		parsed, err := quizgen.ParseQuizResponse(`{"questions": [{"points": -3}]}`)
		if err != nil {
			t.Fatalf("ParseQuizResponse failed: %v", err)
		}
		if parsed.Questions[0].Points != 1 {
			t.Errorf("expected points coerced to 1, got %v", parsed.Questions[0].Points)
		}
	})
}

func TestParseQuestionResponse(t *testing.T) {
	t.Run("BareObject", func(t *testing.T) {
		q, err := quizgen.ParseQuestionResponse(`{"type": "short-answer", "content": "Define photosynthesis.", "correctAnswer": "Plants converting light to energy.", "points": 3}`)
		if err != nil {
			t.Fatalf("ParseQuestionResponse failed: %v", err)
		}
		if q.Kind != quizgen.KindShortAnswer {
			t.Errorf("unexpected kind: %q", q.Kind)
		}
		if q.Points != 3 {
			t.Errorf("unexpected points: %v", q.Points)
		}
	})

	t.Run("WrappedInQuestionsArray", func(t *testing.T) {
		q, err := quizgen.ParseQuestionResponse(`{"questions": [{"content": "First"}, {"content": "Second"}]}`)
		if err != nil {
			t.Fatalf("ParseQuestionResponse failed: %v", err)
		}
		if q.Content != "First" {
			t.Errorf("expected the first question, got %q", q.Content)
		}
	})

	t.Run("EmptyQuestionsArray", func(t *testing.T) {
		_, err := quizgen.ParseQuestionResponse(`{"questions": []}`)
		if !errors.Is(err, quizgen.ErrMissingQuestions) {
			t.Fatalf("expected ErrMissingQuestions, got %v", err)
		}
	})
}

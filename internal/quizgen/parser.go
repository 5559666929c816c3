package quizgen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrMalformedOutput indicates the model output contains no JSON object.
	ErrMalformedOutput = errors.New("no JSON object found in model output")

	// ErrMissingQuestions indicates the parsed object has no non-empty
	// questions array.
	ErrMissingQuestions = errors.New("model output contains no questions")
)

// ParseError indicates the candidate JSON could not be decoded even after
// sanitization and the literal fallback.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParsedQuiz is the normalized result of parsing raw model output.
type ParsedQuiz struct {
	Title       string
	Questions   []Question
	TotalPoints float64
}

// ParseQuizResponse turns raw model output into a normalized quiz body.
// Models wrap their JSON in prose, code fences, comments and trailing
// commas; every field of the payload is treated as untrusted and optional.
func ParseQuizResponse(raw string) (*ParsedQuiz, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	rawQuestions, ok := doc["questions"].([]interface{})
	if !ok || len(rawQuestions) == 0 {
		return nil, ErrMissingQuestions
	}

	parsed := &ParsedQuiz{
		Title: stringField(doc, "title"),
	}
	for _, rq := range rawQuestions {
		fields, _ := rq.(map[string]interface{})
		q := normalizeQuestion(fields)
		if q.Content == "" {
			q.Content = "Untitled question"
		}
		parsed.Questions = append(parsed.Questions, q)
	}

	// The model's own point arithmetic, if any, is discarded.
	for _, q := range parsed.Questions {
		parsed.TotalPoints += q.Points
	}

	return parsed, nil
}

// ParseQuestionResponse parses model output expected to hold exactly one
// question, either as a bare object or as a one-element questions array.
func ParseQuestionResponse(raw string) (*Question, error) {
	doc, err := parseObject(raw)
	if err != nil {
		return nil, err
	}

	fields := doc
	if rawQuestions, ok := doc["questions"]; ok {
		list, ok := rawQuestions.([]interface{})
		if !ok || len(list) == 0 {
			return nil, ErrMissingQuestions
		}
		fields, _ = list[0].(map[string]interface{})
	}

	q := normalizeQuestion(fields)
	return &q, nil
}

// parseObject runs the full recovery pipeline: candidate extraction,
// sanitization, strict JSON, then the literal fallback.
func parseObject(raw string) (map[string]interface{}, error) {
	candidate, err := extractObject(raw)
	if err != nil {
		return nil, err
	}

	clean := stripTrailingCommas(stripComments(stripFences(candidate)))

	var doc map[string]interface{}
	strictErr := json.Unmarshal([]byte(clean), &doc)
	if strictErr == nil {
		return doc, nil
	}

	// Permissive fallback: rewrite JS object-literal syntax (single-quoted
	// strings, unquoted keys) into strict JSON and parse again. Nothing is
	// ever evaluated.
	relaxed := normalizeLiteral(clean)
	if err := json.Unmarshal([]byte(relaxed), &doc); err != nil {
		return nil, &ParseError{Err: strictErr}
	}
	return doc, nil
}

// extractObject takes the substring between the first '{' and the last '}'
// inclusive. Anything the model wrapped around it is discarded.
func extractObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrMalformedOutput
	}
	return raw[start : end+1], nil
}

// stripFences drops markdown code-fence marker lines.
func stripFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// stripComments removes // line comments and /* */ block comments while
// leaving string contents untouched.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var inString bool
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}

		switch {
		case c == '"' || c == '\'':
			inString = true
			quote = c
			b.WriteByte(c)
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
			if i < len(s) {
				b.WriteByte('\n')
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i++ // skip the closing '/'
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// stripTrailingCommas removes commas that directly precede a closing brace
// or bracket, outside of strings.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var inString bool
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(s) {
				i++
				b.WriteByte(s[i])
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}

		if c == '"' || c == '\'' {
			inString = true
			quote = c
			b.WriteByte(c)
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the comma
			}
		}

		b.WriteByte(c)
	}
	return b.String()
}

// normalizeLiteral rewrites common JS object-literal syntax into strict
// JSON: single-quoted strings become double-quoted and unquoted object keys
// are quoted. It is a pure text transformation, not an evaluator.
func normalizeLiteral(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var inString bool
	var single bool
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case c == '\\' && i+1 < len(s):
				next := s[i+1]
				if single && next == '\'' {
					b.WriteByte('\'')
				} else {
					b.WriteByte('\\')
					b.WriteByte(next)
				}
				i++
			case single && c == '\'':
				b.WriteByte('"')
				inString = false
			case single && c == '"':
				b.WriteString(`\"`)
			case !single && c == '"':
				b.WriteByte('"')
				inString = false
			default:
				b.WriteByte(c)
			}
			continue
		}

		switch {
		case c == '"' || c == '\'':
			inString = true
			single = c == '\''
			b.WriteByte('"')
		case isIdentStart(c) && startsKey(&b):
			j := i
			for j < len(s) && isIdentPart(s[j]) {
				j++
			}
			k := j
			for k < len(s) && (s[k] == ' ' || s[k] == '\t' || s[k] == '\n' || s[k] == '\r') {
				k++
			}
			word := s[i:j]
			if k < len(s) && s[k] == ':' {
				b.WriteByte('"')
				b.WriteString(word)
				b.WriteByte('"')
			} else {
				b.WriteString(word)
			}
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// startsKey reports whether the output so far ends where an object key may
// begin: after '{' or ','.
func startsKey(b *strings.Builder) bool {
	out := b.String()
	for i := len(out) - 1; i >= 0; i-- {
		switch out[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case '{', ',':
			return true
		default:
			return false
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// kindAliases maps the type spellings models actually produce onto the
// canonical kinds.
var kindAliases = map[string]Kind{
	"choice":            KindChoice,
	"multiple-choice":   KindChoice,
	"multiple_choice":   KindChoice,
	"fill-blank":        KindFillBlank,
	"fillblank":         KindFillBlank,
	"fill_blank":        KindFillBlank,
	"fill-in-the-blank": KindFillBlank,
	"short-answer":      KindShortAnswer,
	"shortanswer":       KindShortAnswer,
	"short_answer":      KindShortAnswer,
}

// normalizeQuestion turns an untrusted question payload into a strict
// Question, defaulting every missing or mistyped field. A fresh id is
// assigned regardless of any id present in the source.
func normalizeQuestion(fields map[string]interface{}) Question {
	q := Question{
		ID:         uuid.NewString(),
		Kind:       KindChoice,
		Options:    []string{},
		Points:     1,
		Difficulty: DifficultyMedium,
	}
	if fields == nil {
		q.CorrectAnswer = Answer{""}
		return q
	}

	if typ := strings.ToLower(stringField(fields, "type")); typ != "" {
		if kind, ok := kindAliases[typ]; ok {
			q.Kind = kind
		}
	}

	q.Content = stringField(fields, "content")

	if rawOptions, ok := fields["options"].([]interface{}); ok {
		for _, o := range rawOptions {
			q.Options = append(q.Options, fmt.Sprint(o))
		}
	}

	switch answer := fields["correctAnswer"].(type) {
	case string:
		q.CorrectAnswer = Answer{answer}
	case []interface{}:
		for _, part := range answer {
			q.CorrectAnswer = append(q.CorrectAnswer, fmt.Sprint(part))
		}
	}
	if len(q.CorrectAnswer) == 0 {
		q.CorrectAnswer = Answer{""}
	}

	switch points := fields["points"].(type) {
	case float64:
		if points > 0 {
			q.Points = points
		}
	case string:
		if parsed, err := strconv.ParseFloat(points, 64); err == nil && parsed > 0 {
			q.Points = parsed
		}
	}

	switch Difficulty(strings.ToLower(stringField(fields, "difficulty"))) {
	case DifficultyEasy:
		q.Difficulty = DifficultyEasy
	case DifficultyHard:
		q.Difficulty = DifficultyHard
	}

	q.Explanation = stringField(fields, "explanation")

	return q
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return strings.TrimSpace(s)
}

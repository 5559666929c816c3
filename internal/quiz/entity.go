package quiz

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/dmatos-dev/quizforge/internal/quizgen"
)

// Quiz is a persisted generated quiz. TotalPoints is kept in sync with the
// question rows by the service; it is never trusted from the client.
type Quiz struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Subject     string         `gorm:"type:text;not null" json:"subject"`
	Grade       string         `gorm:"type:text;not null" json:"grade"`
	Topics      datatypes.JSON `gorm:"type:jsonb" json:"topics"`
	Difficulty  string         `gorm:"type:text;not null" json:"difficulty"`
	TotalPoints float64        `gorm:"not null;default:0" json:"total_points"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
}

type QuizQuestion struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	QuizID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Kind          string         `gorm:"type:text;not null" json:"type"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Options       datatypes.JSON `gorm:"type:jsonb" json:"options,omitempty"`
	CorrectAnswer datatypes.JSON `gorm:"type:jsonb;not null" json:"correct_answer"`
	Points        float64        `gorm:"not null;default:1" json:"points"`
	Difficulty    string         `gorm:"type:text;not null" json:"difficulty"`
	Explanation   *string        `gorm:"type:text" json:"explanation,omitempty"`
	OrderIndex    int            `gorm:"not null" json:"order_index"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// FromGenerated maps a generated quiz into persistence rows.
func FromGenerated(userID uuid.UUID, generated *quizgen.Quiz) (*Quiz, []*QuizQuestion, error) {
	topics, err := json.Marshal(generated.Topics)
	if err != nil {
		return nil, nil, err
	}

	q := &Quiz{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       generated.Title,
		Subject:     generated.Subject,
		Grade:       generated.Grade,
		Topics:      datatypes.JSON(topics),
		Difficulty:  string(generated.Difficulty),
		TotalPoints: generated.TotalPoints,
	}

	questions := make([]*QuizQuestion, 0, len(generated.Questions))
	for i, gq := range generated.Questions {
		row, err := questionRow(q.ID, gq, i)
		if err != nil {
			return nil, nil, err
		}
		questions = append(questions, row)
	}

	return q, questions, nil
}

func questionRow(quizID uuid.UUID, gq quizgen.Question, orderIndex int) (*QuizQuestion, error) {
	options, err := json.Marshal(gq.Options)
	if err != nil {
		return nil, err
	}
	answer, err := json.Marshal(gq.CorrectAnswer)
	if err != nil {
		return nil, err
	}

	row := &QuizQuestion{
		ID:            uuid.New(),
		QuizID:        quizID,
		Kind:          string(gq.Kind),
		Content:       gq.Content,
		Options:       datatypes.JSON(options),
		CorrectAnswer: datatypes.JSON(answer),
		Points:        gq.Points,
		Difficulty:    string(gq.Difficulty),
		OrderIndex:    orderIndex,
	}
	if gq.Explanation != "" {
		explanation := gq.Explanation
		row.Explanation = &explanation
	}

	return row, nil
}

// toGenerated maps a question row back into the pipeline shape used by
// regeneration.
func (q *QuizQuestion) toGenerated() (quizgen.Question, error) {
	gq := quizgen.Question{
		ID:         q.ID.String(),
		Kind:       quizgen.Kind(q.Kind),
		Content:    q.Content,
		Points:     q.Points,
		Difficulty: quizgen.Difficulty(q.Difficulty),
	}

	if len(q.Options) > 0 {
		if err := json.Unmarshal(q.Options, &gq.Options); err != nil {
			return quizgen.Question{}, err
		}
	}
	if len(q.CorrectAnswer) > 0 {
		if err := json.Unmarshal(q.CorrectAnswer, &gq.CorrectAnswer); err != nil {
			return quizgen.Question{}, err
		}
	}
	if q.Explanation != nil {
		gq.Explanation = *q.Explanation
	}

	return gq, nil
}

// topicList decodes the stored topics column.
func (q *Quiz) topicList() []string {
	var topics []string
	if len(q.Topics) > 0 {
		_ = json.Unmarshal(q.Topics, &topics)
	}
	return topics
}

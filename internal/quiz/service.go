package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/dmatos-dev/quizforge/internal/config"
	"github.com/dmatos-dev/quizforge/internal/quizgen"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuestionNotFound = errors.New("question not found")
)

type QuizService interface {
	SaveGenerated(ctx context.Context, userID uuid.UUID, generated *quizgen.Quiz) (*Quiz, error)
	GetQuizWithQuestions(ctx context.Context, quizID string) (*Quiz, error)
	ListQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error)
	DeleteQuiz(ctx context.Context, quizID string) error
	ReplaceQuestion(ctx context.Context, quizID, questionID string) (*QuizQuestion, error)
}

type quizService struct {
	repo      QuizRepository
	generator quizgen.Service
	db        *gorm.DB
}

func NewService(db *gorm.DB, repo QuizRepository, generator quizgen.Service) QuizService {
	return &quizService{
		repo:      repo,
		generator: generator,
		db:        db,
	}
}

// SaveGenerated persists a generated quiz and its questions atomically.
func (s *quizService) SaveGenerated(ctx context.Context, userID uuid.UUID, generated *quizgen.Quiz) (*Quiz, error) {
	log := config.WithContext(ctx)

	quiz, questions, err := FromGenerated(userID, generated)
	if err != nil {
		log.WithError(err).Error("Failed to map generated quiz")
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		if len(questions) > 0 {
			if err := tx.Create(&questions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to save quiz")
		return nil, err
	}

	log.WithField("quiz_id", quiz.ID.String()).Info("Quiz saved")
	return quiz, nil
}

func (s *quizService) GetQuizWithQuestions(ctx context.Context, quizID string) (*Quiz, error) {
	quiz, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (s *quizService) ListQuizzesByUser(ctx context.Context, userID string) ([]*Quiz, error) {
	return s.repo.ListByUser(userID)
}

func (s *quizService) DeleteQuiz(ctx context.Context, quizID string) error {
	log := config.WithContext(ctx)

	quiz, err := s.repo.GetByID(quizID)
	if err != nil {
		return err
	}
	if quiz == nil {
		return ErrQuizNotFound
	}

	if err := s.repo.Delete(quizID); err != nil {
		log.WithError(err).Error("Failed to delete quiz")
		return err
	}

	log.WithField("quiz_id", quizID).Info("Quiz deleted")
	return nil
}

// ReplaceQuestion regenerates one stored question and swaps it in place.
// The original row is untouched until the replacement exists; the swap and
// the total-points recomputation happen in one transaction, so the quiz is
// never observable in a half-updated state.
func (s *quizService) ReplaceQuestion(ctx context.Context, quizID, questionID string) (*QuizQuestion, error) {
	log := config.WithContext(ctx)

	quiz, err := s.repo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	original, err := s.repo.GetQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if original == nil || original.QuizID != quiz.ID {
		return nil, ErrQuestionNotFound
	}

	generated, err := original.toGenerated()
	if err != nil {
		log.WithError(err).Error("Failed to decode stored question")
		return nil, err
	}

	fresh, err := s.generator.Regenerate(ctx, generated, quizgen.QuizContext{
		Subject: quiz.Subject,
		Grade:   quiz.Grade,
		Topics:  quiz.topicList(),
	})
	if err != nil {
		return nil, err
	}

	row, err := questionRow(quiz.ID, *fresh, original.OrderIndex)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, q := range quiz.Questions {
		if q.ID == original.ID {
			total += row.Points
			continue
		}
		total += q.Points
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&QuizQuestion{}, "id = ?", original.ID).Error; err != nil {
			return err
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		return tx.Model(&Quiz{}).Where("id = ?", quiz.ID).
			Update("total_points", total).Error
	})
	if err != nil {
		log.WithError(err).Error("Failed to replace question")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"quiz_id":     quiz.ID.String(),
		"question_id": row.ID.String(),
	}).Info("Question replaced")
	return row, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

// QuizService records quiz outcomes. Quizzes never change card scheduling;
// they only mark words as seen.
type QuizService interface {
	MarkSeen(ctx context.Context, cardID string) error
	RecordResult(ctx context.Context, score int) (models.QuizStats, error)
	Stats(ctx context.Context) (models.QuizStats, error)
}

type quizService struct {
	store repository.Store
}

// NewQuizService creates a new QuizService
func NewQuizService(store repository.Store) QuizService {
	return &quizService{store: store}
}

func (s *quizService) MarkSeen(ctx context.Context, cardID string) error {
	log := logger.FromContext(ctx).WithPrefix("quiz")
	log.Debug("marking card seen: id=%s", cardID)

	if err := s.store.Repositories().Cards.MarkSeen(ctx, cardID); err != nil {
		log.Error("failed to mark card %s seen: %v", cardID, err)
		return appError(err, "card", cardID)
	}
	return nil
}

func (s *quizService) RecordResult(ctx context.Context, score int) (models.QuizStats, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz")
	log.Debug("recording quiz result: score=%d", score)

	if score < 0 {
		return models.QuizStats{}, errors.NewValidationError("score", fmt.Sprintf("must not be negative, got %d", score))
	}

	var out models.QuizStats
	err := s.store.WithinTx(ctx, func(r repository.Repositories) error {
		if err := r.Quiz.RecordResult(ctx, score); err != nil {
			return err
		}
		var err error
		out, err = r.Quiz.Get(ctx)
		return err
	})
	if err != nil {
		log.Error("failed to record quiz result: %v", err)
		return models.QuizStats{}, appError(err, "quiz", nil)
	}
	return out, nil
}

func (s *quizService) Stats(ctx context.Context) (models.QuizStats, error) {
	q, err := s.store.Repositories().Quiz.Get(ctx)
	if err != nil {
		logger.FromContext(ctx).WithPrefix("quiz").Error("failed to load quiz stats: %v", err)
		return models.QuizStats{}, appError(err, "quiz", nil)
	}
	return q, nil
}

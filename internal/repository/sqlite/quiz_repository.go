package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type quizRepository struct {
	db querier
}

// NewQuizRepository creates a new QuizRepository implementation
func NewQuizRepository(db *sql.DB) repository.QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Get(ctx context.Context) (models.QuizStats, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")

	var q models.QuizStats
	err := r.db.QueryRowContext(ctx, `SELECT completed_count, total_score FROM quiz_stats WHERE id = 1`).Scan(&q.CompletedCount, &q.TotalScore)
	if errors.Is(err, sql.ErrNoRows) {
		return models.QuizStats{}, nil
	}
	if err != nil {
		log.Error("failed to get quiz stats: %v", err)
		return models.QuizStats{}, persistErr("get quiz stats", err)
	}
	return q, nil
}

func (r *quizRepository) RecordResult(ctx context.Context, score int) error {
	log := logger.FromContext(ctx).WithPrefix("quiz_repo")
	log.Debug("recording quiz result: score=%d", score)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO quiz_stats (id, completed_count, total_score)
VALUES (1, 1, ?)
ON CONFLICT(id) DO UPDATE SET
    completed_count = completed_count + 1,
    total_score = total_score + excluded.total_score
`, score)
	if err != nil {
		log.Error("failed to record quiz result: %v", err)
		return persistErr("record quiz result", err)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type reviewRepository struct {
	db querier
}

// NewReviewRepository creates a new ReviewRepository implementation
func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Insert(ctx context.Context, h models.ReviewHistory) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("inserting review history: card_id=%s, rating=%s, %s -> %s", h.CardID, h.Rating, h.StateBefore, h.StateAfter)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO review_history (card_id, rating, state_before, state_after, elapsed_days, scheduled_days, reviewed_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, h.CardID, int(h.Rating), int(h.StateBefore), int(h.StateAfter), h.ElapsedDays, h.ScheduledDays, h.ReviewedAt.UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, repository.ErrNotFound
		}
		log.Error("failed to insert review history: %v", err)
		return 0, persistErr("insert review history", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get review history id: %v", err)
		return 0, persistErr("insert review history", err)
	}
	return id, nil
}

func (r *reviewRepository) ListForCard(ctx context.Context, cardID string, limit int) ([]models.ReviewHistory, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")
	log.Debug("listing review history: card_id=%s, limit=%d", cardID, limit)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, card_id, rating, state_before, state_after, elapsed_days, scheduled_days, reviewed_at
FROM review_history
WHERE card_id = ?
ORDER BY reviewed_at DESC, id DESC
LIMIT ?
`, cardID, limit)
	if err != nil {
		log.Error("failed to list review history: %v", err)
		return nil, persistErr("list review history", err)
	}
	defer rows.Close()

	var out []models.ReviewHistory
	for rows.Next() {
		var h models.ReviewHistory
		if err := rows.Scan(&h.ID, &h.CardID, &h.Rating, &h.StateBefore, &h.StateAfter, &h.ElapsedDays, &h.ScheduledDays, &h.ReviewedAt); err != nil {
			log.Error("failed to scan review history row: %v", err)
			return nil, persistErr("scan review history", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("list review history", err)
	}
	return out, nil
}

func (r *reviewRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("review_repo")

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM review_history WHERE reviewed_at >= ?`, since.UTC()).Scan(&n)
	if err != nil {
		log.Error("failed to count reviews: %v", err)
		return 0, persistErr("count reviews", err)
	}
	return n, nil
}

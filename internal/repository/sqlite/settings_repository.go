package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

type settingsRepository struct {
	db querier
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")

	var s models.Settings
	err := r.db.QueryRowContext(ctx, `SELECT daily_new_words_limit FROM settings WHERE id = 1`).Scan(&s.DailyNewWordsLimit)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no saved settings")
		return nil, repository.ErrNotFound
	}
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return nil, persistErr("get settings", err)
	}
	return &s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("saving settings: daily_new_words_limit=%d", s.DailyNewWordsLimit)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO settings (id, daily_new_words_limit)
VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET
    daily_new_words_limit = excluded.daily_new_words_limit,
    updated_at = CURRENT_TIMESTAMP
`, s.DailyNewWordsLimit)
	if err != nil {
		log.Error("failed to save settings: %v", err)
		return persistErr("save settings", err)
	}
	return nil
}

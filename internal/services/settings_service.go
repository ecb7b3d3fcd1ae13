package services

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
)

// SettingsService handles learner preferences
type SettingsService interface {
	Get(ctx context.Context) (models.Settings, error)
	Update(ctx context.Context, s models.Settings) (models.Settings, error)
}

type settingsService struct {
	repo     repository.SettingsRepository
	defaults models.Settings
	validate *validator.Validate
}

// NewSettingsService creates a new SettingsService. defaults apply until the
// learner saves settings.
func NewSettingsService(repo repository.SettingsRepository, defaults models.Settings) SettingsService {
	return &settingsService{
		repo:     repo,
		defaults: defaults,
		validate: validator.New(),
	}
}

func (s *settingsService) Get(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings")

	saved, err := s.repo.Get(ctx)
	if stderrors.Is(err, repository.ErrNotFound) {
		log.Debug("no saved settings, using defaults: daily_new_words_limit=%d", s.defaults.DailyNewWordsLimit)
		return s.defaults, nil
	}
	if err != nil {
		log.Error("failed to load settings: %v", err)
		return models.Settings{}, appError(err, "settings", 1)
	}
	return *saved, nil
}

func (s *settingsService) Update(ctx context.Context, in models.Settings) (models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings")
	log.Debug("updating settings: daily_new_words_limit=%d", in.DailyNewWordsLimit)

	if err := s.validate.Struct(in); err != nil {
		return models.Settings{}, errors.NewValidationError("daily_new_words_limit",
			fmt.Sprintf("must be between 1 and 100, got %d", in.DailyNewWordsLimit))
	}
	if err := s.repo.Save(ctx, in); err != nil {
		log.Error("failed to save settings: %v", err)
		return models.Settings{}, appError(err, "settings", 1)
	}
	log.Info("daily new words limit set to %d", in.DailyNewWordsLimit)
	return in, nil
}

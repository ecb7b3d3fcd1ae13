package services

import (
	"context"

	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/stats"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	Summary(ctx context.Context) (*models.ReviewStats, error)
	WeakWords(ctx context.Context) ([]models.CardWithWord, error)
	StaleWords(ctx context.Context) ([]models.CardWithWord, error)
	StrongestWords(ctx context.Context) ([]models.CardWithWord, error)
}

type statsService struct {
	store repository.Store
	opts  stats.Options
	clock Clock
}

// NewStatsService creates a new StatsService
func NewStatsService(store repository.Store, opts stats.Options, clock Clock) StatsService {
	return &statsService{store: store, opts: opts.WithDefaults(), clock: clock}
}

func (s *statsService) Summary(ctx context.Context) (*models.ReviewStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats")
	log.Debug("building review summary")

	repos := s.store.Repositories()
	cards, err := repos.Cards.List(ctx, repository.CardFilter{})
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, appError(err, "card", nil)
	}

	var counts stats.WordCounts
	if counts.Total, err = repos.Vocabulary.CountWords(ctx, repository.WordFilter{}); err != nil {
		log.Error("failed to count words: %v", err)
		return nil, appError(err, "word", nil)
	}
	if counts.Studying, err = repos.Vocabulary.CountWords(ctx, repository.WordFilter{OpenedOnly: true}); err != nil {
		log.Error("failed to count studied words: %v", err)
		return nil, appError(err, "word", nil)
	}

	quiz, err := repos.Quiz.Get(ctx)
	if err != nil {
		log.Error("failed to load quiz stats: %v", err)
		return nil, appError(err, "quiz", nil)
	}

	summary := stats.Summarize(cards, counts, quiz, s.opts, s.clock.now())
	return &summary, nil
}

func (s *statsService) WeakWords(ctx context.Context) ([]models.CardWithWord, error) {
	rows, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	return weakWithWords(rows, s.opts), nil
}

func (s *statsService) StaleWords(ctx context.Context) ([]models.CardWithWord, error) {
	rows, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	cards, words := splitRows(rows)
	weak := stats.WeakWords(cards, s.opts.LapseThreshold, s.opts.StabilityThreshold)
	return joinWords(stats.StaleWords(cards, weak, s.opts.StaleDays, s.clock.now()), words), nil
}

func (s *statsService) StrongestWords(ctx context.Context) ([]models.CardWithWord, error) {
	rows, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}
	cards, words := splitRows(rows)
	return joinWords(stats.StrongestWords(cards, s.opts.StrongestLimit), words), nil
}

func (s *statsService) listAll(ctx context.Context) ([]models.CardWithWord, error) {
	rows, err := s.store.Repositories().Cards.ListWithWords(ctx, repository.CardFilter{})
	if err != nil {
		logger.FromContext(ctx).WithPrefix("stats").Error("failed to list cards: %v", err)
		return nil, appError(err, "card", nil)
	}
	return rows, nil
}

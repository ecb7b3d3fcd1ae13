package services

import (
	"context"
	"slices"
	"sync"

	"github.com/vytor/wordflash/internal/errors"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/logger"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/repository"
	"github.com/vytor/wordflash/internal/stats"
)

// TrainingService runs review sessions. Session loads and review steps are
// serialized so a card is never computed from a stale snapshot.
type TrainingService interface {
	LoadSession(ctx context.Context) (*models.Session, error)
	Review(ctx context.Context, cardID string, rating models.Rating) (*models.ReviewResult, error)
	WeakSession(ctx context.Context) ([]models.CardWithWord, error)
}

type trainingService struct {
	mu        sync.Mutex
	store     repository.Store
	settings  SettingsService
	scheduler *flashcard.Scheduler
	weak      stats.Options
	clock     Clock
}

// NewTrainingService creates a new TrainingService
func NewTrainingService(store repository.Store, settings SettingsService, scheduler *flashcard.Scheduler, weak stats.Options, clock Clock) TrainingService {
	return &trainingService{
		store:     store,
		settings:  settings,
		scheduler: scheduler,
		weak:      weak.WithDefaults(),
		clock:     clock,
	}
}

func (s *trainingService) LoadSession(ctx context.Context) (*models.Session, error) {
	log := logger.FromContext(ctx).WithPrefix("training")
	now := s.clock.now()
	log.Debug("loading session: now=%s", now.Format("2006-01-02 15:04:05 MST"))

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	limit := settings.DailyNewWordsLimit

	s.mu.Lock()
	defer s.mu.Unlock()

	groups, err := s.store.Repositories().Vocabulary.ListGroups(ctx)
	if err != nil {
		log.Error("failed to list groups: %v", err)
		return nil, appError(err, "group", nil)
	}
	if !anyOpened(groups) {
		log.Debug("no opened groups")
		return &models.Session{NoGroups: true}, nil
	}

	var (
		sel   flashcard.Selection
		words map[string]models.Word
	)
	err = s.store.WithinTx(ctx, func(r repository.Repositories) error {
		created, err := r.Cards.InsertMissing(ctx)
		if err != nil {
			return err
		}
		if created > 0 {
			log.Debug("created %d cards for new words", created)
		}

		rows, err := r.Cards.ListWithWords(ctx, repository.CardFilter{OpenedOnly: true})
		if err != nil {
			return err
		}
		var cards []models.Card
		cards, words = splitRows(rows)

		trimmed := flashcard.TrimAssignedNewWords(cards, limit, now)
		flashcard.ApplyUpdates(cards, trimmed)
		sel = flashcard.SelectToday(cards, limit, now)

		if len(trimmed) > 0 {
			log.Info("cleared %d assignments above the daily limit of %d", len(trimmed), limit)
		}
		updates := append(slices.Clip(trimmed), sel.Assigned...)
		if len(updates) == 0 {
			return nil
		}
		return r.Cards.SaveBatch(ctx, updates)
	})
	if err != nil {
		log.Error("failed to load session: %v", err)
		return nil, appError(err, "session", nil)
	}

	session := &models.Session{Items: make([]models.CardWithWord, 0, len(sel.Cards))}
	for _, c := range sel.Cards {
		session.Items = append(session.Items, models.CardWithWord{Card: c, Word: words[c.ID]})
		switch c.State {
		case models.StateNew:
			session.NewCount++
		case models.StateLearning:
			session.LearningCount++
		default:
			session.ReviewCount++
		}
	}
	log.Debug("session loaded: new=%d, learning=%d, review=%d, assigned=%d",
		session.NewCount, session.LearningCount, session.ReviewCount, len(sel.Assigned))
	return session, nil
}

func (s *trainingService) Review(ctx context.Context, cardID string, rating models.Rating) (*models.ReviewResult, error) {
	log := logger.FromContext(ctx).WithPrefix("training").WithFields(map[string]any{
		"card_id": cardID,
		"rating":  rating.String(),
	})
	log.Debug("reviewing card")

	if !rating.IsLearnerFacing() {
		return nil, errors.NewInvalidRatingError(flashcard.ErrInvalidRating)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()
	var result models.ReviewResult
	err := s.store.WithinTx(ctx, func(r repository.Repositories) error {
		card, err := r.Cards.Get(ctx, cardID)
		if err != nil {
			return err
		}
		next, err := s.scheduler.ComputeNextState(*card, rating, now)
		if err != nil {
			return err
		}
		if err := r.Cards.Save(ctx, next); err != nil {
			return err
		}
		if _, err := r.Reviews.Insert(ctx, models.ReviewHistory{
			CardID:        cardID,
			Rating:        rating,
			StateBefore:   card.State,
			StateAfter:    next.State,
			ElapsedDays:   next.ElapsedDays,
			ScheduledDays: next.ScheduledDays,
			ReviewedAt:    now,
		}); err != nil {
			return err
		}
		result = models.ReviewResult{Card: next, PreviousState: card.State}
		return nil
	})
	if err != nil {
		log.Error("review failed, card left unchanged: %v", err)
		return nil, appError(err, "card", cardID)
	}

	log.Debug("card reviewed: %s -> %s, next due %s", result.PreviousState, result.Card.State, result.Card.Due.Format("2006-01-02 15:04"))
	return &result, nil
}

func (s *trainingService) WeakSession(ctx context.Context) ([]models.CardWithWord, error) {
	log := logger.FromContext(ctx).WithPrefix("training")
	log.Debug("loading weak words session")

	rows, err := s.store.Repositories().Cards.ListWithWords(ctx, repository.CardFilter{})
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, appError(err, "card", nil)
	}
	return weakWithWords(rows, s.weak), nil
}

func splitRows(rows []models.CardWithWord) ([]models.Card, map[string]models.Word) {
	cards := make([]models.Card, 0, len(rows))
	words := make(map[string]models.Word, len(rows))
	for _, row := range rows {
		cards = append(cards, row.Card)
		words[row.Card.ID] = row.Word
	}
	return cards, words
}

func weakWithWords(rows []models.CardWithWord, opts stats.Options) []models.CardWithWord {
	cards, words := splitRows(rows)
	weak := stats.WeakWords(cards, opts.LapseThreshold, opts.StabilityThreshold)
	return joinWords(weak, words)
}

func joinWords(cards []models.Card, words map[string]models.Word) []models.CardWithWord {
	out := make([]models.CardWithWord, 0, len(cards))
	for _, c := range cards {
		out = append(out, models.CardWithWord{Card: c, Word: words[c.ID]})
	}
	return out
}

func anyOpened(groups []models.Group) bool {
	for _, g := range groups {
		if g.Opened {
			return true
		}
	}
	return false
}

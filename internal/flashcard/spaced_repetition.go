package flashcard

import (
	"fmt"
	"math"
	"time"

	fsrs "github.com/open-spaced-repetition/go-fsrs/v3"
	"github.com/vytor/wordflash/internal/models"
)

// Params configures the FSRS memory model.
type Params struct {
	DesiredRetention float64 // target recall probability at the due date
	MaximumInterval  int     // upper bound on a scheduled interval, in days
}

// DefaultParams returns the parameters used when nothing is configured.
func DefaultParams() Params {
	return Params{
		DesiredRetention: 0.9,
		MaximumInterval:  36500,
	}
}

// Scheduler applies review outcomes to cards. It holds only model
// constants, so a value may be shared or created per call.
type Scheduler struct {
	fsrs *fsrs.FSRS
}

// NewScheduler validates p and builds a Scheduler.
func NewScheduler(p Params) (*Scheduler, error) {
	if p.DesiredRetention <= 0 || p.DesiredRetention >= 1 {
		return nil, fmt.Errorf("desired retention %v out of range (0, 1)", p.DesiredRetention)
	}
	if p.MaximumInterval < 1 {
		return nil, fmt.Errorf("maximum interval %d must be at least 1 day", p.MaximumInterval)
	}
	fp := fsrs.DefaultParam()
	fp.RequestRetention = p.DesiredRetention
	fp.MaximumInterval = float64(p.MaximumInterval)
	return &Scheduler{fsrs: fsrs.NewFSRS(fp)}, nil
}

// DefaultScheduler returns a Scheduler built from DefaultParams.
func DefaultScheduler() *Scheduler {
	s, err := NewScheduler(DefaultParams())
	if err != nil {
		panic(err)
	}
	return s
}

// ComputeNextState returns the card as it is after being reviewed with
// rating at now. The input card is never modified; on error the returned
// card is the zero value and nothing should be persisted.
//
// Non-New cards without a lastReview (legacy rows) are anchored on their
// current due date, see reviewAnchor.
func (s *Scheduler) ComputeNextState(card models.Card, rating models.Rating, now time.Time) (next models.Card, err error) {
	if !rating.IsLearnerFacing() {
		return models.Card{}, fmt.Errorf("%w: %s", ErrInvalidRating, rating)
	}
	if err := checkPriorState(card); err != nil {
		return models.Card{}, err
	}

	in, elapsed := toModelCard(card, now)

	defer func() {
		if r := recover(); r != nil {
			next = models.Card{}
			err = fmt.Errorf("%w: card %s: model panic: %v", ErrScheduling, card.ID, r)
		}
	}()

	info, ok := s.fsrs.Repeat(in, now)[fsrs.Rating(rating)]
	if !ok {
		return models.Card{}, fmt.Errorf("%w: card %s: no outcome for rating %s", ErrScheduling, card.ID, rating)
	}
	out := info.Card
	if err := checkModelOutput(out); err != nil {
		return models.Card{}, fmt.Errorf("%w: card %s: %v", ErrScheduling, card.ID, err)
	}

	next = card.Clone()
	next.State = models.State(out.State)
	next.Stability = out.Stability
	next.Difficulty = out.Difficulty
	next.ElapsedDays = elapsed
	next.ScheduledDays = int(out.ScheduledDays)
	next.Due = out.Due
	next.Reps = card.Reps + 1
	if rating == models.RatingAgain {
		next.Lapses = card.Lapses + 1
	}
	reviewed := now
	next.LastReview = &reviewed
	next.Learned = next.State == models.StateReview
	next.Seen = true
	return next, nil
}

// Preview returns the outcome of every learner rating without applying any.
func (s *Scheduler) Preview(card models.Card, now time.Time) (map[models.Rating]models.Card, error) {
	out := make(map[models.Rating]models.Card, len(models.LearnerRatings))
	for _, r := range models.LearnerRatings {
		next, err := s.ComputeNextState(card, r, now)
		if err != nil {
			return nil, err
		}
		out[r] = next
	}
	return out, nil
}

// reviewAnchor is the prior-review timestamp of a non-New card. Cards
// migrated without a lastReview fall back to their due date, which
// understates elapsed time for cards rescheduled without a review.
func reviewAnchor(card models.Card) time.Time {
	if card.LastReview != nil {
		return *card.LastReview
	}
	return card.Due
}

func toModelCard(card models.Card, now time.Time) (fsrs.Card, int) {
	if card.State == models.StateNew {
		return fsrs.Card{Due: now, State: fsrs.New}, 0
	}
	anchor := reviewAnchor(card)
	elapsed := wholeDaysBetween(anchor, now)
	return fsrs.Card{
		Due:           card.Due,
		Stability:     card.Stability,
		Difficulty:    card.Difficulty,
		ElapsedDays:   uint64(elapsed),
		ScheduledDays: uint64(max(card.ScheduledDays, 0)),
		Reps:          uint64(max(card.Reps, 0)),
		Lapses:        uint64(max(card.Lapses, 0)),
		State:         fsrs.State(card.State),
		LastReview:    anchor,
	}, elapsed
}

func checkPriorState(card models.Card) error {
	if !card.State.IsValid() {
		return fmt.Errorf("%w: card %s: unknown state %d", ErrScheduling, card.ID, int(card.State))
	}
	if card.Reps < 0 || card.Lapses < 0 || card.ScheduledDays < 0 {
		return fmt.Errorf("%w: card %s: negative counters", ErrScheduling, card.ID)
	}
	if card.State == models.StateNew {
		return nil
	}
	if !finite(card.Stability) || card.Stability <= 0 {
		return fmt.Errorf("%w: card %s: stability %v", ErrScheduling, card.ID, card.Stability)
	}
	if !finite(card.Difficulty) {
		return fmt.Errorf("%w: card %s: difficulty %v", ErrScheduling, card.ID, card.Difficulty)
	}
	if card.LastReview == nil && card.Due.IsZero() {
		return fmt.Errorf("%w: card %s: no review anchor", ErrScheduling, card.ID)
	}
	return nil
}

func checkModelOutput(c fsrs.Card) error {
	switch {
	case !finite(c.Stability) || c.Stability <= 0:
		return fmt.Errorf("stability %v", c.Stability)
	case !finite(c.Difficulty):
		return fmt.Errorf("difficulty %v", c.Difficulty)
	case c.ScheduledDays > math.MaxInt32:
		return fmt.Errorf("scheduled days %d", c.ScheduledDays)
	case c.State == fsrs.New:
		return fmt.Errorf("reviewed card left in state new")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Package stats derives read-only views over a card collection for the
// statistics dashboard.
package stats

import (
	"sort"
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// Options overrides the aggregator thresholds. A zero field means unset and
// takes the default, so a threshold of 0 cannot be configured.
type Options struct {
	LapseThreshold     int
	StabilityThreshold float64
	StaleDays          int
	StrongestLimit     int
}

const (
	DefaultLapseThreshold     = 7
	DefaultStabilityThreshold = 3.0
	DefaultStaleDays          = 80
	DefaultStrongestLimit     = 20
)

// DefaultOptions returns the thresholds used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		LapseThreshold:     DefaultLapseThreshold,
		StabilityThreshold: DefaultStabilityThreshold,
		StaleDays:          DefaultStaleDays,
		StrongestLimit:     DefaultStrongestLimit,
	}
}

// WithDefaults fills unset fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.LapseThreshold == 0 {
		o.LapseThreshold = d.LapseThreshold
	}
	if o.StabilityThreshold == 0 {
		o.StabilityThreshold = d.StabilityThreshold
	}
	if o.StaleDays == 0 {
		o.StaleDays = d.StaleDays
	}
	if o.StrongestLimit == 0 {
		o.StrongestLimit = d.StrongestLimit
	}
	return o
}

// WeakWords returns cards with at least lapseThreshold lapses and stability
// below stabilityThreshold, worst first: lowest stability, then most lapses,
// then highest difficulty.
func WeakWords(cards []models.Card, lapseThreshold int, stabilityThreshold float64) []models.Card {
	var weak []models.Card
	for _, c := range cards {
		if c.Lapses >= lapseThreshold && c.Stability < stabilityThreshold {
			weak = append(weak, c.Clone())
		}
	}
	sort.SliceStable(weak, func(i, j int) bool {
		a, b := weak[i], weak[j]
		if a.Stability != b.Stability {
			return a.Stability < b.Stability
		}
		if a.Lapses != b.Lapses {
			return a.Lapses > b.Lapses
		}
		return a.Difficulty > b.Difficulty
	})
	return weak
}

// StaleWords returns cards last reviewed more than days ago that are not in
// weak, oldest first. Cards never reviewed are not stale.
func StaleWords(cards []models.Card, weak []models.Card, days int, now time.Time) []models.Card {
	exclude := make(map[string]struct{}, len(weak))
	for _, w := range weak {
		exclude[w.ID] = struct{}{}
	}
	cutoff := now.AddDate(0, 0, -days)

	var stale []models.Card
	for _, c := range cards {
		if c.LastReview == nil || !c.LastReview.Before(cutoff) {
			continue
		}
		if _, ok := exclude[c.ID]; ok {
			continue
		}
		stale = append(stale, c.Clone())
	}
	sort.SliceStable(stale, func(i, j int) bool {
		return stale[i].LastReview.Before(*stale[j].LastReview)
	})
	return stale
}

// WordsDueTomorrow counts non-New cards due on the calendar day after now,
// in now's location.
func WordsDueTomorrow(cards []models.Card, now time.Time) int {
	y, m, d := now.Date()
	start := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	n := 0
	for _, c := range cards {
		if c.State == models.StateNew {
			continue
		}
		if !c.Due.Before(start) && c.Due.Before(end) {
			n++
		}
	}
	return n
}

// StrongestWords returns up to limit cards with the highest stability.
func StrongestWords(cards []models.Card, limit int) []models.Card {
	if limit <= 0 {
		return nil
	}
	strongest := make([]models.Card, 0, len(cards))
	for _, c := range cards {
		strongest = append(strongest, c.Clone())
	}
	sort.SliceStable(strongest, func(i, j int) bool {
		return strongest[i].Stability > strongest[j].Stability
	})
	if len(strongest) > limit {
		strongest = strongest[:limit]
	}
	return strongest
}

func SeenCount(cards []models.Card) int {
	n := 0
	for _, c := range cards {
		if c.Seen {
			n++
		}
	}
	return n
}

func LearnedCount(cards []models.Card) int {
	n := 0
	for _, c := range cards {
		if c.Learned {
			n++
		}
	}
	return n
}

// Breakdown counts cards per state.
func Breakdown(cards []models.Card) models.StateBreakdown {
	var b models.StateBreakdown
	for _, c := range cards {
		switch c.State {
		case models.StateNew:
			b.New++
		case models.StateLearning:
			b.Learning++
		case models.StateReview:
			b.Review++
		case models.StateRelearning:
			b.Relearning++
		}
	}
	return b
}

// WordCounts are vocabulary totals that cannot be derived from cards.
type WordCounts struct {
	Total    int // all imported words
	Studying int // words of opened groups
}

// Summarize builds the dashboard summary.
func Summarize(cards []models.Card, words WordCounts, quiz models.QuizStats, opts Options, now time.Time) models.ReviewStats {
	opts = opts.WithDefaults()
	weak := WeakWords(cards, opts.LapseThreshold, opts.StabilityThreshold)
	stale := StaleWords(cards, weak, opts.StaleDays, now)
	return models.ReviewStats{
		TotalWords:       words.Total,
		StudyingWords:    words.Studying,
		SeenWords:        SeenCount(cards),
		LearnedWords:     LearnedCount(cards),
		WeakWords:        len(weak),
		StaleWords:       len(stale),
		DueTomorrow:      WordsDueTomorrow(cards, now),
		States:           Breakdown(cards),
		QuizzesCompleted: quiz.CompletedCount,
		AverageQuizScore: quiz.AverageScore(),
	}
}

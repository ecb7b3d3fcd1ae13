package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/models"
	"github.com/vytor/wordflash/internal/stats"
)

var now = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func ids(cards []models.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func review(id string, lapses int, stability, difficulty float64) models.Card {
	return models.Card{
		ID:         id,
		State:      models.StateReview,
		Due:        now.Add(24 * time.Hour),
		Stability:  stability,
		Difficulty: difficulty,
		Lapses:     lapses,
		Reps:       lapses + 3,
		LastReview: ptr(now.Add(-24 * time.Hour)),
		Learned:    true,
		Seen:       true,
	}
}

func TestWeakWords_EqualStabilityRanksMoreLapsesFirst(t *testing.T) {
	first := review("first", 7, 2.0, 5.0)
	second := review("second", 8, 2.0, 3.0)

	weak := stats.WeakWords([]models.Card{first, second}, 7, 3.0)

	assert.Equal(t, []string{"second", "first"}, ids(weak))
}

func TestWeakWords_Filtering(t *testing.T) {
	cards := []models.Card{
		review("few-lapses", 6, 1.0, 5),
		review("stable", 9, 3.0, 5),
		review("weak", 7, 2.99, 5),
		models.NewCard("new"),
	}

	weak := stats.WeakWords(cards, stats.DefaultLapseThreshold, stats.DefaultStabilityThreshold)

	assert.Equal(t, []string{"weak"}, ids(weak))
}

func TestWeakWords_Ordering(t *testing.T) {
	cards := []models.Card{
		review("a", 7, 2.5, 9),
		review("b", 9, 1.0, 4),
		review("c", 7, 2.5, 6),
		review("d", 8, 2.5, 1),
		review("e", 12, 0.5, 2),
	}

	weak := stats.WeakWords(cards, 7, 3.0)

	require.Equal(t, []string{"e", "b", "d", "a", "c"}, ids(weak))
	for i := 1; i < len(weak); i++ {
		a, b := weak[i-1], weak[i]
		ok := a.Stability < b.Stability ||
			(a.Stability == b.Stability && a.Lapses > b.Lapses) ||
			(a.Stability == b.Stability && a.Lapses == b.Lapses && a.Difficulty >= b.Difficulty)
		assert.True(t, ok, "%s ranked before %s", a.ID, b.ID)
	}
}

func TestStaleWords(t *testing.T) {
	old := review("old", 0, 20, 4)
	old.LastReview = ptr(now.AddDate(0, 0, -200))
	older := review("older", 0, 20, 4)
	older.LastReview = ptr(now.AddDate(0, 0, -300))
	recent := review("recent", 0, 20, 4)
	recent.LastReview = ptr(now.AddDate(0, 0, -10))
	weakAndOld := review("weak", 8, 1, 9)
	weakAndOld.LastReview = ptr(now.AddDate(0, 0, -100))
	legacy := review("legacy", 0, 20, 4)
	legacy.LastReview = nil
	cards := []models.Card{old, recent, weakAndOld, legacy, older, models.NewCard("new")}

	weak := stats.WeakWords(cards, 7, 3.0)
	stale := stats.StaleWords(cards, weak, stats.DefaultStaleDays, now)

	assert.Equal(t, []string{"weak"}, ids(weak))
	assert.Equal(t, []string{"older", "old"}, ids(stale))
}

func TestStaleWords_NeverIncludesCardsWithoutLastReview(t *testing.T) {
	cards := []models.Card{models.NewCard("a"), models.NewCard("b")}
	cards[1].State = models.StateReview
	cards[1].Due = now.AddDate(-5, 0, 0)

	assert.Empty(t, stats.StaleWords(cards, nil, 0, now))
}

func TestStaleWords_CutoffIsExclusive(t *testing.T) {
	edge := review("edge", 0, 10, 5)
	edge.LastReview = ptr(now.AddDate(0, 0, -80))

	assert.Empty(t, stats.StaleWords([]models.Card{edge}, nil, 80, now))
}

func TestWordsDueTomorrow(t *testing.T) {
	tomorrowMorning := review("tm", 0, 5, 5)
	tomorrowMorning.Due = time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	tomorrowNight := review("tn", 0, 5, 5)
	tomorrowNight.Due = time.Date(2026, 3, 11, 23, 59, 0, 0, time.UTC)
	today := review("today", 0, 5, 5)
	today.Due = time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	later := review("later", 0, 5, 5)
	later.Due = time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	newCard := models.NewCard("new")
	newCard.Due = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	n := stats.WordsDueTomorrow([]models.Card{tomorrowMorning, tomorrowNight, today, later, newCard}, now)

	assert.Equal(t, 2, n)
}

func TestStrongestWords(t *testing.T) {
	cards := []models.Card{
		review("mid", 0, 10, 5),
		review("top", 0, 90, 5),
		review("low", 0, 1, 5),
	}

	assert.Equal(t, []string{"top", "mid"}, ids(stats.StrongestWords(cards, 2)))
	assert.Equal(t, []string{"top", "mid", "low"}, ids(stats.StrongestWords(cards, 20)))
	assert.Empty(t, stats.StrongestWords(cards, 0))
}

func TestAggregatorDoesNotMutate(t *testing.T) {
	c := review("a", 9, 1.0, 8)
	c.LastReview = ptr(now.AddDate(-1, 0, 0))
	c.AssignedDate = ptr(now.AddDate(0, -2, 0))
	cards := []models.Card{c, models.NewCard("b")}
	snapshot := []models.Card{cards[0].Clone(), cards[1].Clone()}

	weak := stats.WeakWords(cards, 7, 3.0)
	stats.StaleWords(cards, weak, 80, now)
	stats.WordsDueTomorrow(cards, now)
	strongest := stats.StrongestWords(cards, 20)
	strongest[0].Stability = 999

	assert.Equal(t, snapshot, cards)
}

func TestSummarize(t *testing.T) {
	weak := review("weak", 8, 1, 6)
	learning := models.Card{ID: "l", State: models.StateLearning, Due: now.Add(10 * time.Minute), Stability: 1, LastReview: ptr(now), Seen: true}
	seenOnly := models.NewCard("q")
	seenOnly.Seen = true
	cards := []models.Card{weak, learning, seenOnly, models.NewCard("n")}

	summary := stats.Summarize(cards, stats.WordCounts{Total: 12, Studying: 10}, models.QuizStats{CompletedCount: 4, TotalScore: 30}, stats.Options{}, now)

	assert.Equal(t, 12, summary.TotalWords)
	assert.Equal(t, 10, summary.StudyingWords)
	assert.Equal(t, 3, summary.SeenWords)
	assert.Equal(t, 1, summary.LearnedWords)
	assert.Equal(t, 1, summary.WeakWords)
	assert.Equal(t, 0, summary.StaleWords)
	assert.Equal(t, 1, summary.DueTomorrow)
	assert.Equal(t, models.StateBreakdown{New: 2, Learning: 1, Review: 1}, summary.States)
	assert.Equal(t, 4, summary.QuizzesCompleted)
	assert.InDelta(t, 7.5, summary.AverageQuizScore, 1e-9)
}

func TestOptionsWithDefaults(t *testing.T) {
	assert.Equal(t, stats.DefaultOptions(), stats.Options{}.WithDefaults())

	custom := stats.Options{LapseThreshold: 3, StaleDays: 30}.WithDefaults()
	assert.Equal(t, 3, custom.LapseThreshold)
	assert.Equal(t, 30, custom.StaleDays)
	assert.Equal(t, stats.DefaultStabilityThreshold, custom.StabilityThreshold)
	assert.Equal(t, stats.DefaultStrongestLimit, custom.StrongestLimit)

	zeroed := stats.Options{StabilityThreshold: 0, StaleDays: 0}.WithDefaults()
	assert.Equal(t, stats.DefaultStabilityThreshold, zeroed.StabilityThreshold, "zero means unset")
	assert.Equal(t, stats.DefaultStaleDays, zeroed.StaleDays)
}

package flashcard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/wordflash/internal/flashcard"
	"github.com/vytor/wordflash/internal/models"
)

func ids(cards []models.Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func newCards(idList ...string) []models.Card {
	cards := make([]models.Card, 0, len(idList))
	for _, id := range idList {
		cards = append(cards, models.NewCard(id))
	}
	return cards
}

func dueCard(id string, state models.State, due time.Time) models.Card {
	return models.Card{
		ID:         id,
		State:      state,
		Due:        due,
		Stability:  3,
		Difficulty: 5,
		LastReview: ptr(due.Add(-3 * 24 * time.Hour)),
	}
}

func TestSelectToday_AssignsNewCardsUpToLimit(t *testing.T) {
	cards := newCards("a", "b", "c")

	sel := flashcard.SelectToday(cards, 2, now)

	assert.Equal(t, []string{"a", "b"}, ids(sel.Cards))
	require.Len(t, sel.Assigned, 2)
	for _, c := range sel.Assigned {
		require.NotNil(t, c.AssignedDate)
		assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *c.AssignedDate)
	}
	assert.Nil(t, cards[2].AssignedDate, "c stays unassigned")
	assert.Nil(t, cards[0].AssignedDate, "input is not modified")
}

func TestSelectToday_SecondCallSameDayIsStable(t *testing.T) {
	cards := newCards("a", "b", "c")
	first := flashcard.SelectToday(cards, 2, now)
	flashcard.ApplyUpdates(cards, first.Assigned)

	second := flashcard.SelectToday(cards, 2, now.Add(3*time.Hour))

	assert.Equal(t, ids(first.Cards), ids(second.Cards))
	assert.Empty(t, second.Assigned, "nothing new to assign")
	assert.Nil(t, cards[2].AssignedDate)
}

func TestSelectToday_IdempotentWithoutWrites(t *testing.T) {
	cards := []models.Card{
		models.NewCard("a"),
		dueCard("r1", models.StateReview, now.Add(-time.Hour)),
		models.NewCard("b"),
		dueCard("l1", models.StateLearning, now.Add(-time.Minute)),
	}

	first := flashcard.SelectToday(cards, 5, now)
	second := flashcard.SelectToday(cards, 5, now)

	assert.Equal(t, first, second)
}

func TestSelectToday_OnlyOverdueReviewCards(t *testing.T) {
	cards := []models.Card{
		dueCard("overdue", models.StateReview, now.Add(-24*time.Hour)),
		dueCard("future", models.StateReview, now.Add(24*time.Hour)),
	}

	for _, limit := range []int{0, 1, 20} {
		sel := flashcard.SelectToday(cards, limit, now)
		assert.Equal(t, []string{"overdue"}, ids(sel.Cards))
	}
}

func TestSelectToday_DueExactlyNowIsIncluded(t *testing.T) {
	cards := []models.Card{dueCard("r", models.StateRelearning, now)}

	sel := flashcard.SelectToday(cards, 0, now)

	assert.Equal(t, []string{"r"}, ids(sel.Cards))
}

func TestSelectToday_NewThenDueOrdering(t *testing.T) {
	cards := []models.Card{
		dueCard("r1", models.StateReview, now.Add(-time.Hour)),
		models.NewCard("n1"),
		dueCard("l1", models.StateLearning, now.Add(-time.Minute)),
		models.NewCard("n2"),
		dueCard("r2", models.StateRelearning, now.Add(-2*time.Hour)),
	}

	sel := flashcard.SelectToday(cards, 10, now)

	assert.Equal(t, []string{"n1", "n2", "r1", "l1", "r2"}, ids(sel.Cards))
}

func TestSelectToday_AssignedTodayCountsAllStates(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	graduated := dueCard("g", models.StateLearning, now.Add(time.Hour))
	graduated.AssignedDate = ptr(today)
	kept := models.NewCard("k")
	kept.AssignedDate = ptr(today)
	cards := []models.Card{graduated, kept, models.NewCard("x"), models.NewCard("y")}

	sel := flashcard.SelectToday(cards, 3, now)

	assert.Equal(t, []string{"k", "x"}, ids(sel.Cards), "two slots used, one remaining")
	assert.Equal(t, []string{"x"}, ids(sel.Assigned))
	assert.Equal(t, 2, sel.NewCount())
}

func TestSelectToday_LimitAlreadyReached(t *testing.T) {
	today := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	a := models.NewCard("a")
	a.AssignedDate = ptr(today)
	b := dueCard("b", models.StateReview, now.Add(5*24*time.Hour))
	b.AssignedDate = ptr(today)

	sel := flashcard.SelectToday([]models.Card{a, b, models.NewCard("c")}, 2, now)

	assert.Equal(t, []string{"a"}, ids(sel.Cards))
	assert.Empty(t, sel.Assigned)
}

func TestSelectToday_DeferredCardsAreReassigned(t *testing.T) {
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	deferred := models.NewCard("d")
	deferred.AssignedDate = ptr(yesterday)
	cards := []models.Card{deferred, models.NewCard("e")}

	sel := flashcard.SelectToday(cards, 1, now)

	assert.Equal(t, []string{"d"}, ids(sel.Cards))
	require.Len(t, sel.Assigned, 1)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *sel.Assigned[0].AssignedDate)
}

func TestSelectToday_NewCardsWithPastDueAreNotTreatedAsDue(t *testing.T) {
	card := models.NewCard("n")
	card.Due = now.Add(-30 * 24 * time.Hour)

	sel := flashcard.SelectToday([]models.Card{card}, 0, now)

	assert.Empty(t, sel.Cards)
}

func TestSelectToday_NeverExceedsCapAcrossCalls(t *testing.T) {
	cards := newCards("a", "b", "c", "d", "e", "f")
	s := flashcard.DefaultScheduler()
	limit := 3
	admitted := map[string]bool{}

	at := now
	for i := 0; i < 4; i++ {
		sel := flashcard.SelectToday(cards, limit, at)
		flashcard.ApplyUpdates(cards, sel.Assigned)
		for _, c := range sel.Cards {
			if c.State != models.StateNew {
				continue
			}
			admitted[c.ID] = true
			next, err := s.ComputeNextState(c, models.RatingGood, at)
			require.NoError(t, err)
			flashcard.ApplyUpdates(cards, []models.Card{next})
		}
		at = at.Add(30 * time.Minute)
	}

	assert.Len(t, admitted, limit)
}

func TestSelectToday_DayBoundaryFollowsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 23:30 UTC on the 9th is already the 10th in UTC+3.
	localNow := time.Date(2026, 3, 9, 23, 30, 0, 0, time.UTC).In(loc)
	assigned := time.Date(2026, 3, 10, 0, 0, 0, 0, loc).UTC()
	a := models.NewCard("a")
	a.AssignedDate = &assigned

	sel := flashcard.SelectToday([]models.Card{a, models.NewCard("b")}, 1, localNow)

	assert.Equal(t, []string{"a"}, ids(sel.Cards))
	assert.Empty(t, sel.Assigned)
}

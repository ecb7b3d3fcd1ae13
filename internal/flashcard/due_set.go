package flashcard

import (
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// Selection is today's review queue plus the assignment marks it created.
type Selection struct {
	// Cards is the queue: today's New cards first, then due cards, each
	// group in input order.
	Cards []models.Card
	// Assigned holds the New cards that received today's assignedDate in
	// this call. The caller persists them.
	Assigned []models.Card
}

// NewCount returns how many queued cards are still New.
func (s Selection) NewCount() int {
	n := 0
	for _, c := range s.Cards {
		if c.State == models.StateNew {
			n++
		}
	}
	return n
}

// SelectToday builds the queue for the calendar day of now. Every card
// assigned today counts against newCardLimit whatever its current state, so
// repeated calls on the same day admit no more than newCardLimit New cards
// in total. cards is not modified.
func SelectToday(cards []models.Card, newCardLimit int, now time.Time) Selection {
	today := startOfDay(now)

	var sel Selection
	assignedToday := 0
	for _, c := range cards {
		if !assignedOn(c.AssignedDate, now) {
			continue
		}
		assignedToday++
		if c.State == models.StateNew {
			sel.Cards = append(sel.Cards, c.Clone())
		}
	}

	remaining := newCardLimit - assignedToday
	for _, c := range cards {
		if remaining <= 0 {
			break
		}
		if c.State != models.StateNew || assignedOn(c.AssignedDate, now) {
			continue
		}
		marked := c.Clone()
		day := today
		marked.AssignedDate = &day
		sel.Cards = append(sel.Cards, marked)
		sel.Assigned = append(sel.Assigned, marked)
		remaining--
	}

	for _, c := range cards {
		if c.State != models.StateNew && !c.Due.After(now) {
			sel.Cards = append(sel.Cards, c.Clone())
		}
	}
	return sel
}

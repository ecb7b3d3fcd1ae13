package flashcard

import (
	"time"

	"github.com/vytor/wordflash/internal/models"
)

// TrimAssignedNewWords returns the New cards assigned today beyond the first
// newCardLimit, in existing order, with their assignedDate cleared. Apply
// them before SelectToday when the limit may have shrunk since the last
// session. Cards in any other state are never returned.
func TrimAssignedNewWords(cards []models.Card, newCardLimit int, now time.Time) []models.Card {
	if newCardLimit < 0 {
		newCardLimit = 0
	}
	var trimmed []models.Card
	kept := 0
	for _, c := range cards {
		if c.State != models.StateNew || !assignedOn(c.AssignedDate, now) {
			continue
		}
		if kept < newCardLimit {
			kept++
			continue
		}
		cleared := c.Clone()
		cleared.AssignedDate = nil
		trimmed = append(trimmed, cleared)
	}
	return trimmed
}

// ApplyUpdates replaces cards in place by ID with the given updated copies.
func ApplyUpdates(cards []models.Card, updates []models.Card) {
	if len(updates) == 0 {
		return
	}
	byID := make(map[string]models.Card, len(updates))
	for _, u := range updates {
		byID[u.ID] = u
	}
	for i := range cards {
		if u, ok := byID[cards[i].ID]; ok {
			cards[i] = u
		}
	}
}

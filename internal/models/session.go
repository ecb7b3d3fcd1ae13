package models

// Session is today's review queue with per-state counters. Relearning cards
// count as review.
type Session struct {
	Items         []CardWithWord `json:"items"`
	NewCount      int            `json:"new_count"`
	LearningCount int            `json:"learning_count"`
	ReviewCount   int            `json:"review_count"`
	// NoGroups is set when no vocabulary group is opened for study.
	NoGroups bool `json:"no_groups"`
}

// ReviewResult is the outcome of one review step.
type ReviewResult struct {
	Card          Card  `json:"card"`
	PreviousState State `json:"previous_state"`
}

// ImportResult summarizes a vocabulary import.
type ImportResult struct {
	GroupsUpdated int `json:"groups_updated"`
	GroupsSkipped int `json:"groups_skipped"`
	Words         int `json:"words"`
	WordsRemoved  int `json:"words_removed"`
}

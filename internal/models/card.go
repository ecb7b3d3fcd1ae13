package models

import (
	"fmt"
	"time"
)

// State is the memory-model lifecycle stage of a card.
type State int

const (
	StateNew State = iota
	StateLearning
	StateReview
	StateRelearning
)

var stateNames = [...]string{
	StateNew:        "new",
	StateLearning:   "learning",
	StateReview:     "review",
	StateRelearning: "relearning",
}

func (s State) IsValid() bool {
	return s >= StateNew && s <= StateRelearning
}

func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	for i, name := range stateNames {
		if name == string(text) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("invalid state: %q", text)
}

// Rating is the learner's answer to a card. Manual is an administrative value
// and never valid from the review flow.
type Rating int

const (
	RatingManual Rating = iota
	RatingAgain
	RatingHard
	RatingGood
	RatingEasy
)

var ratingNames = [...]string{
	RatingManual: "manual",
	RatingAgain:  "again",
	RatingHard:   "hard",
	RatingGood:   "good",
	RatingEasy:   "easy",
}

// LearnerRatings are the ratings a learner may submit.
var LearnerRatings = []Rating{RatingAgain, RatingHard, RatingGood, RatingEasy}

// IsLearnerFacing reports whether r is one of Again, Hard, Good, Easy.
func (r Rating) IsLearnerFacing() bool {
	return r >= RatingAgain && r <= RatingEasy
}

func (r Rating) String() string {
	if r >= RatingManual && r <= RatingEasy {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// ParseRating converts a rating name ("again", "hard", "good", "easy", "manual").
func ParseRating(s string) (Rating, error) {
	for i, name := range ratingNames {
		if name == s {
			return Rating(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rating: %q", s)
}

// Card is the persisted memory state of one vocabulary word.
type Card struct {
	ID            string     `json:"id"`
	State         State      `json:"state"`
	Due           time.Time  `json:"due"`
	Stability     float64    `json:"stability"`
	Difficulty    float64    `json:"difficulty"`
	ElapsedDays   int        `json:"elapsed_days"`
	ScheduledDays int        `json:"scheduled_days"`
	Lapses        int        `json:"lapses"`
	Reps          int        `json:"reps"`
	LastReview    *time.Time `json:"last_review,omitempty"`
	AssignedDate  *time.Time `json:"assigned_date,omitempty"`
	Learned       bool       `json:"learned"`
	Seen          bool       `json:"seen"`
}

// NewCard returns a never-reviewed card for the given composite word ID.
func NewCard(id string) Card {
	return Card{ID: id, State: StateNew}
}

// Clone returns a copy that shares no pointers with c.
func (c Card) Clone() Card {
	out := c
	if c.LastReview != nil {
		v := *c.LastReview
		out.LastReview = &v
	}
	if c.AssignedDate != nil {
		v := *c.AssignedDate
		out.AssignedDate = &v
	}
	return out
}

// CardWithWord joins a card with the vocabulary entry it tracks.
type CardWithWord struct {
	Card
	Word Word `json:"word"`
}

// ReviewHistory is one completed review step.
type ReviewHistory struct {
	ID            int64     `json:"id"`
	CardID        string    `json:"card_id"`
	Rating        Rating    `json:"rating"`
	StateBefore   State     `json:"state_before"`
	StateAfter    State     `json:"state_after"`
	ElapsedDays   int       `json:"elapsed_days"`
	ScheduledDays int       `json:"scheduled_days"`
	ReviewedAt    time.Time `json:"reviewed_at"`
}

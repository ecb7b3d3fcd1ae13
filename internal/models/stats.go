package models

// QuizStats accumulates results of the quiz feature.
type QuizStats struct {
	CompletedCount int `json:"completed_count"`
	TotalScore     int `json:"total_score"`
}

// AverageScore returns TotalScore divided by CompletedCount. With no
// completed quizzes the total is returned as is.
func (q QuizStats) AverageScore() float64 {
	if q.CompletedCount == 0 {
		return float64(q.TotalScore)
	}
	return float64(q.TotalScore) / float64(q.CompletedCount)
}

// StateBreakdown counts cards per lifecycle state.
type StateBreakdown struct {
	New        int `json:"new"`
	Learning   int `json:"learning"`
	Review     int `json:"review"`
	Relearning int `json:"relearning"`
}

// ReviewStats is the dashboard summary over the studied collection.
type ReviewStats struct {
	TotalWords       int            `json:"total_words"`
	StudyingWords    int            `json:"studying_words"`
	SeenWords        int            `json:"seen_words"`
	LearnedWords     int            `json:"learned_words"`
	WeakWords        int            `json:"weak_words"`
	StaleWords       int            `json:"stale_words"`
	DueTomorrow      int            `json:"due_tomorrow"`
	States           StateBreakdown `json:"states"`
	QuizzesCompleted int            `json:"quizzes_completed"`
	AverageQuizScore float64        `json:"average_quiz_score"`
}

// Settings holds learner-adjustable preferences.
type Settings struct {
	DailyNewWordsLimit int `json:"daily_new_words_limit" validate:"min=1,max=100"`
}

// DailyNewWordsChoices are the limits offered to the learner.
var DailyNewWordsChoices = []int{10, 20, 30}

package domain

// ResponseRecord is one answer attempt. Records are append-only: once logged
// they are never updated or deleted, and resubmitting the same question
// produces a new record.
type ResponseRecord struct {
	UserID         int64 `json:"userId"`
	QuestionID     int64 `json:"questionId"`
	Correct        bool  `json:"correct"`
	ResponseTimeMS int   `json:"responseTimeMs"` // client-measured, kept for analytics
}

// ResponseStats are per-user aggregates over the response log.
type ResponseStats struct {
	Total   int
	Correct int
}

// Accuracy returns the fraction of correct responses, 0 for an empty stat.
func (s ResponseStats) Accuracy() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Total)
}

// LeaderboardEntry is a user's cumulative score.
type LeaderboardEntry struct {
	UserID int64 `json:"userId"`
	Score  int   `json:"score"`
}

// LeaderboardRow joins a leaderboard entry with the user's persisted tier for
// read APIs. Tier is empty when the user has no stored classification.
type LeaderboardRow struct {
	UserID int64  `json:"userId"`
	Score  int    `json:"score"`
	Tier   string `json:"tier,omitempty"`
}

// Leaderboard is a snapshot of the top scores, ordered best-first.
type Leaderboard struct {
	Rows []LeaderboardRow `json:"rows"`
}

// Answer is one candidate answer for a question.
type Answer struct {
	ID       int64  `json:"id"`
	Correct  bool   `json:"correct"`
	Text     string `json:"text"`
	Feedback string `json:"feedback"`
}

// Question is a question-bank entry with its candidate answers.
type Question struct {
	ID      int64    `json:"question_id"`
	Type    string   `json:"question_type"`
	Text    string   `json:"question_text"`
	Answers []Answer `json:"answers"`
}

// Submission models one scored answer from a client. Correctness is derived
// from SelectedID == CorrectID; neither field is checked against the question
// bank (known trust boundary).
type Submission struct {
	UserID         int64
	QuestionID     int64
	SelectedID     int64
	CorrectID      int64
	ScoreEarned    int
	ResponseTimeMS int
}

// SubmitResult summarizes the outcome of one submission.
type SubmitResult struct {
	Earned  int    `json:"earned"`
	Correct bool   `json:"correct"`
	Tier    string `json:"tier"`
}

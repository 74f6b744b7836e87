package app

import (
	"context"

	"trivia-score-service/internal/domain"
)

// LeaderboardStore holds cumulative per-user scores.
type LeaderboardStore interface {
	// Credit adds amount to the user's score, creating the entry at amount
	// when absent, and returns the new total. Amount may be zero or
	// negative; the caller is trusted.
	Credit(ctx context.Context, userID int64, amount int) (int, error)
	Score(ctx context.Context, userID int64) (int, bool, error)
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// QuestionBank serves questions. Read-only from this service's perspective.
type QuestionBank interface {
	Random(ctx context.Context) (domain.Question, error)
}

// ScoreService contains the scoring use cases: submit an answer, serve a
// random question, and the tier/leaderboard read paths.
type ScoreService struct {
	log         ResponseLog
	leaderboard LeaderboardStore
	tiers       TierStore
	classifier  *TierClassifier
	questions   QuestionBank
	feed        *LeaderboardFeed
	topLimit    int
}

func NewScoreService(log ResponseLog, leaderboard LeaderboardStore, tiers TierStore, classifier *TierClassifier, questions QuestionBank, feed *LeaderboardFeed, topLimit int) *ScoreService {
	if topLimit <= 0 {
		topLimit = 10
	}
	return &ScoreService{
		log:         log,
		leaderboard: leaderboard,
		tiers:       tiers,
		classifier:  classifier,
		questions:   questions,
		feed:        feed,
		topLimit:    topLimit,
	}
}

// Submit records one answer attempt, recomputes tiers, and credits the
// leaderboard. Correctness comes from comparing the client-supplied IDs and
// ScoreEarned is credited as supplied; neither is verified against the
// question bank. There is no rollback: a log append whose follow-on steps
// fail leaves the derived state stale until the next successful submission.
func (s *ScoreService) Submit(ctx context.Context, sub domain.Submission) (domain.SubmitResult, error) {
	correct := sub.SelectedID == sub.CorrectID

	if err := s.log.Append(ctx, domain.ResponseRecord{
		UserID:         sub.UserID,
		QuestionID:     sub.QuestionID,
		Correct:        correct,
		ResponseTimeMS: sub.ResponseTimeMS,
	}); err != nil {
		return domain.SubmitResult{}, err
	}

	tiers, err := s.classifier.Recompute(ctx)
	if err != nil {
		return domain.SubmitResult{}, err
	}
	tier, ok := tiers[sub.UserID]
	if !ok {
		tier = domain.UnratedTier
	}

	if _, err := s.leaderboard.Credit(ctx, sub.UserID, sub.ScoreEarned); err != nil {
		return domain.SubmitResult{}, err
	}

	s.publishLeaderboard(ctx)

	return domain.SubmitResult{
		Earned:  sub.ScoreEarned,
		Correct: correct,
		Tier:    tier,
	}, nil
}

// RandomQuestion returns a uniformly random question with its answers.
func (s *ScoreService) RandomQuestion(ctx context.Context) (domain.Question, error) {
	return s.questions.Random(ctx)
}

// Tiers recomputes and returns the full user -> tier mapping (diagnostic).
func (s *ScoreService) Tiers(ctx context.Context) (map[int64]string, error) {
	return s.classifier.Recompute(ctx)
}

// UserTier reads the last persisted tier for a user without triggering a
// recompute. ok is false for users that have never been classified.
func (s *ScoreService) UserTier(ctx context.Context, userID int64) (string, bool, error) {
	return s.tiers.Tier(ctx, userID)
}

// History returns a user's logged attempts in insertion order.
func (s *ScoreService) History(ctx context.Context, userID int64) ([]domain.ResponseRecord, error) {
	return s.log.ListByUser(ctx, userID)
}

// Leaderboard returns the top entries joined with each user's persisted tier.
func (s *ScoreService) Leaderboard(ctx context.Context, limit int) (domain.Leaderboard, error) {
	if limit <= 0 {
		limit = s.topLimit
	}
	entries, err := s.leaderboard.Top(ctx, limit)
	if err != nil {
		return domain.Leaderboard{}, err
	}
	tiers, err := s.tiers.All(ctx)
	if err != nil {
		return domain.Leaderboard{}, err
	}

	rows := make([]domain.LeaderboardRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, domain.LeaderboardRow{
			UserID: entry.UserID,
			Score:  entry.Score,
			Tier:   tiers[entry.UserID],
		})
	}
	return domain.Leaderboard{Rows: rows}, nil
}

// Subscribe returns a channel of leaderboard snapshots, primed with the
// current standings. The caller must invoke cancel to avoid leaks.
func (s *ScoreService) Subscribe(ctx context.Context) (<-chan domain.Leaderboard, func(), error) {
	if s.feed == nil {
		return nil, nil, ErrFeedDisabled
	}
	initial, err := s.Leaderboard(ctx, 0)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := s.feed.Subscribe(initial)
	return ch, cancel, nil
}

func (s *ScoreService) publishLeaderboard(ctx context.Context) {
	if s.feed == nil || !s.feed.HasSubscribers() {
		return
	}
	lb, err := s.Leaderboard(ctx, 0)
	if err != nil {
		return // feed is best-effort; the submit already succeeded
	}
	s.feed.Publish(lb)
}

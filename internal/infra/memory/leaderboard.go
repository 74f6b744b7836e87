package memory

import (
	"context"
	"sort"
	"sync"

	"trivia-score-service/internal/domain"
)

// Leaderboard is an in-memory implementation of app.LeaderboardStore.
type Leaderboard struct {
	mu     sync.RWMutex
	scores map[int64]int
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{scores: make(map[int64]int)}
}

func (l *Leaderboard) Credit(_ context.Context, userID int64, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scores[userID] += amount
	return l.scores[userID], nil
}

func (l *Leaderboard) Score(_ context.Context, userID int64) (int, bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	score, ok := l.scores[userID]
	return score, ok, nil
}

func (l *Leaderboard) Top(_ context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	l.mu.RLock()
	entries := make([]domain.LeaderboardEntry, 0, len(l.scores))
	for userID, score := range l.scores {
		entries = append(entries, domain.LeaderboardEntry{UserID: userID, Score: score})
	}
	l.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].UserID < entries[j].UserID
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

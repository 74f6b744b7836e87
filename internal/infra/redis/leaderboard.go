package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"trivia-score-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:scores"

// Leaderboard keeps cumulative scores in a Redis sorted set. ZINCRBY makes
// Credit atomic without any application-side locking.
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

func (l *Leaderboard) Credit(ctx context.Context, userID int64, amount int) (int, error) {
	total, err := l.client.ZIncrBy(ctx, leaderboardKey, float64(amount), member(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("credit leaderboard: %w", err)
	}
	return int(total), nil
}

func (l *Leaderboard) Score(ctx context.Context, userID int64) (int, bool, error) {
	score, err := l.client.ZScore(ctx, leaderboardKey, member(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read score: %w", err)
	}
	return int(score), true, nil
}

func (l *Leaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	results, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(results))
	for _, z := range results {
		userID, err := strconv.ParseInt(z.Member.(string), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse leaderboard member %q: %w", z.Member, err)
		}
		entries = append(entries, domain.LeaderboardEntry{UserID: userID, Score: int(z.Score)})
	}
	return entries, nil
}

func member(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

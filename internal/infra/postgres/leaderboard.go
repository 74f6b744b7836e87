package postgres

import (
	"context"
	"errors"
	"fmt"

	"trivia-score-service/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Leaderboard persists cumulative scores; Credit is a single upsert so
// concurrent credits are serialized by the row lock.
type Leaderboard struct {
	pool *pgxpool.Pool
}

func NewLeaderboard(pool *pgxpool.Pool) *Leaderboard {
	return &Leaderboard{pool: pool}
}

func (l *Leaderboard) Credit(ctx context.Context, userID int64, amount int) (int, error) {
	var total int
	err := l.pool.QueryRow(ctx,
		`INSERT INTO leaderboard (user_id, score) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET score = leaderboard.score + EXCLUDED.score
		 RETURNING score`,
		userID, amount,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("credit leaderboard: %w", err)
	}
	return total, nil
}

func (l *Leaderboard) Score(ctx context.Context, userID int64) (int, bool, error) {
	var score int
	err := l.pool.QueryRow(ctx, `SELECT score FROM leaderboard WHERE user_id=$1`, userID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read score: %w", err)
	}
	return score, true, nil
}

func (l *Leaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT user_id, score FROM leaderboard ORDER BY score DESC, user_id LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var entry domain.LeaderboardEntry
		if err := rows.Scan(&entry.UserID, &entry.Score); err != nil {
			return nil, fmt.Errorf("scan leaderboard: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read leaderboard: %w", err)
	}
	return entries, nil
}

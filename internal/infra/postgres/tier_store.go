package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// TierStore persists the derived user -> tier mapping. ReplaceAll truncates
// and re-inserts inside one transaction, so readers never observe a mix of
// old and new rows and orphaned users are removed rather than left stale.
type TierStore struct {
	pool *pgxpool.Pool
}

func NewTierStore(pool *pgxpool.Pool) *TierStore {
	return &TierStore{pool: pool}
}

func (s *TierStore) ReplaceAll(ctx context.Context, tiers map[int64]string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("replace tiers: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_difficulty`); err != nil {
		return fmt.Errorf("clear tiers: %w", err)
	}
	for userID, tier := range tiers {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_difficulty (user_id, tier) VALUES ($1, $2)`, userID, tier,
		); err != nil {
			return fmt.Errorf("insert tier: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("replace tiers: %w", err)
	}
	return nil
}

func (s *TierStore) Tier(ctx context.Context, userID int64) (string, bool, error) {
	var tier string
	err := s.pool.QueryRow(ctx, `SELECT tier FROM user_difficulty WHERE user_id=$1`, userID).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read tier: %w", err)
	}
	return tier, true, nil
}

func (s *TierStore) All(ctx context.Context) (map[int64]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT user_id, tier FROM user_difficulty`)
	if err != nil {
		return nil, fmt.Errorf("read tiers: %w", err)
	}
	defer rows.Close()

	tiers := make(map[int64]string)
	for rows.Next() {
		var userID int64
		var tier string
		if err := rows.Scan(&userID, &tier); err != nil {
			return nil, fmt.Errorf("scan tier: %w", err)
		}
		tiers[userID] = tier
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tiers: %w", err)
	}
	return tiers, nil
}

package app

import (
	"context"

	"trivia-score-service/internal/domain"
)

// ResponseLog abstracts the append-only attempt log (in-memory, Postgres, etc).
type ResponseLog interface {
	Append(ctx context.Context, record domain.ResponseRecord) error
	// AggregateByUser returns per-user counts equivalent to replaying the
	// full log. Implementations are free to maintain the counts
	// incrementally; the mapping must contain exactly the users with at
	// least one record.
	AggregateByUser(ctx context.Context) (map[int64]domain.ResponseStats, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.ResponseRecord, error)
}

// TierStore persists the derived user -> tier mapping.
type TierStore interface {
	// ReplaceAll overwrites the stored mapping with tiers. Rows for users
	// absent from tiers are deleted, not left behind.
	ReplaceAll(ctx context.Context, tiers map[int64]string) error
	Tier(ctx context.Context, userID int64) (string, bool, error)
	All(ctx context.Context) (map[int64]string, error)
}

// TierClassifier recomputes difficulty tiers from the response log.
//
// UserDifficulty is a materialized view over the log: each Recompute rebuilds
// the whole mapping and persists it delete-and-replace, so a user whose
// records vanish (never happens in normal operation, the log is append-only)
// would drop out rather than linger with a stale tier. Concurrent recomputes
// are last-writer-wins; callers serialize externally if they need ordering.
type TierClassifier struct {
	log    ResponseLog
	store  TierStore
	policy domain.TierPolicy
}

func NewTierClassifier(log ResponseLog, store TierStore, policy domain.TierPolicy) *TierClassifier {
	return &TierClassifier{log: log, store: store, policy: policy}
}

// Recompute classifies every user with at least one logged response and
// persists the resulting mapping. An empty log yields an empty mapping and no
// error.
func (c *TierClassifier) Recompute(ctx context.Context) (map[int64]string, error) {
	stats, err := c.log.AggregateByUser(ctx)
	if err != nil {
		return nil, err
	}

	tiers := make(map[int64]string, len(stats))
	for userID, stat := range stats {
		tiers[userID] = c.policy.Classify(stat.Accuracy())
	}

	if err := c.store.ReplaceAll(ctx, tiers); err != nil {
		return nil, err
	}
	return tiers, nil
}

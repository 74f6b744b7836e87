package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const tiersKey = "tiers:by-user"

// TierStore keeps the derived user -> tier mapping in a Redis hash. ReplaceAll
// deletes and rewrites the hash in one MULTI pipeline so stale users never
// survive a recompute.
type TierStore struct {
	client *redis.Client
}

func NewTierStore(client *redis.Client) *TierStore {
	return &TierStore{client: client}
}

func (s *TierStore) ReplaceAll(ctx context.Context, tiers map[int64]string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, tiersKey)
	if len(tiers) > 0 {
		fields := make(map[string]interface{}, len(tiers))
		for userID, tier := range tiers {
			fields[member(userID)] = tier
		}
		pipe.HSet(ctx, tiersKey, fields)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replace tiers: %w", err)
	}
	return nil
}

func (s *TierStore) Tier(ctx context.Context, userID int64) (string, bool, error) {
	tier, err := s.client.HGet(ctx, tiersKey, member(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read tier: %w", err)
	}
	return tier, true, nil
}

func (s *TierStore) All(ctx context.Context) (map[int64]string, error) {
	fields, err := s.client.HGetAll(ctx, tiersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("read tiers: %w", err)
	}
	tiers := make(map[int64]string, len(fields))
	for field, tier := range fields {
		userID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse tier member %q: %w", field, err)
		}
		tiers[userID] = tier
	}
	return tiers, nil
}

package memory

import (
	"context"
	"sync"
)

// TierStore is an in-memory implementation of app.TierStore.
type TierStore struct {
	mu    sync.RWMutex
	tiers map[int64]string
}

func NewTierStore() *TierStore {
	return &TierStore{tiers: make(map[int64]string)}
}

// ReplaceAll swaps the whole mapping; previously stored users absent from
// tiers are dropped.
func (s *TierStore) ReplaceAll(_ context.Context, tiers map[int64]string) error {
	replacement := make(map[int64]string, len(tiers))
	for userID, tier := range tiers {
		replacement[userID] = tier
	}

	s.mu.Lock()
	s.tiers = replacement
	s.mu.Unlock()
	return nil
}

func (s *TierStore) Tier(_ context.Context, userID int64) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tier, ok := s.tiers[userID]
	return tier, ok, nil
}

func (s *TierStore) All(_ context.Context) (map[int64]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]string, len(s.tiers))
	for userID, tier := range s.tiers {
		out[userID] = tier
	}
	return out, nil
}

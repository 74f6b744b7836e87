package app

import (
	"errors"
	"sync"

	"trivia-score-service/internal/domain"
)

// ErrFeedDisabled is returned by Subscribe when no feed was wired.
var ErrFeedDisabled = errors.New("leaderboard feed disabled")

// LeaderboardFeed fans leaderboard snapshots out to subscribers. Slow
// subscribers never block a publish: a full channel has its stale snapshot
// dropped in favor of the fresh one.
type LeaderboardFeed struct {
	mu          sync.Mutex
	subscribers map[chan domain.Leaderboard]struct{}
}

func NewLeaderboardFeed() *LeaderboardFeed {
	return &LeaderboardFeed{
		subscribers: make(map[chan domain.Leaderboard]struct{}),
	}
}

// Subscribe registers a new subscriber primed with initial. The returned
// cancel is idempotent.
func (f *LeaderboardFeed) Subscribe(initial domain.Leaderboard) (<-chan domain.Leaderboard, func()) {
	ch := make(chan domain.Leaderboard, 8)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	ch <- initial

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a snapshot to every subscriber.
func (f *LeaderboardFeed) Publish(lb domain.Leaderboard) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- lb:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- lb
		}
	}
}

// HasSubscribers reports whether anyone is listening, so publishers can skip
// building a snapshot nobody will see.
func (f *LeaderboardFeed) HasSubscribers() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribers) > 0
}

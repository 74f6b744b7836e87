package memory

import (
	"context"
	"sync"

	"trivia-score-service/internal/domain"
)

// ResponseLog is an in-memory implementation of app.ResponseLog. It keeps the
// raw records for history reads and maintains running per-user counters so
// AggregateByUser costs O(users) instead of replaying the log.
type ResponseLog struct {
	mu      sync.RWMutex
	records []domain.ResponseRecord
	stats   map[int64]domain.ResponseStats
}

func NewResponseLog() *ResponseLog {
	return &ResponseLog{
		stats: make(map[int64]domain.ResponseStats),
	}
}

func (l *ResponseLog) Append(_ context.Context, record domain.ResponseRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, record)
	stat := l.stats[record.UserID]
	stat.Total++
	if record.Correct {
		stat.Correct++
	}
	l.stats[record.UserID] = stat
	return nil
}

func (l *ResponseLog) AggregateByUser(_ context.Context) (map[int64]domain.ResponseStats, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make(map[int64]domain.ResponseStats, len(l.stats))
	for userID, stat := range l.stats {
		out[userID] = stat
	}
	return out, nil
}

func (l *ResponseLog) ListByUser(_ context.Context, userID int64) ([]domain.ResponseRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []domain.ResponseRecord
	for _, record := range l.records {
		if record.UserID == userID {
			out = append(out, record)
		}
	}
	return out, nil
}

package postgres

import (
	"context"
	"fmt"

	"trivia-score-service/internal/domain"
	"github.com/jackc/pgx/v4/pgxpool"
)

// ResponseLog persists answer attempts in Postgres. Aggregation is a GROUP BY
// over the log, so recompute cost scales with the number of distinct users on
// the database side rather than being replayed row by row in the service.
type ResponseLog struct {
	pool *pgxpool.Pool
}

func NewResponseLog(pool *pgxpool.Pool) *ResponseLog {
	return &ResponseLog{pool: pool}
}

func (l *ResponseLog) Append(ctx context.Context, record domain.ResponseRecord) error {
	_, err := l.pool.Exec(ctx,
		`INSERT INTO responses (user_id, question_id, correct, response_time_ms) VALUES ($1, $2, $3, $4)`,
		record.UserID, record.QuestionID, record.Correct, record.ResponseTimeMS,
	)
	if err != nil {
		return fmt.Errorf("append response: %w", err)
	}
	return nil
}

func (l *ResponseLog) AggregateByUser(ctx context.Context) (map[int64]domain.ResponseStats, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT user_id, COUNT(*), COUNT(*) FILTER (WHERE correct) FROM responses GROUP BY user_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate responses: %w", err)
	}
	defer rows.Close()

	stats := make(map[int64]domain.ResponseStats)
	for rows.Next() {
		var userID int64
		var stat domain.ResponseStats
		if err := rows.Scan(&userID, &stat.Total, &stat.Correct); err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}
		stats[userID] = stat
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate responses: %w", err)
	}
	return stats, nil
}

func (l *ResponseLog) ListByUser(ctx context.Context, userID int64) ([]domain.ResponseRecord, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT user_id, question_id, correct, response_time_ms FROM responses WHERE user_id=$1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var records []domain.ResponseRecord
	for rows.Next() {
		var record domain.ResponseRecord
		if err := rows.Scan(&record.UserID, &record.QuestionID, &record.Correct, &record.ResponseTimeMS); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	return records, nil
}

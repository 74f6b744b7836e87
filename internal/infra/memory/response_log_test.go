package memory

import (
	"context"
	"testing"

	"trivia-score-service/internal/domain"
)

func TestResponseLogRoundTrip(t *testing.T) {
	ctx := context.Background()
	log := NewResponseLog()

	records := []domain.ResponseRecord{
		{UserID: 1, QuestionID: 10, Correct: true, ResponseTimeMS: 850},
		{UserID: 1, QuestionID: 10, Correct: false, ResponseTimeMS: 4200}, // duplicate question, both kept
		{UserID: 2, QuestionID: 11, Correct: true, ResponseTimeMS: 120},
	}
	for _, record := range records {
		if err := log.Append(ctx, record); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := log.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records for user 1, got %d", len(got))
	}
	if got[0] != records[0] || got[1] != records[1] {
		t.Fatalf("records mutated in storage: %+v", got)
	}
}

func TestResponseLogAggregates(t *testing.T) {
	ctx := context.Background()
	log := NewResponseLog()

	for i := 0; i < 3; i++ {
		_ = log.Append(ctx, domain.ResponseRecord{UserID: 1, QuestionID: int64(i), Correct: true})
	}
	_ = log.Append(ctx, domain.ResponseRecord{UserID: 1, QuestionID: 9, Correct: false})

	stats, err := log.AggregateByUser(ctx)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if stats[1].Total != 4 || stats[1].Correct != 3 {
		t.Fatalf("expected 3/4 for user 1, got %+v", stats[1])
	}
	if got := stats[1].Accuracy(); got != 0.75 {
		t.Fatalf("expected 0.75 accuracy, got %v", got)
	}
	if len(stats) != 1 {
		t.Fatalf("expected only logged users, got %v", stats)
	}
}

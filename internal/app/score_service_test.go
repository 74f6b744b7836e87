package app_test

import (
	"context"
	"testing"
	"time"

	"trivia-score-service/internal/app"
	"trivia-score-service/internal/domain"
	"trivia-score-service/internal/infra/memory"
)

func TestSubmitCorrectAnswer(t *testing.T) {
	ctx := context.Background()
	service, stores := newTestService()

	result, err := service.Submit(ctx, domain.Submission{
		UserID:         7,
		QuestionID:     1,
		SelectedID:     3,
		CorrectID:      3,
		ScoreEarned:    50,
		ResponseTimeMS: 900,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Correct {
		t.Fatalf("expected correct submission, got %+v", result)
	}
	if result.Earned != 50 {
		t.Fatalf("expected earned 50 as supplied, got %d", result.Earned)
	}
	if result.Tier != "Hard" {
		t.Fatalf("expected Hard tier after a 100%% run, got %q", result.Tier)
	}

	score, ok, err := stores.leaderboard.Score(ctx, 7)
	if err != nil || !ok || score != 50 {
		t.Fatalf("expected leaderboard score 50, got %d ok=%v err=%v", score, ok, err)
	}

	records, err := service.History(ctx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	want := domain.ResponseRecord{UserID: 7, QuestionID: 1, Correct: true, ResponseTimeMS: 900}
	if len(records) != 1 || records[0] != want {
		t.Fatalf("expected round-tripped record %+v, got %+v", want, records)
	}
}

func TestSubmitIncorrectAnswerStillCreditsSuppliedScore(t *testing.T) {
	ctx := context.Background()
	service, stores := newTestService()

	result, err := service.Submit(ctx, domain.Submission{
		UserID:      7,
		QuestionID:  1,
		SelectedID:  2,
		CorrectID:   3,
		ScoreEarned: 10, // trusted as supplied, not cross-checked with correctness
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Correct {
		t.Fatalf("expected incorrect submission, got %+v", result)
	}
	if result.Tier != "Easy" {
		t.Fatalf("expected Easy tier at 0%% accuracy, got %q", result.Tier)
	}
	if score, _, _ := stores.leaderboard.Score(ctx, 7); score != 10 {
		t.Fatalf("expected supplied score credited, got %d", score)
	}
}

func TestSubmitDuplicateQuestionCountsEachAttempt(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	for _, correct := range []bool{true, false} {
		correctID := int64(3)
		selected := correctID
		if !correct {
			selected = 1
		}
		if _, err := service.Submit(ctx, domain.Submission{
			UserID: 7, QuestionID: 1, SelectedID: selected, CorrectID: correctID,
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	records, err := service.History(ctx, 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both attempts logged, got %d", len(records))
	}

	// 1 of 2 correct -> Medium under the default buckets.
	tiers, err := service.Tiers(ctx)
	if err != nil {
		t.Fatalf("tiers: %v", err)
	}
	if tiers[7] != "Medium" {
		t.Fatalf("expected Medium at 50%% accuracy, got %q", tiers[7])
	}
}

func TestUserTierUnknownUser(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	if _, ok, err := service.UserTier(ctx, 42); err != nil || ok {
		t.Fatalf("expected no tier for unknown user, ok=%v err=%v", ok, err)
	}
}

func TestLeaderboardJoinsTiers(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	if _, err := service.Submit(ctx, domain.Submission{UserID: 1, QuestionID: 1, SelectedID: 3, CorrectID: 3, ScoreEarned: 30}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := service.Submit(ctx, domain.Submission{UserID: 2, QuestionID: 1, SelectedID: 1, CorrectID: 3, ScoreEarned: 5}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	lb, err := service.Leaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %+v", lb.Rows)
	}
	if lb.Rows[0].UserID != 1 || lb.Rows[0].Score != 30 || lb.Rows[0].Tier != "Hard" {
		t.Fatalf("expected user 1 leading with Hard tier, got %+v", lb.Rows[0])
	}
	if lb.Rows[1].UserID != 2 || lb.Rows[1].Tier != "Easy" {
		t.Fatalf("expected user 2 with Easy tier, got %+v", lb.Rows[1])
	}
}

func TestSubscribeReceivesLeaderboardUpdates(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService()

	ch, cancel, err := service.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	<-ch // initial snapshot

	if _, err := service.Submit(ctx, domain.Submission{UserID: 1, QuestionID: 1, SelectedID: 3, CorrectID: 3, ScoreEarned: 5}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	select {
	case update := <-ch:
		if len(update.Rows) != 1 || update.Rows[0].Score != 5 {
			t.Fatalf("expected updated snapshot, got %+v", update.Rows)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected leaderboard update")
	}
}

type testStores struct {
	log         *memory.ResponseLog
	leaderboard *memory.Leaderboard
	tiers       *memory.TierStore
}

func newTestService() (*app.ScoreService, testStores) {
	stores := testStores{
		log:         memory.NewResponseLog(),
		leaderboard: memory.NewLeaderboard(),
		tiers:       memory.NewTierStore(),
	}
	classifier := app.NewTierClassifier(stores.log, stores.tiers, domain.DefaultTierPolicy())
	questions := memory.NewQuestionBank(memory.NewStaticQuestionLoader([]domain.Question{
		{
			ID:   1,
			Type: "multiple_choice",
			Text: "Select the right option",
			Answers: []domain.Answer{
				{ID: 1, Correct: false, Text: "Wrong"},
				{ID: 3, Correct: true, Text: "Right"},
			},
		},
	}), 5*time.Minute)
	service := app.NewScoreService(stores.log, stores.leaderboard, stores.tiers, classifier, questions, app.NewLeaderboardFeed(), 10)
	return service, stores
}

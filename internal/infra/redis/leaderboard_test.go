package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestLeaderboardCreditAndTop(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	lb := NewLeaderboard(newClient(mr))

	if total, err := lb.Credit(ctx, 1, 5); err != nil || total != 5 {
		t.Fatalf("credit: total=%d err=%v", total, err)
	}
	if total, err := lb.Credit(ctx, 1, 3); err != nil || total != 8 {
		t.Fatalf("credit accumulates: total=%d err=%v", total, err)
	}
	if total, err := lb.Credit(ctx, 1, -2); err != nil || total != 6 {
		t.Fatalf("negative credit: total=%d err=%v", total, err)
	}
	if _, err := lb.Credit(ctx, 2, 20); err != nil {
		t.Fatalf("credit: %v", err)
	}

	score, ok, err := lb.Score(ctx, 1)
	if err != nil || !ok || score != 6 {
		t.Fatalf("expected score 6, got %d ok=%v err=%v", score, ok, err)
	}

	top, err := lb.Top(ctx, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 || top[0].UserID != 2 || top[0].Score != 20 {
		t.Fatalf("expected user 2 leading with 20, got %+v", top)
	}
}

func TestLeaderboardScoreMissing(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	lb := NewLeaderboard(newClient(mr))
	if _, ok, err := lb.Score(context.Background(), 42); err != nil || ok {
		t.Fatalf("expected miss for unknown user, ok=%v err=%v", ok, err)
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

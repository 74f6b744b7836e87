package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestTierStoreReplaceAll(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewTierStore(newClient(mr))

	if err := store.ReplaceAll(ctx, map[int64]string{1: "Hard", 2: "Easy"}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	tier, ok, err := store.Tier(ctx, 1)
	if err != nil || !ok || tier != "Hard" {
		t.Fatalf("expected Hard for user 1, got %q ok=%v err=%v", tier, ok, err)
	}

	// A second replace drops users absent from the new mapping.
	if err := store.ReplaceAll(ctx, map[int64]string{2: "Medium"}); err != nil {
		t.Fatalf("replace 2: %v", err)
	}
	if _, ok, _ := store.Tier(ctx, 1); ok {
		t.Fatalf("expected stale tier deleted")
	}

	all, err := store.All(ctx)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 1 || all[2] != "Medium" {
		t.Fatalf("expected only user 2 Medium, got %v", all)
	}
}

func TestTierStoreReplaceAllEmptyClears(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewTierStore(newClient(mr))

	if err := store.ReplaceAll(ctx, map[int64]string{1: "Hard"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := store.ReplaceAll(ctx, nil); err != nil {
		t.Fatalf("replace empty: %v", err)
	}
	if mr.Exists("tiers:by-user") {
		t.Fatalf("expected tiers key removed")
	}
}

func TestTierStoreMissingUser(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewTierStore(newClient(mr))
	if _, ok, err := store.Tier(context.Background(), 42); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
}

package cache

import (
	"context"
	"testing"
	"time"
)

func TestStore_SetGet(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()

	if err := store.Set(ctx, "k", []byte("value"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := store.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%t err=%v", ok, err)
	}
	if string(got) != "value" {
		t.Fatalf("unexpected value: %q", got)
	}

	got[0] = 'X'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "value" {
		t.Fatalf("stored value must not alias returned slice, got %q", again)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Set(ctx, "k", []byte("v"), 24*time.Hour)

	now = now.Add(24*time.Hour - time.Second)
	if _, ok, _ := store.Get(ctx, "k"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	now = now.Add(time.Second)
	if _, ok, _ := store.Get(ctx, "k"); ok {
		t.Fatalf("expected miss at expiry")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Set(ctx, "player_spid_mapping", []byte("{}"), 0)
	now = now.Add(365 * 24 * time.Hour)

	if _, ok, _ := store.Get(ctx, "player_spid_mapping"); !ok {
		t.Fatalf("expected entry without ttl to survive")
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore()
	ctx := context.Background()
	_ = store.Set(ctx, "metadata:spid", []byte("a"), 0)
	_ = store.Set(ctx, "other", []byte("c"), 0)

	_ = store.Delete(ctx, "other")
	if _, ok, _ := store.Get(ctx, "other"); ok {
		t.Fatalf("expected deleted key to miss")
	}
	if _, ok, _ := store.Get(ctx, "metadata:spid"); !ok {
		t.Fatalf("expected unrelated key to survive delete")
	}
}

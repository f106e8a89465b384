package cache

import (
	"context"
	"testing"
	"time"
)

func TestStore_GetSetExpiry(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"), time.Minute)

	got, ok := store.Get(ctx, "k")
	if !ok || string(got) != "v" {
		t.Fatalf("unexpected read: %q ok=%v", got, ok)
	}

	now = now.Add(time.Minute)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatal("expired entry must read as a miss")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"), 0)
	now = now.Add(100 * 24 * time.Hour)
	if _, ok := store.Get(ctx, "k"); !ok {
		t.Fatal("zero-ttl entry must not expire")
	}
}

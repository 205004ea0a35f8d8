package blob

import (
	"context"
	"testing"
)

func TestMemoryStoreAbsentKey(t *testing.T) {
	store := NewMemoryStore()

	_, ok, err := store.Get(context.Background(), "matches")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("unwritten key should read back absent")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "matches", `[{"id":"m-1"}]`); err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := store.Get(ctx, "matches")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != `[{"id":"m-1"}]` {
		t.Errorf("unexpected blob: ok=%v value=%q", ok, value)
	}

	if err := store.Delete(ctx, "matches"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "matches"); ok {
		t.Error("deleted key should read back absent")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	ctx := context.Background()

	if _, ok, _ := store.Get(ctx, "matches"); ok {
		t.Error("unwritten key should read back absent")
	}

	if err := store.Set(ctx, "matches", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, "matches")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != `[]` {
		t.Errorf("unexpected blob: ok=%v value=%q", ok, value)
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}

	if err := store.Set(context.Background(), "../escape", "x"); err == nil {
		t.Error("path-like keys should be rejected")
	}
}

package memory

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryStoreSetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(v) != `{"a":1}` {
		t.Fatalf("unexpected get: v=%s ok=%v err=%v", v, ok, err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("removing a missing key should not fail: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestMemoryStoreRejectsInvalidJSON(t *testing.T) {
	if err := New().Set(context.Background(), "k", []byte("{not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
}

func TestNewFromFileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("new from missing file: %v", err)
	}
	if err := s.Set(ctx, "wallet_watcher_user", []byte(`{"username":"ann"}`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "tmp", []byte(`1`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Remove(ctx, "tmp"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	reloaded, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	v, ok, _ := reloaded.Get(ctx, "wallet_watcher_user")
	if !ok || string(v) != `{"username":"ann"}` {
		t.Fatalf("snapshot lost value: %s %v", v, ok)
	}
	if _, ok, _ := reloaded.Get(ctx, "tmp"); ok {
		t.Fatalf("removed key came back after reload")
	}
}

func TestNewFromFileKeepsValueBytes(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	values := map[string]string{
		"compact":  `[{"id":"1","amount":12.5}]`,
		"spaced":   `{ "username" : "ann" }`,
		"indented": "[\n  1,\n  2\n]",
	}
	s, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("new from file: %v", err)
	}
	for k, v := range values {
		if err := s.Set(ctx, k, []byte(v)); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	reloaded, err := NewFromFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	for k, want := range values {
		got, ok, err := reloaded.Get(ctx, k)
		if err != nil || !ok || string(got) != want {
			t.Fatalf("%s: expected %q, got %q ok=%v err=%v", k, want, got, ok, err)
		}
	}
}

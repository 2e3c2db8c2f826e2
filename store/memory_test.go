package store

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var out payload
	if ok, err := s.Get(ctx, KeyWardrobe, &out); err != nil || ok {
		t.Fatalf("Get on empty store = %v, %v; want false, nil", ok, err)
	}

	in := payload{Name: "jeans", Count: 2}
	if err := s.Set(ctx, KeyWardrobe, in); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := s.Get(ctx, KeyWardrobe, &out)
	if err != nil || !ok {
		t.Fatalf("get: %v, %v", ok, err)
	}
	if out != in {
		t.Errorf("got %+v, want %+v", out, in)
	}
}

func TestMemoryStoreDeleteMany(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, KeyUserProfile, "a")
	s.Set(ctx, KeyWardrobe, "b")
	s.Set(ctx, KeyHistory, "c")

	if err := s.Delete(ctx, KeyUserProfile, KeyWardrobe, "never_stored"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var v string
	if ok, _ := s.Get(ctx, KeyUserProfile, &v); ok {
		t.Error("profile key survived delete")
	}
	if ok, _ := s.Get(ctx, KeyWardrobe, &v); ok {
		t.Error("wardrobe key survived delete")
	}
	if ok, _ := s.Get(ctx, KeyHistory, &v); !ok || v != "c" {
		t.Errorf("unrelated key = %q, %v; want untouched", v, ok)
	}
}

func TestMemoryStoreGetDecodeError(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	s.Set(ctx, KeyWardrobe, "not a number")
	var n int
	if _, err := s.Get(ctx, KeyWardrobe, &n); err == nil {
		t.Error("expected decode error for mismatched target type")
	}
}

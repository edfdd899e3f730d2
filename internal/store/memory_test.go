package store

import (
	"context"
	"errors"
	"testing"
)

type widget struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Count  int    `json:"count"`
}

func seedWidgets(t *testing.T, s *MemoryRecords) {
	t.Helper()
	ctx := context.Background()
	for _, w := range []widget{
		{ID: "w1", Name: "alpha", Active: true, Count: 1},
		{ID: "w2", Name: "beta", Active: true, Count: 2},
		{ID: "w3", Name: "gamma", Active: false, Count: 3},
	} {
		if err := s.InsertOne(ctx, "widgets", &w); err != nil {
			t.Fatalf("inserting widget: %v", err)
		}
	}
}

func TestFindOne(t *testing.T) {
	s := NewMemoryRecords()
	seedWidgets(t, s)

	var got widget
	if err := s.FindOne(context.Background(), "widgets", Filter{"id": "w2"}, &got); err != nil {
		t.Fatalf("FindOne returned error: %v", err)
	}
	if got.Name != "beta" || got.Count != 2 {
		t.Fatalf("unexpected record: %+v", got)
	}

	if err := s.FindOne(context.Background(), "widgets", Filter{"id": "missing"}, &got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindMany_FilterAndLimit(t *testing.T) {
	s := NewMemoryRecords()
	seedWidgets(t, s)

	var active []widget
	if err := s.FindMany(context.Background(), "widgets", Filter{"active": true}, 0, &active); err != nil {
		t.Fatalf("FindMany returned error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active widgets, got %d", len(active))
	}

	var limited []widget
	if err := s.FindMany(context.Background(), "widgets", Filter{}, 2, &limited); err != nil {
		t.Fatalf("FindMany returned error: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected the limit to apply, got %d", len(limited))
	}
}

func TestInsertOne_RequiresID(t *testing.T) {
	s := NewMemoryRecords()

	if err := s.InsertOne(context.Background(), "widgets", &widget{Name: "anon"}); err == nil {
		t.Fatal("expected an error for a record without an id")
	}
}

func TestUpdateOne_MatchedCount(t *testing.T) {
	s := NewMemoryRecords()
	seedWidgets(t, s)
	ctx := context.Background()

	matched, err := s.UpdateOne(ctx, "widgets", Filter{"id": "w1"}, Patch{"name": "alef"})
	if err != nil {
		t.Fatalf("UpdateOne returned error: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected matched=1, got %d", matched)
	}

	// A patch that changes nothing still matches: matched counts, not
	// modifications.
	matched, err = s.UpdateOne(ctx, "widgets", Filter{"id": "w1"}, Patch{"name": "alef"})
	if err != nil {
		t.Fatalf("UpdateOne returned error: %v", err)
	}
	if matched != 1 {
		t.Fatalf("expected matched=1 on a no-op patch, got %d", matched)
	}

	matched, err = s.UpdateOne(ctx, "widgets", Filter{"id": "missing"}, Patch{"name": "x"})
	if err != nil {
		t.Fatalf("UpdateOne returned error: %v", err)
	}
	if matched != 0 {
		t.Fatalf("expected matched=0, got %d", matched)
	}
}

func TestUpdateMany_ModifiedCount(t *testing.T) {
	s := NewMemoryRecords()
	seedWidgets(t, s)
	ctx := context.Background()

	modified, err := s.UpdateMany(ctx, "widgets", Filter{"active": true}, Patch{"active": false})
	if err != nil {
		t.Fatalf("UpdateMany returned error: %v", err)
	}
	if modified != 2 {
		t.Fatalf("expected modified=2, got %d", modified)
	}

	// Re-running modifies nothing: every matching row already holds the
	// patched value.
	modified, err = s.UpdateMany(ctx, "widgets", Filter{"active": false}, Patch{"active": false})
	if err != nil {
		t.Fatalf("UpdateMany returned error: %v", err)
	}
	if modified != 0 {
		t.Fatalf("expected modified=0 on a no-op, got %d", modified)
	}
}

func TestDelete(t *testing.T) {
	s := NewMemoryRecords()
	seedWidgets(t, s)
	ctx := context.Background()

	deleted, err := s.DeleteOne(ctx, "widgets", Filter{"id": "w1"})
	if err != nil || deleted != 1 {
		t.Fatalf("DeleteOne: deleted=%d err=%v", deleted, err)
	}

	// An empty filter matches the whole collection.
	deleted, err = s.DeleteMany(ctx, "widgets", Filter{})
	if err != nil || deleted != 2 {
		t.Fatalf("DeleteMany: deleted=%d err=%v", deleted, err)
	}

	count, err := s.Count(ctx, "widgets", Filter{})
	if err != nil || count != 0 {
		t.Fatalf("Count: count=%d err=%v", count, err)
	}
}

func TestCount(t *testing.T) {
	s := NewMemoryRecords()
	seedWidgets(t, s)

	count, err := s.Count(context.Background(), "widgets", Filter{"active": true})
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}

package store

import (
	"context"
	"testing"
	"time"
)

func TestNewDocument(t *testing.T) {
	doc := New("a vs b", "a.go", "b.go", []byte("<html></html>"), time.Hour)

	if doc.ID == "" {
		t.Error("document should get an ID")
	}
	if doc.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if doc.ExpiresAt.IsZero() {
		t.Error("ExpiresAt should be set for a positive ttl")
	}
	if doc.IsExpired() {
		t.Error("fresh document should not be expired")
	}

	// IDs are unique
	if other := New("x", "a", "b", nil, 0); other.ID == doc.ID {
		t.Error("documents should get distinct IDs")
	}

	// Zero ttl means no expiry
	forever := New("x", "a", "b", nil, 0)
	if !forever.ExpiresAt.IsZero() {
		t.Error("zero ttl should leave ExpiresAt unset")
	}
	if forever.IsExpired() {
		t.Error("document without expiry should never expire")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	// Missing document
	got, err := s.Get(ctx, "nope")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got != nil {
		t.Error("missing document should return nil, nil")
	}

	// Roundtrip
	doc := New("a vs b", "a", "b", []byte("<html></html>"), time.Hour)
	if err := s.Put(ctx, doc); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, err = s.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got == nil || got.Title != "a vs b" || string(got.HTML) != "<html></html>" {
		t.Errorf("Get returned wrong document: %+v", got)
	}

	// Mutating the returned copy must not affect the store
	got.Title = "mutated"
	again, _ := s.Get(ctx, doc.ID)
	if again.Title != "a vs b" {
		t.Error("store should hand out copies")
	}

	// Delete
	if err := s.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got, _ := s.Get(ctx, doc.ID); got != nil {
		t.Error("document should be gone after Delete")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	doc := New("old", "a", "b", nil, time.Hour)
	doc.ExpiresAt = time.Now().Add(-time.Minute)
	if err := s.Put(ctx, doc); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Get(ctx, doc.ID); err != ErrExpired {
		t.Errorf("Get of expired document = %v, want ErrExpired", err)
	}

	// Expired documents don't show up in listings
	docs, err := s.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 0 {
		t.Errorf("List returned %d docs, want 0", len(docs))
	}

	// Cleanup removes them entirely
	if err := s.Cleanup(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx, doc.ID); got != nil {
		t.Error("expired document should be removed by Cleanup")
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		doc := New("doc", "a", "b", []byte("payload"), 0)
		doc.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.Put(ctx, doc); err != nil {
			t.Fatal(err)
		}
	}

	docs, err := s.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("List returned %d docs, want 2", len(docs))
	}
	if !docs[0].CreatedAt.After(docs[1].CreatedAt) {
		t.Error("List should return newest first")
	}
	for _, doc := range docs {
		if doc.HTML != nil {
			t.Error("List should not carry document HTML")
		}
	}
}

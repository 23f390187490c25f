package store

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process memory. Contents are lost on
// restart; use the mongo backend for anything shared.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document)}
}

// Get retrieves a document by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if doc.IsExpired() {
		return nil, ErrExpired
	}
	cp := *doc
	return &cp, nil
}

// Put stores a document.
func (s *MemoryStore) Put(ctx context.Context, doc *Document) error {
	cp := *doc
	s.mu.Lock()
	s.docs[doc.ID] = &cp
	s.mu.Unlock()
	return nil
}

// Delete removes a document.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.docs, id)
	s.mu.Unlock()
	return nil
}

// List returns document metadata, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Document, error) {
	s.mu.RLock()
	out := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		if doc.IsExpired() {
			continue
		}
		cp := *doc
		cp.HTML = nil
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Cleanup removes expired documents.
func (s *MemoryStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	for id, doc := range s.docs {
		if doc.IsExpired() {
			delete(s.docs, id)
		}
	}
	s.mu.Unlock()
	return nil
}

// Close does nothing for the memory store.
func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

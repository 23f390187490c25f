// Package store persists rendered diff documents for serve mode.
//
// A Document is one rendered artifact plus the metadata needed to list and
// expire it. Backends:
//   - memory: in-process storage for development/testing
//   - mongo: MongoDB-backed storage for multi-instance deployments
//
// Documents carry an optional TTL; expired documents behave as missing and
// Cleanup removes them for good.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrExpired is returned when a document exists but has exceeded its TTL.
// Missing documents are reported as nil, nil from Get.
var ErrExpired = errors.New("expired")

// Document is a stored rendered diff.
type Document struct {
	ID        string    `bson:"_id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	OldName   string    `bson:"old_name" json:"old_name"`
	NewName   string    `bson:"new_name" json:"new_name"`
	HTML      []byte    `bson:"html" json:"-"`
	Files     int       `bson:"files" json:"files"`
	Changed   int       `bson:"changed" json:"changed"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at,omitempty"`
}

// IsExpired returns true if the document has expired.
// Documents without an expiry never expire.
func (d *Document) IsExpired() bool {
	return !d.ExpiresAt.IsZero() && time.Now().After(d.ExpiresAt)
}

// New creates a document with a fresh ID and timestamps. A ttl of zero means
// the document never expires.
func New(title, oldName, newName string, html []byte, ttl time.Duration) *Document {
	doc := &Document{
		ID:        uuid.NewString(),
		Title:     title,
		OldName:   oldName,
		NewName:   newName,
		HTML:      html,
		CreatedAt: time.Now().UTC(),
	}
	if ttl > 0 {
		doc.ExpiresAt = doc.CreatedAt.Add(ttl)
	}
	return doc
}

// Store is the interface for document storage backends.
type Store interface {
	// Get retrieves a document by ID.
	// Returns nil, nil if the document doesn't exist.
	// Returns nil, ErrExpired if the document exists but has expired.
	Get(ctx context.Context, id string) (*Document, error)

	// Put stores a document, replacing any existing one with the same ID.
	Put(ctx context.Context, doc *Document) error

	// Delete removes a document.
	Delete(ctx context.Context, id string) error

	// List returns document metadata (no HTML), newest first, up to limit.
	List(ctx context.Context, limit int) ([]*Document, error)

	// Cleanup removes expired documents.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

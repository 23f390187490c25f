// Package cache stores rendered diff documents keyed by the content of the
// two inputs and the rendering options. A hit skips alignment, highlighting
// and assembly entirely, which matters for the serve mode where the same
// pair of sources is requested repeatedly.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long cached documents stay valid unless a backend is
// given a different value.
const DefaultTTL = 24 * time.Hour

// Cache is the storage backend for rendered documents.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// DocumentKeyOpts carries every rendering option that changes the output
// bytes. Two renders with equal content hashes and equal opts produce the
// same document.
type DocumentKeyOpts struct {
	Lexer         string
	Title         string
	Mode          string
	SyntaxCSS     string // hash or content of a custom syntax stylesheet
	ContextLines  int
	FoldMin       int
	HideFilenames bool
	Overview      bool
}

// Keyer derives cache keys from content hashes and rendering options.
type Keyer interface {
	// DocumentKey returns the key for a rendered document. oldHash and
	// newHash are content hashes of the two inputs.
	DocumentKey(oldHash, newHash string, opts DocumentKeyOpts) string
}

// DefaultKeyer hashes the inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// DocumentKey generates a key of the form doc:hash(oldHash, newHash, opts).
func (k *DefaultKeyer) DocumentKey(oldHash, newHash string, opts DocumentKeyOpts) string {
	return hashKey("doc", oldHash, newHash, opts)
}

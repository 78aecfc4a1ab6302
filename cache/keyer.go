package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/jonwraymond/sorbetbridge/ruby"
)

// Keyer generates deterministic cache keys for adapter queries.
//
// Contract:
// - Determinism: same inputs must produce same key.
// - Concurrency: implementations must be safe for concurrent use.
type Keyer interface {
	// Key generates a cache key from an operation name and the document
	// coordinates the query targets.
	Key(operation string, uri ruby.DocumentURI, version int, pos ruby.Position) (string, error)
}

// DocKeyer generates SHA-256 based cache keys. The document version is
// part of the key, so an edit naturally invalidates every entry for the
// previous revision.
type DocKeyer struct{}

// NewDocKeyer creates a new document keyer.
func NewDocKeyer() *DocKeyer {
	return &DocKeyer{}
}

// Key generates a deterministic cache key.
// Format: sorbet:<operation>:<hash>
// where hash is the first 16 characters of SHA-256(uri|version|line|character)
func (k *DocKeyer) Key(operation string, uri ruby.DocumentURI, version int, pos ruby.Position) (string, error) {
	if operation == "" {
		return "", fmt.Errorf("cache: operation is required: %w", ErrInvalidKey)
	}

	payload := fmt.Sprintf("%s|%d|%d|%d", uri, version, pos.Line, pos.Character)
	hash := sha256.Sum256([]byte(payload))
	hashStr := hex.EncodeToString(hash[:8]) // First 8 bytes = 16 hex chars

	return fmt.Sprintf("sorbet:%s:%s", operation, hashStr), nil
}

// Ensure DocKeyer implements Keyer
var _ Keyer = (*DocKeyer)(nil)

// Package storage implements the content-addressed ciphertext store. Blobs
// are keyed by the sha256 hex digest of their bytes, so writing the same
// content twice is an idempotent overwrite and integrity is checkable from
// the id alone. The store holds ciphertext only; all metadata lives in the
// file catalog.
package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// ErrUnsupportedProvider is returned at startup for unknown provider names.
var ErrUnsupportedProvider = errors.New("unsupported storage provider")

// ContentStore is the blob store contract. Ingress limits (size ceiling,
// non-empty payload, content type) are the caller's responsibility.
type ContentStore interface {
	// Put stores data and returns its content id.
	Put(ctx context.Context, data []byte) (string, error)

	// Get returns the blob bytes or common.ErrorNotFound.
	Get(ctx context.Context, cid string) ([]byte, error)

	// Close releases underlying resources.
	Close() error
}

// ContentID computes the content id for a byte slice.
func ContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

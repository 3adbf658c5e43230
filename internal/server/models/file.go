// Package models defines server-side data models persisted in the database.
package models

import "time"

// File describes server-side metadata for one encrypted upload. The
// ciphertext itself lives in the content store under CID; the record holds
// only the key material the client chose to deposit.
//
// Exactly one key-material shape is valid per record:
//
//   - wrapped mode: Salt (16B) + WrapIV (12B) + WrappedKey are all set and
//     RawKey is empty; the content key is wrapped under a passphrase-derived
//     key the server never sees.
//   - raw mode: RawKey is set and the wrapped fields are empty. Demo-only,
//     refused unless the server is explicitly configured to allow it.
type File struct {
	// ID is the server-assigned record id.
	ID string
	// OwnerAddress is the wallet address that created the record.
	OwnerAddress string

	Title       string
	Description string

	// CID is the content-addressed id of the ciphertext blob.
	CID string

	// Name, Mime and SizeBytes are advisory display metadata declared by
	// the uploader; SizeBytes is validated against the configured ceiling.
	Name      string
	Mime      string
	SizeBytes int64

	// IV is the 12-byte AES-GCM nonce the ciphertext was sealed with.
	IV []byte

	// Wrapped-mode key material.
	Salt       []byte
	WrapIV     []byte
	WrappedKey []byte

	// Raw-mode key material.
	RawKey []byte

	CreatedAt time.Time
}

// HasWrappedKey reports whether the full wrapped-mode field set is present.
func (f *File) HasWrappedKey() bool {
	return len(f.Salt) > 0 && len(f.WrapIV) > 0 && len(f.WrappedKey) > 0
}

// HasRawKey reports whether raw-mode key material is present.
func (f *File) HasRawKey() bool {
	return len(f.RawKey) > 0
}

package models

import "time"

// AccessToken is an opaque bearer credential granting time-bounded,
// revocable redemption of one file record. Tokens are never deleted;
// revocation is a one-way flag so the row doubles as an audit record.
type AccessToken struct {
	// Token is the opaque, unguessable credential string.
	Token string
	// FileID references the file record this token redeems.
	FileID string
	// IssuedTo optionally names the intended recipient address.
	// Informational only; validation does not check it.
	IssuedTo string

	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// TokenListItem is a token row joined with display metadata of its file,
// as returned by owner-facing listings.
type TokenListItem struct {
	Token     string
	FileID    string
	Revoked   bool
	ExpiresAt time.Time
	CreatedAt time.Time

	Title     string
	Name      string
	SizeBytes int64
}

// Redemption is the payload handed to an anonymous token holder after
// successful validation: everything the client needs to fetch and decrypt.
type Redemption struct {
	FileID string
	CID    string

	IV         []byte
	Salt       []byte
	WrapIV     []byte
	WrappedKey []byte
	RawKey     []byte

	Name      string
	Mime      string
	SizeBytes int64
}

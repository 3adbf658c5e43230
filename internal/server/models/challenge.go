package models

import "time"

// Challenge is a pending single-use login nonce, keyed by an opaque
// per-visitor context id. At most one live challenge exists per context;
// issuing a new one replaces the old.
type Challenge struct {
	ContextID string
	Nonce     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

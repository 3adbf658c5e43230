// Package challenges stores pending single-use login nonces, keyed by an
// opaque per-visitor context id.
package challenges

import (
	"context"

	"github.com/avolkovs/cipherdrop/internal/server/models"
)

type Repository interface {
	// Upsert stores a challenge, replacing any pending one for the same
	// context (at most one live challenge per context).
	Upsert(ctx context.Context, challenge *models.Challenge) error

	// Consume atomically removes and returns the pending challenge for the
	// context. A compare-and-invalidate: under concurrent verification
	// attempts exactly one caller gets the challenge; the rest get
	// common.ErrorNotFound. Expired challenges are treated as absent.
	Consume(ctx context.Context, contextID string) (*models.Challenge, error)

	// DeleteExpired removes challenges whose expiry has passed. Abandoned
	// login attempts are only ever cleaned up through this.
	DeleteExpired(ctx context.Context) error
}

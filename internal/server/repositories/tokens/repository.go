package tokens

import (
	"context"

	"github.com/avolkovs/cipherdrop/internal/server/models"
)

type Repository interface {
	// Create inserts a new access token row.
	Create(ctx context.Context, token *models.AccessToken) error

	// Get returns the token row or common.ErrorNotFound. Expired and
	// revoked tokens are still returned; lifecycle interpretation is the
	// service's job.
	Get(ctx context.Context, token string) (*models.AccessToken, error)

	// SetRevoked flips the one-way revoked flag. Idempotent; revoking an
	// already revoked token is not an error. Unknown tokens yield
	// common.ErrorNotFound.
	SetRevoked(ctx context.Context, token string) error

	// ListByOwner returns the owner's tokens joined with file display
	// metadata, newest first, capped at limit.
	ListByOwner(ctx context.Context, owner string, limit int) ([]*models.TokenListItem, error)
}

package files

import (
	"context"

	"github.com/avolkovs/cipherdrop/internal/server/models"
)

type Repository interface {
	// Create inserts a new file record. Records are immutable once written.
	Create(ctx context.Context, file *models.File) error

	// GetByID returns the full record or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.File, error)

	// ListByOwner returns the owner's records, newest first, capped at limit.
	// Owner matching is case-insensitive.
	ListByOwner(ctx context.Context, owner string, limit int) ([]*models.File, error)
}

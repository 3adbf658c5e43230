package tokens

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/server/models"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/files"
)

// MemoryRepository is a mutex-guarded in-memory implementation. It joins
// against a files.MemoryRepository for owner-facing listings, mirroring the
// SQL join of the Postgres implementation.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.AccessToken
	files *files.MemoryRepository
}

func NewMemoryRepository(fileRepo *files.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string]*models.AccessToken),
		files: fileRepo,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, token *models.AccessToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *token
	r.items[token.Token] = &clone
	return nil
}

func (r *MemoryRepository) Get(ctx context.Context, token string) (*models.AccessToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.items[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *row
	return &clone, nil
}

func (r *MemoryRepository) SetRevoked(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.items[token]
	if !ok {
		return common.ErrorNotFound
	}
	row.Revoked = true
	return nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*models.TokenListItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.TokenListItem
	for _, token := range r.items {
		file, err := r.files.GetByID(ctx, token.FileID)
		if err != nil {
			continue
		}
		if !strings.EqualFold(file.OwnerAddress, owner) {
			continue
		}
		result = append(result, &models.TokenListItem{
			Token:     token.Token,
			FileID:    token.FileID,
			Revoked:   token.Revoked,
			ExpiresAt: token.ExpiresAt,
			CreatedAt: token.CreatedAt,
			Title:     file.Title,
			Name:      file.Name,
			SizeBytes: file.SizeBytes,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

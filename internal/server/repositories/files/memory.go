package files

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory implementation used by tests
// and the in-memory repository manager.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.File
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*models.File)}
}

func (r *MemoryRepository) Create(ctx context.Context, file *models.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *file
	r.items[file.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.items[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	clone := *file
	return &clone, nil
}

func (r *MemoryRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*models.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.File
	for _, file := range r.items {
		if strings.EqualFold(file.OwnerAddress, owner) {
			clone := *file
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

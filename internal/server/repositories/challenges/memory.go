package challenges

import (
	"context"
	"sync"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/server/models"
)

// MemoryRepository is a mutex-guarded in-memory implementation. The mutex
// gives Consume the same delete-and-return atomicity as the SQL
// DELETE ... RETURNING of the Postgres implementation.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[string]*models.Challenge
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*models.Challenge)}
}

func (r *MemoryRepository) Upsert(ctx context.Context, challenge *models.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *challenge
	r.items[challenge.ContextID] = &clone
	return nil
}

func (r *MemoryRepository) Consume(ctx context.Context, contextID string) (*models.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	challenge, ok := r.items[contextID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(r.items, contextID)
	if challenge.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrorNotFound
	}
	return challenge, nil
}

func (r *MemoryRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for id, challenge := range r.items {
		if challenge.ExpiresAt.Before(now) {
			delete(r.items, id)
		}
	}
	return nil
}

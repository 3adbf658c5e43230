package storage

import (
	"context"
	"sync"

	"github.com/avolkovs/cipherdrop/internal/common"
)

// MemoryStore is a mutex-guarded in-memory blob store for tests.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Put(ctx context.Context, data []byte) (string, error) {
	cid := ContentID(data)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[cid] = append([]byte(nil), data...)
	return cid, nil
}

func (s *MemoryStore) Get(ctx context.Context, cid string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[cid]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *MemoryStore) Close() error {
	return nil
}

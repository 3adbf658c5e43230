package repomanager

import (
	"github.com/avolkovs/cipherdrop/internal/dbx"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/challenges"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/files"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/tokens"
)

// InMemoryRepositoryManager returns shared in-memory repositories and
// ignores the DBTX argument. Used by tests; there is no real database, so
// callers run with a nil *sql.DB and services skip real transactions.
type InMemoryRepositoryManager struct {
	files      *files.MemoryRepository
	tokens     *tokens.MemoryRepository
	challenges *challenges.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	fileRepo := files.NewMemoryRepository()
	return &InMemoryRepositoryManager{
		files:      fileRepo,
		tokens:     tokens.NewMemoryRepository(fileRepo),
		challenges: challenges.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Files(db dbx.DBTX) files.Repository {
	return m.files
}

func (m *InMemoryRepositoryManager) Tokens(db dbx.DBTX) tokens.Repository {
	return m.tokens
}

func (m *InMemoryRepositoryManager) Challenges(db dbx.DBTX) challenges.Repository {
	return m.challenges
}

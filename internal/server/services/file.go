package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/dbx"
	"github.com/avolkovs/cipherdrop/internal/server/config"
	"github.com/avolkovs/cipherdrop/internal/server/models"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const (
	maxTitleLen = 200
	maxNameLen  = 255

	ivSize     = 12
	saltSize   = 16
	wrapIVSize = 12
)

// FileService owns file metadata records. Records are immutable once
// written; a re-upload creates a new record.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *FileService {
	return &FileService{db: db, repomanager: m, config: cfg}
}

// Create validates and persists a file record and issues its first access
// token in the same transaction, so a stored record always has at least one
// access path. Returns the new record id and the default token.
func (s *FileService) Create(ctx context.Context, file *models.File, ttlMinutes int) (string, *models.AccessToken, error) {
	if err := s.validate(file); err != nil {
		return "", nil, err
	}

	now := time.Now()
	file.ID = uuid.New().String()
	file.Title = strings.TrimSpace(file.Title)
	file.CreatedAt = now

	token := &models.AccessToken{
		Token:     uuid.New().String(),
		FileID:    file.ID,
		ExpiresAt: now.Add(tokenValidity(ttlMinutes, s.config.TokenDefaultValidity)),
		CreatedAt: now,
	}

	err := runInTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Files(tx).Create(ctx, file); err != nil {
			return fmt.Errorf("error creating file record: %w", err)
		}
		if err := s.repomanager.Tokens(tx).Create(ctx, token); err != nil {
			return fmt.Errorf("error creating default token: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	return file.ID, token, nil
}

// ListByOwner returns the owner's file records, newest first, capped.
func (s *FileService) ListByOwner(ctx context.Context, owner string) ([]*models.File, error) {
	repo := s.repomanager.Files(s.db)
	result, err := repo.ListByOwner(ctx, owner, listCap)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return result, nil
}

// validate enforces the write-time contract: field limits, exact IV/salt
// sizes, and exactly one complete key-material shape. Raw mode additionally
// needs the server-side allow flag; refusing it is the secure default.
func (s *FileService) validate(file *models.File) error {
	if file.CID == "" {
		return common.NewValidationError("cid", "required")
	}
	if len(strings.TrimSpace(file.Title)) > maxTitleLen {
		return common.NewValidationError("title", "too long")
	}
	if len(file.Name) > maxNameLen {
		return common.NewValidationError("name", "too long")
	}
	if file.SizeBytes < 0 {
		return common.NewValidationError("sizeBytes", "negative")
	}
	if file.SizeBytes > s.config.MaxDeclaredSizeBytes {
		return common.ErrFileTooLarge
	}
	if len(file.IV) != ivSize {
		return common.NewValidationError("iv", "must be 12 bytes")
	}
	if len(file.Salt) > 0 && len(file.Salt) != saltSize {
		return common.NewValidationError("salt", "must be 16 bytes")
	}
	if len(file.WrapIV) > 0 && len(file.WrapIV) != wrapIVSize {
		return common.NewValidationError("ivWrap", "must be 12 bytes")
	}

	hasWrapped := file.HasWrappedKey()
	hasRaw := file.HasRawKey()
	hasPartialWrapped := !hasWrapped && (len(file.Salt) > 0 || len(file.WrapIV) > 0 || len(file.WrappedKey) > 0)

	switch {
	case hasPartialWrapped:
		return common.NewValidationError("keyMaterial", "incomplete wrapped key fields")
	case hasWrapped && hasRaw:
		return common.NewValidationError("keyMaterial", "both wrapped and raw key present")
	case !hasWrapped && !hasRaw:
		return common.NewValidationError("keyMaterial", "missing")
	case hasRaw && !s.config.AllowRawKeys:
		return common.ErrRawKeysNotAllowed
	}

	return nil
}

// tokenValidity resolves the requested TTL in minutes against the default.
// Absent or non-positive requests fall back to the default.
func tokenValidity(ttlMinutes int, fallback time.Duration) time.Duration {
	if ttlMinutes > 0 {
		return time.Duration(ttlMinutes) * time.Minute
	}
	return fallback
}

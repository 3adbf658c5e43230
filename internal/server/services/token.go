package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/server/auth"
	"github.com/avolkovs/cipherdrop/internal/server/config"
	"github.com/avolkovs/cipherdrop/internal/server/models"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TokenService is the access token registry. Issuance and revocation
// require an authenticated owner; validation is intentionally anonymous,
// the token itself being the credential. Ownership failures are reported as
// not-found so issuance and revocation never confirm a foreign file exists.
type TokenService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{db: db, repomanager: m, config: cfg}
}

// Issue creates a new bearer token for fileID. The caller must own the
// file; unknown file and foreign file are both common.ErrorNotFound.
func (s *TokenService) Issue(ctx context.Context, owner, fileID string, ttlMinutes int, issuedTo string) (*models.AccessToken, error) {
	if err := s.checkOwnership(ctx, owner, fileID); err != nil {
		return nil, err
	}

	now := time.Now()
	token := &models.AccessToken{
		Token:     uuid.New().String(),
		FileID:    fileID,
		IssuedTo:  issuedTo,
		ExpiresAt: now.Add(tokenValidity(ttlMinutes, s.config.TokenDefaultValidity)),
		CreatedAt: now,
	}

	if err := s.repomanager.Tokens(s.db).Create(ctx, token); err != nil {
		return nil, fmt.Errorf("error creating token: %w", err)
	}

	return token, nil
}

// Validate resolves a bearer token to its redemption payload. The three
// failure modes are distinct: the anonymous holder is told whether the
// token is unknown, revoked, or expired.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.Redemption, error) {
	row, err := s.repomanager.Tokens(s.db).Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading token: %w", err)
	}

	if row.Revoked {
		return nil, common.ErrTokenRevoked
	}
	if row.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrTokenExpired
	}

	file, err := s.repomanager.Files(s.db).GetByID(ctx, row.FileID)
	if err != nil {
		return nil, fmt.Errorf("error loading file for token: %w", err)
	}

	return &models.Redemption{
		FileID:     file.ID,
		CID:        file.CID,
		IV:         file.IV,
		Salt:       file.Salt,
		WrapIV:     file.WrapIV,
		WrappedKey: file.WrappedKey,
		RawKey:     file.RawKey,
		Name:       file.Name,
		Mime:       file.Mime,
		SizeBytes:  file.SizeBytes,
	}, nil
}

// Revoke flips the token's one-way revoked flag. The caller must own the
// file the token belongs to; otherwise not-found and the token is left
// untouched. Revoking twice is not an error.
func (s *TokenService) Revoke(ctx context.Context, owner, token string) error {
	row, err := s.repomanager.Tokens(s.db).Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading token: %w", err)
	}

	if err := s.checkOwnership(ctx, owner, row.FileID); err != nil {
		return err
	}

	if err := s.repomanager.Tokens(s.db).SetRevoked(ctx, token); err != nil {
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's tokens with file display metadata,
// newest first, capped.
func (s *TokenService) ListByOwner(ctx context.Context, owner string) ([]*models.TokenListItem, error) {
	result, err := s.repomanager.Tokens(s.db).ListByOwner(ctx, owner, listCap)
	if err != nil {
		return nil, fmt.Errorf("error listing tokens: %w", err)
	}
	return result, nil
}

func (s *TokenService) checkOwnership(ctx context.Context, owner, fileID string) error {
	file, err := s.repomanager.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading file: %w", err)
	}
	if !auth.SameAddress(file.OwnerAddress, owner) {
		return common.ErrorNotFound
	}
	return nil
}

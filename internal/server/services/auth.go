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

// AuthService implements the challenge/response login state machine and
// session minting. Nonces are single-use: any verification attempt consumes
// the pending challenge, success or not.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *config.Config
}

func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{db: db, repomanager: m, config: cfg}
}

// IssueNonce creates a fresh login challenge for the visitor context and
// returns the nonce plus the exact message to sign. Any previously pending
// nonce for the context is replaced.
func (s *AuthService) IssueNonce(ctx context.Context, contextID string) (string, string, error) {
	nonce := uuid.New().String()
	now := time.Now()

	challenge := &models.Challenge{
		ContextID: contextID,
		Nonce:     nonce,
		ExpiresAt: now.Add(s.config.NonceValidityDuration),
		CreatedAt: now,
	}

	repo := s.repomanager.Challenges(s.db)

	// Abandoned login attempts leave rows behind; each new challenge
	// sweeps the stale ones out.
	if err := repo.DeleteExpired(ctx); err != nil {
		return "", "", fmt.Errorf("error purging expired challenges: %w", err)
	}

	if err := repo.Upsert(ctx, challenge); err != nil {
		return "", "", fmt.Errorf("error storing challenge: %w", err)
	}

	return nonce, auth.NonceMessage(nonce), nil
}

// Verify consumes the pending challenge and checks the signature over the
// issued message against the claimed address. The challenge is invalidated
// before the signature is examined, so a failed attempt burns the nonce and
// a replayed signature fails with ErrMissingChallenge.
func (s *AuthService) Verify(ctx context.Context, contextID, address, signature string) (string, error) {
	repo := s.repomanager.Challenges(s.db)

	challenge, err := repo.Consume(ctx, contextID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrMissingChallenge
		}
		return "", fmt.Errorf("error consuming challenge: %w", err)
	}

	recovered, err := auth.RecoverAddress(auth.NonceMessage(challenge.Nonce), signature)
	if err != nil {
		return "", err
	}

	if !auth.SameAddress(recovered, address) {
		return "", common.ErrAddressMismatch
	}

	return address, nil
}

// MintSession converts a verified address into a signed session credential.
func (s *AuthService) MintSession(address string) (string, error) {
	return auth.GenerateSession(address, []byte(s.config.SecretKey), s.config.SessionValidityDuration)
}

// ResolveSession verifies a session credential and returns its address.
func (s *AuthService) ResolveSession(credential string) (string, error) {
	return auth.GetAddressFromSession(credential, []byte(s.config.SecretKey))
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/server/config"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenFixture struct {
	files  *FileService
	tokens *TokenService
	fileID string
}

// newTokenFixture seeds one wrapped-mode file owned by owner and returns
// services sharing the same in-memory repositories.
func newTokenFixture(t *testing.T, cfg *config.Config, owner string) *tokenFixture {
	t.Helper()
	m := repomanager.NewInMemoryRepositoryManager()
	files := NewFileService(nil, m, cfg)
	tokens := NewTokenService(nil, m, cfg)

	fileID, _, err := files.Create(context.Background(), wrappedFile(owner), 0)
	require.NoError(t, err)

	return &tokenFixture{files: files, tokens: tokens, fileID: fileID}
}

func TestTokenService_Issue(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")

	token, err := f.tokens.Issue(context.Background(), "0xOwner", f.fileID, 60, "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, f.fileID, token.FileID)
	assert.Equal(t, "alice", token.IssuedTo)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)
}

func TestTokenService_IssueCaseInsensitiveOwner(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")

	_, err := f.tokens.Issue(context.Background(), "0xOWNER", f.fileID, 0, "")
	assert.NoError(t, err)
}

func TestTokenService_IssueConcealsForeignFile(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")
	ctx := context.Background()

	// Foreign file and unknown file are indistinguishable to the caller.
	_, err := f.tokens.Issue(ctx, "0xIntruder", f.fileID, 0, "")
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	_, err = f.tokens.Issue(ctx, "0xOwner", "no-such-file", 0, "")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestTokenService_Validate(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")
	ctx := context.Background()

	token, err := f.tokens.Issue(ctx, "0xOwner", f.fileID, 0, "")
	require.NoError(t, err)

	redemption, err := f.tokens.Validate(ctx, token.Token)
	require.NoError(t, err)
	assert.Equal(t, f.fileID, redemption.FileID)
	assert.Equal(t, "aabbcc", redemption.CID)
	assert.Equal(t, "report.pdf", redemption.Name)
	assert.Len(t, redemption.IV, 12)
	assert.NotEmpty(t, redemption.WrappedKey)
	assert.Empty(t, redemption.RawKey)
}

func TestTokenService_ValidateUnknown(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")

	_, err := f.tokens.Validate(context.Background(), "no-such-token")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestTokenService_ValidateRevoked(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")
	ctx := context.Background()

	token, err := f.tokens.Issue(ctx, "0xOwner", f.fileID, 0, "")
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(ctx, "0xOwner", token.Token))

	_, err = f.tokens.Validate(ctx, token.Token)
	assert.True(t, errors.Is(err, common.ErrTokenRevoked))
}

func TestTokenService_ValidateExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TokenDefaultValidity = -time.Minute
	f := newTokenFixture(t, cfg, "0xOwner")
	ctx := context.Background()

	token, err := f.tokens.Issue(ctx, "0xOwner", f.fileID, 0, "")
	require.NoError(t, err)

	_, err = f.tokens.Validate(ctx, token.Token)
	assert.True(t, errors.Is(err, common.ErrTokenExpired))
}

func TestTokenService_RevokedWinsOverExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TokenDefaultValidity = -time.Minute
	f := newTokenFixture(t, cfg, "0xOwner")
	ctx := context.Background()

	token, err := f.tokens.Issue(ctx, "0xOwner", f.fileID, 0, "")
	require.NoError(t, err)
	require.NoError(t, f.tokens.Revoke(ctx, "0xOwner", token.Token))

	_, err = f.tokens.Validate(ctx, token.Token)
	assert.True(t, errors.Is(err, common.ErrTokenRevoked))
}

func TestTokenService_RevokeIdempotent(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")
	ctx := context.Background()

	token, err := f.tokens.Issue(ctx, "0xOwner", f.fileID, 0, "")
	require.NoError(t, err)

	require.NoError(t, f.tokens.Revoke(ctx, "0xOwner", token.Token))
	assert.NoError(t, f.tokens.Revoke(ctx, "0xOwner", token.Token))
}

func TestTokenService_RevokeByNonOwner(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")
	ctx := context.Background()

	token, err := f.tokens.Issue(ctx, "0xOwner", f.fileID, 0, "")
	require.NoError(t, err)

	err = f.tokens.Revoke(ctx, "0xIntruder", token.Token)
	assert.True(t, errors.Is(err, common.ErrorNotFound))

	// The token must survive the refused revocation.
	_, err = f.tokens.Validate(ctx, token.Token)
	assert.NoError(t, err)
}

func TestTokenService_RevokeUnknown(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")

	err := f.tokens.Revoke(context.Background(), "0xOwner", "no-such-token")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestTokenService_ListByOwner(t *testing.T) {
	f := newTokenFixture(t, testConfig(), "0xOwner")
	ctx := context.Background()

	_, err := f.tokens.Issue(ctx, "0xOwner", f.fileID, 0, "bob")
	require.NoError(t, err)

	// Seeded file already carries its default token.
	list, err := f.tokens.ListByOwner(ctx, "0xOwner")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, item := range list {
		assert.Equal(t, f.fileID, item.FileID)
		assert.Equal(t, "report", item.Title)
	}

	list, err = f.tokens.ListByOwner(ctx, "0xIntruder")
	require.NoError(t, err)
	assert.Empty(t, list)
}

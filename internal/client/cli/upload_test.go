package cli

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avolkovs/cipherdrop/internal/client/api"
	clientconfig "github.com/avolkovs/cipherdrop/internal/client/config"
	"github.com/avolkovs/cipherdrop/internal/client/wallet"
	"github.com/avolkovs/cipherdrop/internal/logging"
	"github.com/avolkovs/cipherdrop/internal/server/config"
	"github.com/avolkovs/cipherdrop/internal/server/httpapi"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/repomanager"
	"github.com/avolkovs/cipherdrop/internal/server/services"
	"github.com/avolkovs/cipherdrop/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newBackend stands up the full server stack on in-memory repositories and
// storage so the commands run against the real contract.
func newBackend(t *testing.T, allowRawKeys bool) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.AllowRawKeys = allowRawKeys

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	m := repomanager.NewInMemoryRepositoryManager()

	srv := httpapi.NewServer(logger,
		cfg,
		services.NewAuthService(nil, m, cfg),
		services.NewFileService(nil, m, cfg),
		services.NewTokenService(nil, m, cfg),
		storage.NewMemoryStore(),
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newLoggedInApp(t *testing.T, ts *httptest.Server, input string) *App {
	t.Helper()

	c, err := api.NewClient(ts.URL, 10*time.Second)
	require.NoError(t, err)

	w, err := wallet.LoadOrCreate(filepath.Join(t.TempDir(), "wallet.key"))
	require.NoError(t, err)

	a := &App{
		config: &clientconfig.Config{},
		client: c,
		wallet: w,
		reader: bufio.NewReader(strings.NewReader(input)),
	}
	a.Login(context.Background())
	require.True(t, a.isLoggedIn())
	return a
}

// Raw mode escrows the content key with the record: the recipient needs only
// the token, no passphrase prompt on either end.
func TestUploadRawThroughFetch(t *testing.T) {
	ts := newBackend(t, true)
	ctx := context.Background()

	plaintext := []byte("raw mode payload")
	src := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(src, plaintext, 0o600))

	owner := newLoggedInApp(t, ts, src+"\nnotes\n")
	owner.upload(ctx, []string{"raw"})

	tokens, err := owner.client.ListTokens(ctx)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	token := tokens[0].Token

	// Anonymous recipient with nothing but the token.
	rc, err := api.NewClient(ts.URL, 10*time.Second)
	require.NoError(t, err)

	redemption, err := rc.ValidateToken(ctx, token)
	require.NoError(t, err)
	require.NotEmpty(t, redemption.RawKey)
	assert.Empty(t, redemption.WrappedKey)
	assert.Empty(t, redemption.Salt)

	recipient := &App{
		config: &clientconfig.Config{},
		client: rc,
		reader: bufio.NewReader(strings.NewReader("")),
	}
	t.Chdir(t.TempDir())
	recipient.fetch(ctx, []string{token})

	got, err := os.ReadFile("note.txt")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

// Against a default server the raw upload is refused and no record appears.
func TestUploadRawRefusedByDefault(t *testing.T) {
	ts := newBackend(t, false)
	ctx := context.Background()

	src := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o600))

	owner := newLoggedInApp(t, ts, src+"\nnotes\n")
	owner.upload(ctx, []string{"raw"})

	files, err := owner.client.ListFiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, files)
}

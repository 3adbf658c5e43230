package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/avolkovs/cipherdrop/internal/common"
	sc "github.com/avolkovs/cipherdrop/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentID_Deterministic(t *testing.T) {
	a := ContentID([]byte("payload"))
	b := ContentID([]byte("payload"))
	c := ContentID([]byte("other"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "sha256 hex digest")
}

func TestMemoryStore_PutGetRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cid, err := store.Put(ctx, []byte("ciphertext bytes"))
	require.NoError(t, err)
	require.Equal(t, ContentID([]byte("ciphertext bytes")), cid)

	got, err := store.Get(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, []byte("ciphertext bytes"), got)
}

func TestMemoryStore_PutIsIdempotent(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cid1, err := store.Put(ctx, []byte("same"))
	require.NoError(t, err)
	cid2, err := store.Put(ctx, []byte("same"))
	require.NoError(t, err)

	assert.Equal(t, cid1, cid2)
}

func TestMemoryStore_GetUnknown(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "deadbeef")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestBadgerStore_PutGetRoundTrip(t *testing.T) {
	store, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	payload := []byte("badger ciphertext")

	cid, err := store.Put(ctx, payload)
	require.NoError(t, err)

	got, err := store.Get(ctx, cid)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = store.Get(ctx, "unknown-cid")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestNewContentStore_UnknownProvider(t *testing.T) {
	cfg := &sc.Config{StorageProvider: "tape"}

	_, err := NewContentStore(context.Background(), cfg)
	assert.True(t, errors.Is(err, ErrUnsupportedProvider))
}

func TestNewContentStore_Memory(t *testing.T) {
	cfg := &sc.Config{StorageProvider: sc.StorageProviderMemory}

	store, err := NewContentStore(context.Background(), cfg)
	require.NoError(t, err)
	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 24*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 10*time.Minute, cfg.NonceValidityDuration)
	assert.Equal(t, 24*time.Hour, cfg.TokenDefaultValidity)
	assert.False(t, cfg.AllowRawKeys, "raw key storage must default to off")
	assert.False(t, cfg.RequireCSRF)
	assert.Equal(t, int64(50*1024*1024), cfg.MaxDeclaredSizeBytes)
	assert.Equal(t, int64(20*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, StorageProviderBadger, cfg.StorageProvider)
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-a", ":9090", "-t", "60", "-w", "-o", "s3"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, time.Hour, cfg.SessionValidityDuration)
	assert.True(t, cfg.AllowRawKeys)
	assert.Equal(t, StorageProviderS3, cfg.StorageProvider)
}

func TestParseJson_Overrides(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "cfg-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{
		"endpoint_addr_http": ":7070",
		"database_dsn": "postgres://u:p@h/db",
		"secret_key": "json-secret",
		"session_validity_duration": "12h",
		"nonce_validity_duration": "5m",
		"token_default_validity": "1h",
		"allow_raw_keys": true,
		"require_csrf": true,
		"max_declared_size_bytes": 1024,
		"max_upload_bytes": 512,
		"storage_provider": "memory",
		"badger_path": "/tmp/blobs"
	}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server", "-c", f.Name()}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 12*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 5*time.Minute, cfg.NonceValidityDuration)
	assert.Equal(t, time.Hour, cfg.TokenDefaultValidity)
	assert.True(t, cfg.AllowRawKeys)
	assert.True(t, cfg.RequireCSRF)
	assert.Equal(t, int64(1024), cfg.MaxDeclaredSizeBytes)
	assert.Equal(t, int64(512), cfg.MaxUploadBytes)
	assert.Equal(t, StorageProviderMemory, cfg.StorageProvider)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"server"}

	cfg := &Config{}
	cfg.LoadDefaults()
	before := *cfg
	parseJson(cfg)

	assert.Equal(t, before, *cfg)
}

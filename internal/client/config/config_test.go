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

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerEndpointAddr)
	assert.Equal(t, "cipherdrop.key", cfg.KeyFile)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
}

func TestParseFlags_Overrides(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-a", "http://example.org:9090", "-k", "/tmp/wallet.key", "-t", "5"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://example.org:9090", cfg.ServerEndpointAddr)
	assert.Equal(t, "/tmp/wallet.key", cfg.KeyFile)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestParseJson_Overrides(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "cfg-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{
		"server_endpoint_addr": "http://json:8081",
		"key_file": "/keys/wallet.key",
		"request_timeout": "10s"
	}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"client", "-c", f.Name()}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "http://json:8081", cfg.ServerEndpointAddr)
	assert.Equal(t, "/keys/wallet.key", cfg.KeyFile)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

// Package config handles configuration for the CLI client.
package config

import "time"

// Config holds runtime settings for the cipherdrop CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the backend HTTP API.
//   - KeyFile: path to the secp256k1 wallet key file (created on demand).
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerEndpointAddr string
	KeyFile            string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.KeyFile = "cipherdrop.key"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"encoding/json"
	"os"

	"github.com/avolkovs/cipherdrop/internal/flagx"
	"github.com/avolkovs/cipherdrop/internal/timex"
)

// JsonConfig is the JSON-file counterpart of Config. Duration fields use
// timex.Duration so both "24h" strings and integer nanoseconds parse. It is
// an intermediate DTO only; values are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP        string         `json:"endpoint_addr_http"`
	DatabaseDSN             string         `json:"database_dsn"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
	NonceValidityDuration   timex.Duration `json:"nonce_validity_duration"`
	TokenDefaultValidity    timex.Duration `json:"token_default_validity"`
	AllowRawKeys            bool           `json:"allow_raw_keys"`
	RequireCSRF             bool           `json:"require_csrf"`
	MaxDeclaredSizeBytes    int64          `json:"max_declared_size_bytes"`
	MaxUploadBytes          int64          `json:"max_upload_bytes"`
	StorageProvider         string         `json:"storage_provider"`
	BadgerPath              string         `json:"badger_path"`
	S3RootUser              string         `json:"s3_root_user"`
	S3RootPassword          string         `json:"s3_root_password"`
	S3Bucket                string         `json:"s3_bucket"`
	S3Region                string         `json:"s3_region"`
	S3BaseEndpoint          string         `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flag into the provided Config. If no flag is set, nothing is
// loaded. An unreadable or invalid file panics: a half-applied config file
// is worse than a crash at startup.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.SessionValidityDuration = c.SessionValidityDuration.Duration
	config.NonceValidityDuration = c.NonceValidityDuration.Duration
	config.TokenDefaultValidity = c.TokenDefaultValidity.Duration
	config.AllowRawKeys = c.AllowRawKeys
	config.RequireCSRF = c.RequireCSRF
	config.MaxDeclaredSizeBytes = c.MaxDeclaredSizeBytes
	config.MaxUploadBytes = c.MaxUploadBytes
	config.StorageProvider = c.StorageProvider
	config.BadgerPath = c.BadgerPath
	config.S3RootUser = c.S3RootUser
	config.S3RootPassword = c.S3RootPassword
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
}

package config

import (
	"flag"
	"os"
	"time"

	"github.com/avolkovs/cipherdrop/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session JWT HMAC secret key
//	-t int      session validity, minutes
//	-n int      login nonce validity, minutes
//	-k int      default access token validity, minutes
//	-w          allow raw (unwrapped) server-side key storage
//	-f          require the CSRF double-submit check on mutating calls
//	-o string   storage provider: badger, s3, memory
//	-j string   badger data directory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Duration
// flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-t", "-n", "-k", "-w", "-f", "-o", "-j", "-u", "-p", "-b", "-g", "-e",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	sessionValidity := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	nonceValidity := fs.Int("n", int(config.NonceValidityDuration.Minutes()), "nonce validity (in minutes)")
	tokenValidity := fs.Int("k", int(config.TokenDefaultValidity.Minutes()), "default token validity (in minutes)")

	fs.BoolVar(&config.AllowRawKeys, "w", config.AllowRawKeys, "allow raw key storage (demo only)")
	fs.BoolVar(&config.RequireCSRF, "f", config.RequireCSRF, "require CSRF check on mutating calls")

	fs.StringVar(&config.StorageProvider, "o", config.StorageProvider, "storage provider (badger, s3, memory)")
	fs.StringVar(&config.BadgerPath, "j", config.BadgerPath, "badger data directory")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionValidity) * time.Minute
	config.NonceValidityDuration = time.Duration(*nonceValidity) * time.Minute
	config.TokenDefaultValidity = time.Duration(*tokenValidity) * time.Minute
}

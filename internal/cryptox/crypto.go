// Package cryptox implements the client-resident encryption protocol:
// AES-256-GCM content encryption, passphrase-based key derivation, and
// wrapping of the content key under the derived key.
//
// The server only ever receives ciphertext, the content IV, the salt, the
// wrap IV, and the wrapped key. The passphrase, the derived wrapping key,
// and the unwrapped content key never leave the client.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"

	"github.com/avolkovs/cipherdrop/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the AES-256 content key size in bytes.
	KeySize = 32
	// IVSize is the AES-GCM nonce size in bytes.
	IVSize = 12
	// SaltSize is the PBKDF2 salt size in bytes.
	SaltSize = 16
	// WrapIterations is the fixed PBKDF2 work factor. Changing it breaks
	// unwrapping of previously stored key material.
	WrapIterations = 200_000
)

// GenerateKey returns a fresh random 256-bit content key.
func GenerateKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// GenerateIV returns a fresh random 96-bit AES-GCM nonce.
func GenerateIV() []byte {
	return common.GenerateRandByteArray(IVSize)
}

// GenerateSalt returns a fresh random 128-bit derivation salt.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveWrapKey derives a 256-bit wrapping key from a passphrase and salt
// using PBKDF2-SHA256 with the fixed WrapIterations work factor. The same
// passphrase and salt always produce the same key.
func DeriveWrapKey(passphrase, salt []byte) []byte {
	return pbkdf2.Key(passphrase, salt, WrapIterations, KeySize, sha256.New)
}

// Encrypt seals plaintext with AES-256-GCM under key and iv.
func Encrypt(plaintext, key, iv []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return aesgcm.Seal(nil, iv, plaintext, nil), nil
}

// Decrypt opens AES-256-GCM ciphertext. A tampered ciphertext, a wrong key,
// and a wrong IV are indistinguishable: all surface as ErrDecryptionFailed.
func Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aesgcm.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return nil, common.ErrDecryptionFailed
	}
	return plaintext, nil
}

// WrapKey encrypts a raw content key under wrapKey and wrapIV.
func WrapKey(rawKey, wrapKey, wrapIV []byte) ([]byte, error) {
	return Encrypt(rawKey, wrapKey, wrapIV)
}

// UnwrapKey recovers the raw content key. A wrong passphrase (and therefore
// a wrong derived wrapKey) fails the GCM integrity check and is reported as
// ErrDecryptionFailed, same as corrupted key material.
func UnwrapKey(wrapped, wrapKey, wrapIV []byte) ([]byte, error) {
	return Decrypt(wrapped, wrapKey, wrapIV)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

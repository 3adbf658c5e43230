// Package wallet manages the client's secp256k1 identity key: generation,
// storage on disk, and signing of login messages in the personal-sign format
// the server verifies.
package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

type Wallet struct {
	key *ecdsa.PrivateKey
}

// LoadOrCreate loads the key at path, generating and persisting a fresh one
// if the file does not exist. The key file is created owner-readable only.
func LoadOrCreate(path string) (*Wallet, error) {
	key, err := crypto.LoadECDSA(path)
	if err == nil {
		return &Wallet{key: key}, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading key file: %w", err)
	}

	key, err = crypto.GenerateKey()
	if err != nil {
		return nil, fmt.Errorf("error generating key: %w", err)
	}
	if err := crypto.SaveECDSA(path, key); err != nil {
		return nil, fmt.Errorf("error saving key file: %w", err)
	}
	return &Wallet{key: key}, nil
}

// Address returns the checksummed wallet address.
func (w *Wallet) Address() string {
	return crypto.PubkeyToAddress(w.key.PublicKey).Hex()
}

// SignMessage signs message in the personal-sign format (prefixed hash,
// recovery id offset by 27) and returns the 0x-prefixed hex signature.
func (w *Wallet) SignMessage(message string) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash([]byte(message)), w.key)
	if err != nil {
		return "", fmt.Errorf("error signing message: %w", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

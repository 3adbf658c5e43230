package auth

import (
	"strings"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// NonceMessage builds the human-readable login message for a nonce.
// The signer must reproduce it byte-for-byte.
func NonceMessage(nonce string) string {
	return common.NonceMessagePrefix + nonce
}

// RecoverAddress recovers the signer's wallet address from an EIP-191
// personal-sign signature over message. The signature is the usual 65-byte
// hex string (r||s||v) produced by wallets, with v in {0,1,27,28}.
// Any defect yields common.ErrInvalidSignature.
func RecoverAddress(message, signature string) (string, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil || len(sig) != crypto.SignatureLength {
		return "", common.ErrInvalidSignature
	}

	// Normalize v: wallets emit 27/28, go-ethereum wants 0/1.
	sig = append([]byte(nil), sig...)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	if sig[crypto.RecoveryIDOffset] > 1 {
		return "", common.ErrInvalidSignature
	}

	pub, err := crypto.SigToPub(accounts.TextHash([]byte(message)), sig)
	if err != nil {
		return "", common.ErrInvalidSignature
	}

	return crypto.PubkeyToAddress(*pub).Hex(), nil
}

// SameAddress compares two wallet addresses case-insensitively. Addresses
// travel in mixed case (EIP-55 checksum or lowercased), so equality must
// ignore case.
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

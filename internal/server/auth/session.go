// Package auth implements the two halves of wallet-based authentication:
// stateless signed session credentials (JWT HS256) and recovery of the
// signer's address from an EIP-191 personal-sign signature.
package auth

import (
	"errors"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carries the authenticated wallet address plus the standard
// registered claims (iat, exp).
type SessionClaims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
}

// GenerateSession mints a signed session credential for the given address.
// Validity is fully determined by signature and expiry; there is no
// server-side session store and no revocation list.
func GenerateSession(address string, secretKey []byte, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Address: address,
	})

	return token.SignedString(secretKey)
}

// GetAddressFromSession verifies a session credential and returns the
// subject address. Expired credentials yield common.ErrSessionExpired;
// any other defect (bad signature, malformed payload, missing address)
// yields common.ErrInvalidSession.
func GetAddressFromSession(tokenString string, secretKey []byte) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidSession
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrSessionExpired
		}
		return "", common.ErrInvalidSession
	}

	if !token.Valid || claims.Address == "" {
		return "", common.ErrInvalidSession
	}

	return claims.Address, nil
}

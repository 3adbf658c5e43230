package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
)

func TestGenerateAndResolveSession_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	address := "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

	tok, err := GenerateSession(address, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}

	got, err := GetAddressFromSession(tok, secret)
	if err != nil {
		t.Fatalf("GetAddressFromSession error: %v", err)
	}
	if got != address {
		t.Fatalf("address mismatch: got %q want %q", got, address)
	}
}

func TestGetAddressFromSession_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")

	tok, err := GenerateSession("0xabc", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}

	_, err = GetAddressFromSession(tok, secret)
	if !errors.Is(err, common.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestGetAddressFromSession_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateSession("0xabc", []byte("right-secret"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}

	_, err = GetAddressFromSession(tok, []byte("wrong-secret"))
	if !errors.Is(err, common.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestGetAddressFromSession_Malformed(t *testing.T) {
	t.Parallel()

	_, err := GetAddressFromSession("not.a.jwt", []byte("k"))
	if !errors.Is(err, common.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}
}

func TestGetAddressFromSession_MissingAddress(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateSession("", secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSession error: %v", err)
	}

	_, err = GetAddressFromSession(tok, secret)
	if !errors.Is(err, common.ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession for empty address, got %v", err)
	}
}

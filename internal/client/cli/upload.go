package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/avolkovs/cipherdrop/internal/client/api"
	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/cryptox"
)

// upload encrypts a local file and deposits ciphertext plus key material on
// the server. By default the content key is wrapped under a passphrase the
// server never sees; "upload raw" skips the wrapping and escrows the key
// with the record, so the token alone decrypts. Raw mode only works against
// a server started with raw keys enabled. Passphrase and key material are
// wiped afterwards.
func (a *App) upload(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Println("Login first")
		return
	}

	rawMode := len(args) > 0 && args[0] == "raw"

	path, err := GetSimpleText(a.reader, "File to upload", os.Stdout)
	if err != nil || path == "" {
		fmt.Println("Cancelled")
		return
	}

	plaintext, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Cannot read file: %v\n", err)
		return
	}

	title, err := GetSimpleText(a.reader, "Title (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Cancelled")
		return
	}

	key := cryptox.GenerateKey()
	defer common.WipeByteArray(key)
	iv := cryptox.GenerateIV()

	ciphertext, err := cryptox.Encrypt(plaintext, key, iv)
	if err != nil {
		fmt.Printf("Encryption failed: %v\n", err)
		return
	}

	req := &api.FileCreateRequest{
		Title:     title,
		FileName:  filepath.Base(path),
		Mime:      mime.TypeByExtension(filepath.Ext(path)),
		SizeBytes: int64(len(plaintext)),
		IV:        iv,
	}

	if rawMode {
		req.RawKey = key
	} else {
		passphrase, err := GetPassphrase(os.Stdout)
		if err != nil {
			fmt.Printf("Cannot read passphrase: %v\n", err)
			return
		}
		defer common.WipeByteArray(passphrase)

		salt := cryptox.GenerateSalt()
		wrapIV := cryptox.GenerateIV()
		wrapKey := cryptox.DeriveWrapKey(passphrase, salt)
		defer common.WipeByteArray(wrapKey)

		wrapped, err := cryptox.WrapKey(key, wrapKey, wrapIV)
		if err != nil {
			fmt.Printf("Key wrapping failed: %v\n", err)
			return
		}
		req.Salt = salt
		req.IVWrap = wrapIV
		req.WrappedKey = wrapped
	}

	cid, err := a.client.Upload(ctx, filepath.Base(path), ciphertext)
	if err != nil {
		fmt.Printf("Upload failed: %v\n", err)
		return
	}
	req.CID = cid

	fileID, token, err := a.client.CreateFile(ctx, req)
	if err != nil {
		fmt.Printf("Record creation failed: %v\n", err)
		return
	}

	fmt.Printf("Uploaded.\n  fileId: %s\n  token:  %s\n", fileID, token)
	if rawMode {
		fmt.Println("Raw mode: anyone holding the token can decrypt this file.")
	} else {
		fmt.Println("Share the token and the passphrase over separate channels.")
	}
}

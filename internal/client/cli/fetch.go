package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/cryptox"
)

// fetch redeems a sharing token, downloads the ciphertext and decrypts it
// locally. Works without a login: the token is the whole credential. All
// decryption failures print one generic message, deliberately not saying
// whether the passphrase or the data was at fault.
func (a *App) fetch(ctx context.Context, args []string) {

	token := ""
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		token, err = GetSimpleText(a.reader, "Sharing token", os.Stdout)
		if err != nil || token == "" {
			fmt.Println("Cancelled")
			return
		}
	}

	redemption, err := a.client.ValidateToken(ctx, token)
	if err != nil {
		fmt.Printf("Token rejected: %v\n", err)
		return
	}

	ciphertext, err := a.client.Download(ctx, redemption.CID)
	if err != nil {
		fmt.Printf("Download failed: %v\n", err)
		return
	}

	var key []byte
	if len(redemption.WrappedKey) > 0 {
		passphrase, err := GetPassphrase(os.Stdout)
		if err != nil {
			fmt.Printf("Cannot read passphrase: %v\n", err)
			return
		}
		wrapKey := cryptox.DeriveWrapKey(passphrase, redemption.Salt)
		common.WipeByteArray(passphrase)

		key, err = cryptox.UnwrapKey(redemption.WrappedKey, wrapKey, redemption.IVWrap)
		common.WipeByteArray(wrapKey)
		if err != nil {
			fmt.Println("Decryption failed")
			return
		}
	} else {
		key = redemption.RawKey
	}

	plaintext, err := cryptox.Decrypt(ciphertext, key, redemption.IV)
	common.WipeByteArray(key)
	if err != nil {
		fmt.Println("Decryption failed")
		return
	}

	name := redemption.Name
	if name == "" {
		name = "cipherdrop.out"
	}
	if err := os.WriteFile(name, plaintext, 0o600); err != nil {
		fmt.Printf("Cannot write %s: %v\n", name, err)
		return
	}

	fmt.Printf("Saved %d bytes to %s\n", len(plaintext), name)
}

// Package cli implements the interactive cipherdrop client: wallet login,
// client-side encryption, upload, fetch and token management over the HTTP
// API. All encryption and decryption happens locally; the server only ever
// sees ciphertext and wrapped key material.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/avolkovs/cipherdrop/internal/client/api"
	"github.com/avolkovs/cipherdrop/internal/client/config"
	"github.com/avolkovs/cipherdrop/internal/client/wallet"
)

type App struct {
	config  *config.Config
	client  *api.Client
	wallet  *wallet.Wallet
	address string
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	w, err := wallet.LoadOrCreate(c.KeyFile)
	if err != nil {
		return nil, err
	}

	client, err := api.NewClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, client: client, wallet: w, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.address != ""
}

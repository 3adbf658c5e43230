package cli

import (
	"context"
	"fmt"
	"strings"
)

// Login runs the challenge/response handshake: start, sign the returned
// message with the wallet key, verify. On success the session cookie lives in
// the client's jar and a CSRF token is fetched for mutating calls.
func (a *App) Login(ctx context.Context) {

	message, err := a.client.AuthStart(ctx)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	signature, err := a.wallet.SignMessage(message)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	address, err := a.client.AuthVerify(ctx, strings.ToLower(a.wallet.Address()), signature)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	if err := a.client.FetchCsrf(ctx); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}

	a.address = address
	fmt.Printf("Logged in as %s\n", address)
}

func (a *App) Logout(ctx context.Context) {
	if err := a.client.Logout(ctx); err != nil {
		fmt.Printf("Logout failed: %v\n", err)
		return
	}
	a.address = ""
	fmt.Println("Logged out")
}

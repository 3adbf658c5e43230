package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"
)

// share issues an extra sharing token for an owned file.
func (a *App) share(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Println("Login first")
		return
	}

	fileID := ""
	if len(args) > 0 {
		fileID = args[0]
	} else {
		var err error
		fileID, err = GetSimpleText(a.reader, "File id", os.Stdout)
		if err != nil || fileID == "" {
			fmt.Println("Cancelled")
			return
		}
	}

	ttlMinutes := 0
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			ttlMinutes = n
		}
	}

	token, expiresAt, err := a.client.IssueToken(ctx, fileID, ttlMinutes, "")
	if err != nil {
		fmt.Printf("Issue failed: %v\n", err)
		return
	}

	fmt.Printf("Token: %s (expires %s)\n", token, expiresAt.Format(time.RFC3339))
}

func (a *App) revoke(ctx context.Context, args []string) {
	if !a.isLoggedIn() {
		fmt.Println("Login first")
		return
	}

	token := ""
	if len(args) > 0 {
		token = args[0]
	} else {
		var err error
		token, err = GetSimpleText(a.reader, "Token to revoke", os.Stdout)
		if err != nil || token == "" {
			fmt.Println("Cancelled")
			return
		}
	}

	if err := a.client.RevokeToken(ctx, token); err != nil {
		fmt.Printf("Revoke failed: %v\n", err)
		return
	}

	fmt.Println("Revoked")
}

func (a *App) listTokens(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Login first")
		return
	}

	tokens, err := a.client.ListTokens(ctx)
	if err != nil {
		fmt.Printf("List failed: %v\n", err)
		return
	}
	if len(tokens) == 0 {
		fmt.Println("No tokens")
		return
	}

	for _, t := range tokens {
		state := "active"
		if t.Revoked {
			state = "revoked"
		} else if t.ExpiresAt.Before(time.Now()) {
			state = "expired"
		}
		fmt.Printf("%s  %-8s  %s  expires %s\n", t.Token, state, t.Name, t.ExpiresAt.Format(time.RFC3339))
	}
}

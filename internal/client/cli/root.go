package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if a.address == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", shortAddress(a.address))
}

func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:8] + ".." + address[len(address)-4:]
}

func (a *App) Root(ctx context.Context) {

	log.Println("Welcome to cipherdrop CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	a.Login(ctx)

	for {
		fmt.Printf("cdrop %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: upload [raw], fetch, share, revoke, files, tokens, logout, exit")
			} else {
				fmt.Println("Available commands: login, fetch, exit")
			}
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "upload":
			a.upload(ctx, args)
		case "fetch":
			a.fetch(ctx, args)
		case "share":
			a.share(ctx, args)
		case "revoke":
			a.revoke(ctx, args)
		case "files":
			a.listFiles(ctx)
		case "tokens":
			a.listTokens(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command. Type 'help'.")
		}
	}
}

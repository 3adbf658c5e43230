package cli

import (
	"context"
	"fmt"
	"time"
)

func (a *App) listFiles(ctx context.Context) {
	if !a.isLoggedIn() {
		fmt.Println("Login first")
		return
	}

	files, err := a.client.ListFiles(ctx)
	if err != nil {
		fmt.Printf("List failed: %v\n", err)
		return
	}
	if len(files) == 0 {
		fmt.Println("No files")
		return
	}

	for _, f := range files {
		title := f.Title
		if title == "" {
			title = f.Name
		}
		fmt.Printf("%s  %-30s  %8d bytes  %s\n", f.ID, title, f.SizeBytes, f.CreatedAt.Format(time.RFC3339))
	}
}

// Package services contains server-side business logic: the challenge/
// response login flow, the file catalog, and the access token registry.
package services

import (
	"context"
	"database/sql"

	"github.com/avolkovs/cipherdrop/internal/dbx"
)

// listCap bounds owner-facing listings to keep responses small.
const listCap = 500

// runInTx executes fn inside a database transaction when a real database is
// present. With the in-memory repository manager there is no *sql.DB; the
// in-memory repositories are individually atomic, so fn runs directly.
func runInTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, db, nil, fn)
}

// Package repomanager hands out repositories bound to a concrete DB handle.
// Services obtain repositories through it so the same code path works with
// *sql.DB, *sql.Tx (inside dbx.WithTx), and the in-memory test manager.
package repomanager

import (
	"github.com/avolkovs/cipherdrop/internal/dbx"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/challenges"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/files"
	"github.com/avolkovs/cipherdrop/internal/server/repositories/tokens"
)

type RepositoryManager interface {
	Files(db dbx.DBTX) files.Repository
	Tokens(db dbx.DBTX) tokens.Repository
	Challenges(db dbx.DBTX) challenges.Repository
}

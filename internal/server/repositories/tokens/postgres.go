// Package tokens provides storage for bearer access tokens. Token rows are
// never deleted: revocation is a one-way flag, so the table doubles as an
// audit trail of every grant ever issued.
package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/dbx"
	"github.com/avolkovs/cipherdrop/internal/server/models"
)

// PostgresRepository implements token storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.AccessToken) error {
	query := `
		INSERT INTO tokens (token, file_id, issued_to, expires_at, revoked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		token.Token, token.FileID, token.IssuedTo, token.ExpiresAt, token.Revoked, token.CreatedAt,
	); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, token string) (*models.AccessToken, error) {
	query := `
		SELECT token, file_id, issued_to, expires_at, revoked, created_at
		FROM tokens
		WHERE token = $1
	`
	row := &models.AccessToken{}
	if err := r.db.QueryRowContext(ctx, query, token).Scan(
		&row.Token, &row.FileID, &row.IssuedTo, &row.ExpiresAt, &row.Revoked, &row.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return row, nil
}

func (r *PostgresRepository) SetRevoked(ctx context.Context, token string) error {
	query := `UPDATE tokens SET revoked = TRUE WHERE token = $1`
	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	ra, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*models.TokenListItem, error) {
	query := `
		SELECT t.token, t.file_id, t.revoked, t.expires_at, t.created_at,
			f.title, f.name, f.size_bytes
		FROM tokens t
		JOIN files f ON f.id = t.file_id
		WHERE lower(f.owner_address) = lower($1)
		ORDER BY t.created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select tokens: %w", err)
	}
	defer rows.Close()

	var result []*models.TokenListItem
	for rows.Next() {
		var item models.TokenListItem
		if err := rows.Scan(&item.Token, &item.FileID, &item.Revoked, &item.ExpiresAt,
			&item.CreatedAt, &item.Title, &item.Name, &item.SizeBytes); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

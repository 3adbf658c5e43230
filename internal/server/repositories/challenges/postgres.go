package challenges

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/dbx"
	"github.com/avolkovs/cipherdrop/internal/server/models"
)

// PostgresRepository implements challenge storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, challenge *models.Challenge) error {
	query := `
		INSERT INTO challenges (context_id, nonce, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (context_id)
		DO UPDATE SET nonce = EXCLUDED.nonce, expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at
	`
	if _, err := r.db.ExecContext(ctx, query,
		challenge.ContextID, challenge.Nonce, challenge.ExpiresAt, challenge.CreatedAt,
	); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Consume deletes and returns the challenge in one statement, so two
// concurrent verification attempts cannot both obtain the same nonce.
func (r *PostgresRepository) Consume(ctx context.Context, contextID string) (*models.Challenge, error) {
	query := `
		DELETE FROM challenges
		WHERE context_id = $1
		RETURNING context_id, nonce, expires_at, created_at
	`
	challenge := &models.Challenge{}
	if err := r.db.QueryRowContext(ctx, query, contextID).Scan(
		&challenge.ContextID, &challenge.Nonce, &challenge.ExpiresAt, &challenge.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if challenge.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrorNotFound
	}
	return challenge, nil
}

func (r *PostgresRepository) DeleteExpired(ctx context.Context) error {
	query := `DELETE FROM challenges WHERE expires_at < now()`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkovs/cipherdrop/internal/common"
	"github.com/avolkovs/cipherdrop/internal/dbx"
	"github.com/avolkovs/cipherdrop/internal/server/models"
)

// PostgresRepository implements file storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.File) error {
	query := `
		INSERT INTO files (id, owner_address, title, description, cid, name, mime, size_bytes,
			iv, salt, wrap_iv, wrapped_key, raw_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	if _, err := r.db.ExecContext(ctx, query,
		file.ID, file.OwnerAddress, file.Title, file.Description, file.CID,
		file.Name, file.Mime, file.SizeBytes,
		file.IV, file.Salt, file.WrapIV, file.WrappedKey, file.RawKey,
		file.CreatedAt,
	); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.File, error) {
	query := `
		SELECT id, owner_address, title, description, cid, name, mime, size_bytes,
			iv, salt, wrap_iv, wrapped_key, raw_key, created_at
		FROM files
		WHERE id = $1
	`
	file := &models.File{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID, &file.OwnerAddress, &file.Title, &file.Description, &file.CID,
		&file.Name, &file.Mime, &file.SizeBytes,
		&file.IV, &file.Salt, &file.WrapIV, &file.WrappedKey, &file.RawKey,
		&file.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return file, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string, limit int) ([]*models.File, error) {
	query := `
		SELECT id, owner_address, title, description, cid, name, mime, size_bytes, created_at
		FROM files
		WHERE lower(owner_address) = lower($1)
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.File
	for rows.Next() {
		var item models.File
		if err := rows.Scan(&item.ID, &item.OwnerAddress, &item.Title, &item.Description,
			&item.CID, &item.Name, &item.Mime, &item.SizeBytes, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

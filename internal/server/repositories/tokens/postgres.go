package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akorchagin/authgate/internal/common"
	"github.com/akorchagin/authgate/internal/dbx"
	"github.com/akorchagin/authgate/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert stores a new token record. The token column's unique index rejects
// hash collisions; a violation surfaces as common.ErrorConflict.
func (r *PostgresRepository) Insert(ctx context.Context, userID, name, hash string, expiresAt *time.Time) (string, error) {

	query := `
		INSERT INTO personal_access_tokens (user_id, name, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query, userID, name, hash, expiresAt).Scan(&id)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return "", common.ErrorConflict
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

// FindByHash returns the live token record with the given hash. The expiry
// predicate lives in the query, so expired rows are indistinguishable from
// absent ones.
func (r *PostgresRepository) FindByHash(ctx context.Context, hash string) (*models.AccessToken, error) {

	query := `
		SELECT id, user_id, name, token, last_used_at, created_at, expires_at, updated_at
		FROM personal_access_tokens
		WHERE token = $1
		  AND (expires_at IS NULL OR expires_at > CURRENT_TIMESTAMP)
	`

	token := &models.AccessToken{}
	err := r.db.QueryRowContext(ctx, query, hash).Scan(
		&token.ID, &token.UserID, &token.Name, &token.Hash,
		&token.LastUsedAt, &token.CreatedAt, &token.ExpiresAt, &token.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return token, nil
}

// TouchLastUsed stamps last_used_at on the token with the given hash.
func (r *PostgresRepository) TouchLastUsed(ctx context.Context, hash string) error {
	query := `
		UPDATE personal_access_tokens
		SET last_used_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, hash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// DeleteByHash removes the token with the given hash.
func (r *PostgresRepository) DeleteByHash(ctx context.Context, hash string) error {
	query := `
		DELETE FROM personal_access_tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, hash); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

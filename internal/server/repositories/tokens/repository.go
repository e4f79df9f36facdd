// Package tokens declares the server-side repository contract for persisted
// access token records.
package tokens

import (
	"context"
	"time"

	"github.com/akorchagin/authgate/internal/server/models"
)

// Repository defines operations for storing, resolving, and revoking access
// token records. Only hashes of raw secrets ever cross this boundary.
type Repository interface {
	// Insert stores a new token record and returns its id. expiresAt == nil
	// means the token never expires. A colliding hash returns
	// common.ErrorConflict.
	Insert(ctx context.Context, userID, name, hash string, expiresAt *time.Time) (string, error)

	// FindByHash returns the live token record with the given hash. Expired
	// rows are filtered out at query time; both a missing and an expired row
	// return common.ErrorNotFound.
	FindByHash(ctx context.Context, hash string) (*models.AccessToken, error)

	// TouchLastUsed stamps last_used_at on the token with the given hash.
	// A no-op if the row no longer exists.
	TouchLastUsed(ctx context.Context, hash string) error

	// DeleteByHash removes the token with the given hash. Deleting a
	// non-existent hash is not an error.
	DeleteByHash(ctx context.Context, hash string) error
}

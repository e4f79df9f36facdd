// Package services contains server-side business logic. This file implements
// TokenService, which issues, resolves, and revokes opaque bearer
// credentials. Only hashes of raw secrets ever reach storage; the raw value
// is returned to the caller once at issuance and never again.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/akorchagin/authgate/internal/common"
	"github.com/akorchagin/authgate/internal/dbx"
	"github.com/akorchagin/authgate/internal/logging"
	"github.com/akorchagin/authgate/internal/server/config"
	"github.com/akorchagin/authgate/internal/server/models"
	"github.com/akorchagin/authgate/internal/server/repositories/repomanager"
	"github.com/akorchagin/authgate/internal/server/secrets"
	"github.com/google/uuid"
)

// secretSuffixLength is the length of the random alphanumeric component of a
// raw secret. The uuid prefix exists to reduce collision probability and
// make secrets visually distinguishable, not for security.
const secretSuffixLength = 40

// TokenService issues, resolves, and revokes access tokens.
type TokenService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	hasher       *secrets.TokenHasher
	logger       logging.Logger
	storeTimeout time.Duration
}

// NewTokenService constructs a TokenService using repositories and server config.
func NewTokenService(db *sql.DB, m repomanager.RepositoryManager, hasher *secrets.TokenHasher, logger logging.Logger, cfg *config.Config) *TokenService {
	return &TokenService{
		db:           db,
		repomanager:  m,
		hasher:       hasher,
		logger:       logger.With("component", "tokens"),
		storeTimeout: cfg.StoreTimeout,
	}
}

// Issue generates a fresh raw secret for userID, persists its hash, and
// returns the raw secret. ttlDays == nil issues a non-expiring credential.
// A hash collision surfaces as common.ErrorConflict; the caller should retry
// since every call randomizes the secret.
func (s *TokenService) Issue(ctx context.Context, userID, name string, ttlDays *int) (string, error) {
	return s.IssueIn(ctx, s.db, userID, name, ttlDays)
}

// IssueIn is Issue bound to an explicit DBTX, so callers can fold issuance
// into a surrounding transaction.
func (s *TokenService) IssueIn(ctx context.Context, db dbx.DBTX, userID, name string, ttlDays *int) (string, error) {

	raw, err := s.generateSecret()
	if err != nil {
		return "", common.ErrorInternal
	}

	hash, err := s.hasher.Hash([]byte(raw))
	if err != nil {
		return "", common.ErrorInternal
	}

	var expiresAt *time.Time
	if ttlDays != nil {
		t := time.Now().Add(time.Duration(*ttlDays) * 24 * time.Hour)
		expiresAt = &t
	}

	opCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	repo := s.repomanager.Tokens(db)
	if _, err := repo.Insert(opCtx, userID, name, hash, expiresAt); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return "", common.ErrorConflict
		}
		return "", translateStoreErr(err)
	}

	return raw, nil
}

// Resolve maps a presented raw secret to its owning user. Every failure mode
// (unknown, expired, revoked, malformed) yields the same ErrorUnauthorized;
// transient store failures are reported as such, never as a rejection.
//
// On success the token's last_used_at is stamped best-effort in the
// background; a lost stamp never fails resolution.
func (s *TokenService) Resolve(ctx context.Context, rawSecret string) (*models.User, error) {

	hash, err := s.hasher.Hash([]byte(rawSecret))
	if err != nil {
		// Malformed (empty) secrets reject without touching the store.
		return nil, common.ErrorUnauthorized
	}

	opCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	token, err := s.repomanager.Tokens(s.db).FindByHash(opCtx, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, translateStoreErr(err)
	}

	userCtx, cancelUser := context.WithTimeout(ctx, s.storeTimeout)
	defer cancelUser()

	user, err := s.repomanager.Users(s.db).GetByID(userCtx, token.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, translateStoreErr(err)
	}

	s.touchLastUsed(hash)

	return user, nil
}

// Revoke deletes the credential matching rawSecret. It is idempotent:
// revoking an unknown or already-revoked secret succeeds.
func (s *TokenService) Revoke(ctx context.Context, rawSecret string) error {

	hash, err := s.hasher.Hash([]byte(rawSecret))
	if err != nil {
		// Nothing to delete for a malformed secret.
		return nil
	}

	opCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.repomanager.Tokens(s.db).DeleteByHash(opCtx, hash); err != nil {
		return translateStoreErr(err)
	}

	return nil
}

// touchLastUsed stamps last_used_at in the background, detached from the
// request context so request cancellation cannot abort the write. Failures
// are telemetry loss, logged and swallowed.
func (s *TokenService) touchLastUsed(hash string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.storeTimeout)
		defer cancel()

		if err := s.repomanager.Tokens(s.db).TouchLastUsed(ctx, hash); err != nil {
			s.logger.Warn(ctx, "failed to stamp last_used_at", "error", err.Error())
		}
	}()
}

func (s *TokenService) generateSecret() (string, error) {
	suffix, err := common.MakeRandAlphanumericString(secretSuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", uuid.NewString(), suffix), nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/akorchagin/authgate/internal/common"
	"github.com/akorchagin/authgate/internal/dbx"
	"github.com/akorchagin/authgate/internal/logging"
	"github.com/akorchagin/authgate/internal/server/config"
	"github.com/akorchagin/authgate/internal/server/models"
	"github.com/akorchagin/authgate/internal/server/repositories/repomanager"
	"github.com/akorchagin/authgate/internal/server/secrets"
)

// defaultTokenName is the display name for credentials minted at
// registration and login.
const defaultTokenName = "auth-token"

// AuthService handles registration, login, and logout. Token issuance is
// delegated to TokenService; password hashing to secrets.PasswordHasher.
type AuthService struct {
	db                *sql.DB
	repomanager       repomanager.RepositoryManager
	passwords         *secrets.PasswordHasher
	tokens            *TokenService
	logger            logging.Logger
	tokenValidityDays int
	storeTimeout      time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, passwords *secrets.PasswordHasher, tokens *TokenService, logger logging.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                db,
		repomanager:       m,
		passwords:         passwords,
		tokens:            tokens,
		logger:            logger.With("component", "auth"),
		tokenValidityDays: cfg.TokenValidityDays,
		storeTimeout:      cfg.StoreTimeout,
	}
}

// Register creates a user and immediately issues a credential for it, inside
// one transaction: a user row without a usable credential is not a valid end
// state. An already-registered email returns common.ErrorConflict, whether
// caught by the pre-check or by the unique index when two registrations
// race.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {

	if email == "" || password == "" {
		return "", common.ErrorValidation
	}

	opCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	_, err := s.repomanager.Users(s.db).GetByEmail(opCtx, email)
	if err == nil {
		return "", common.ErrorConflict
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", translateStoreErr(err)
	}

	passwordHash, err := s.passwords.Hash([]byte(password))
	if err != nil {
		return "", common.ErrorInternal
	}

	txCtx, cancelTx := context.WithTimeout(ctx, 2*s.storeTimeout)
	defer cancelTx()

	var raw string
	err = dbx.WithTx(txCtx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user := &models.User{Email: email, PasswordHash: passwordHash}
		user, err := s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return err
		}

		ttl := s.tokenValidityDays
		raw, err = s.tokens.IssueIn(ctx, tx, user.ID, defaultTokenName, &ttl)
		return err
	})
	if err != nil {
		// The existence check and the insert are separate round-trips; a
		// concurrent registration can slip between them and lose at the
		// unique index. That loser still sees the email as taken.
		if errors.Is(err, common.ErrorConflict) {
			return "", common.ErrorConflict
		}
		s.logger.Error(ctx, "registration failed", "error", err.Error())
		return "", translateStoreErr(err)
	}

	s.logger.Info(ctx, "user registered", "email", email)
	return raw, nil
}

// Login verifies the password for email and mints an additional credential.
// An unknown email and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {

	if email == "" || password == "" {
		return "", common.ErrorUnauthorized
	}

	opCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	user, err := s.repomanager.Users(s.db).GetByEmail(opCtx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", translateStoreErr(err)
	}

	if !s.passwords.Verify([]byte(password), user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	ttl := s.tokenValidityDays
	raw, err := s.tokens.Issue(ctx, user.ID, defaultTokenName, &ttl)
	if err != nil {
		return "", err
	}

	s.logger.Info(ctx, "user logged in", "email", email)
	return raw, nil
}

// Logout revokes the presented credential. Always succeeds from the caller's
// perspective, including for secrets that were never issued.
func (s *AuthService) Logout(ctx context.Context, rawSecret string) error {
	return s.tokens.Revoke(ctx, rawSecret)
}

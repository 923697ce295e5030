// Package services contains server-side business logic. AccountService
// orchestrates the credential store, password hasher, lockout policy, and
// token issuer to implement registration, login, and bearer authentication.
package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"time"

	"github.com/antonk9218/authd/internal/common"
	"github.com/antonk9218/authd/internal/dbx"
	"github.com/antonk9218/authd/internal/logging"
	"github.com/antonk9218/authd/internal/server/auth"
	"github.com/antonk9218/authd/internal/server/lockout"
	"github.com/antonk9218/authd/internal/server/models"
	"github.com/antonk9218/authd/internal/server/password"
	"github.com/antonk9218/authd/internal/server/repositories/repomanager"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// LoginResult is the success payload of Login.
type LoginResult struct {
	AccountID string
	Token     string
	ExpiresAt time.Time
}

// CredentialUpdate names the fields an account update changes. Nil fields are
// left untouched; the password is re-hashed only when set here, so callers
// state explicitly that the password is being changed.
type CredentialUpdate struct {
	Username *string
	Password *string
}

// AccountService provides account-related operations:
// - Register: create accounts
// - Login: verify credentials under the lockout policy and mint a token
// - Authenticate: resolve a bearer token to an account id
// - UpdateCredentials: change username/password with re-validation/re-hash
type AccountService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	tokens       *auth.Issuer
	lockDuration time.Duration
	logger       logging.Logger
}

// NewAccountService constructs an AccountService from its collaborators.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.Issuer, lockDuration time.Duration, logger logging.Logger) *AccountService {
	return &AccountService{
		db:           db,
		repomanager:  m,
		tokens:       tokens,
		lockDuration: lockDuration,
		logger:       logger.With("module", "account_service"),
	}
}

// Register validates the credentials, hashes the password, and inserts the
// account. A duplicate username yields common.ErrAlreadyExists (an expected
// race, enforced by the store's case-insensitive unique index). Returns the
// store-assigned account identifier.
func (s *AccountService) Register(ctx context.Context, username, pass string) (string, error) {
	if err := validateUsername(username); err != nil {
		return "", err
	}
	if err := validatePassword(pass); err != nil {
		return "", err
	}

	hash, err := password.Hash(pass)
	if err != nil {
		s.logger.Error(ctx, "hashing password", "error", err)
		return "", common.ErrInternal
	}

	acc := &models.Account{
		Username:     username,
		PasswordHash: hash,
		Attempts:     models.MaxLoginAttempts,
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, acc)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return "", common.ErrAlreadyExists
		}
		s.logger.Error(ctx, "creating account", "error", err)
		return "", common.ErrInternal
	}

	return created.ID, nil
}

// Login verifies the credentials and returns a fresh session token.
//
// A locked account short-circuits before any password comparison, so the
// outcome is user_locked regardless of the submitted password. A mismatch
// runs the lockout policy and persists the updated counter; the failure that
// consumes the last attempt still reports invalid password, and only the
// next attempt sees the lock. A match restores the counter to full.
func (s *AccountService) Login(ctx context.Context, username, pass string) (*LoginResult, error) {
	repo := s.repomanager.Accounts(s.db)

	acc, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "looking up account", "error", err)
		return nil, common.ErrInternal
	}

	if acc.Locked() {
		return nil, common.ErrUserLocked
	}

	if !password.Verify(pass, acc.PasswordHash) {
		lockout.RegisterFailure(acc, time.Now(), s.lockDuration)
		if err := repo.Update(ctx, acc); err != nil {
			s.logger.Error(ctx, "persisting failed attempt", "error", err)
			return nil, common.ErrInternal
		}
		return nil, common.ErrInvalidPassword
	}

	lockout.RegisterSuccess(acc)
	if err := repo.Update(ctx, acc); err != nil {
		s.logger.Error(ctx, "persisting successful login", "error", err)
		return nil, common.ErrInternal
	}

	token, expiresAt, err := s.tokens.Issue(acc.ID)
	if err != nil {
		s.logger.Error(ctx, "issuing token", "error", err)
		return nil, common.ErrInternal
	}

	return &LoginResult{AccountID: acc.ID, Token: token, ExpiresAt: expiresAt}, nil
}

// Authenticate resolves a bearer token to the account identifier it is bound
// to. Every failure maps to common.ErrUnauthorized.
func (s *AccountService) Authenticate(bearerToken string) (string, error) {
	accountID, err := s.tokens.Verify(bearerToken)
	if err != nil {
		return "", common.ErrUnauthorized
	}
	return accountID, nil
}

// UpdateCredentials changes the named fields of an account as an explicit
// pipeline: validate, hash if the password changes, persist. The load and
// the update run in one transaction so a concurrent login's counter write
// is not clobbered by a stale read.
func (s *AccountService) UpdateCredentials(ctx context.Context, accountID string, upd CredentialUpdate) error {
	if upd.Username == nil && upd.Password == nil {
		return common.NewValidationError("request", "no fields to change")
	}
	if upd.Username != nil {
		if err := validateUsername(*upd.Username); err != nil {
			return err
		}
	}
	if upd.Password != nil {
		if err := validatePassword(*upd.Password); err != nil {
			return err
		}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		acc, err := repo.GetByID(ctx, accountID)
		if err != nil {
			return err
		}

		if upd.Username != nil {
			acc.Username = *upd.Username
		}
		if upd.Password != nil {
			hash, err := password.Hash(*upd.Password)
			if err != nil {
				return err
			}
			acc.PasswordHash = hash
		}

		return repo.Update(ctx, acc)
	})

	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrAlreadyExists) {
			return err
		}
		s.logger.Error(ctx, "updating credentials", "error", err)
		return common.ErrInternal
	}

	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return common.NewValidationError("username", "must not be empty")
	}
	if !usernamePattern.MatchString(username) {
		return common.NewValidationError("username", "may only contain letters, digits, '_', '.' and '-'")
	}
	return nil
}

func validatePassword(pass string) error {
	if pass == "" {
		return common.NewValidationError("password", "must not be empty")
	}
	return nil
}

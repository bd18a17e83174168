package services

import (
	"context"
	"database/sql"
	"fmt"
	"unicode/utf8"

	"github.com/dmitrijs2005/docverifier/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/docverifier/internal/common"
	"github.com/dmitrijs2005/docverifier/internal/cryptox"
	"github.com/dmitrijs2005/docverifier/internal/dbx"
	"github.com/dmitrijs2005/docverifier/internal/logging"
)

const (
	lockKeyPrefix   = "lock."
	lockSaltKey     = lockKeyPrefix + "salt"
	lockVerifierKey = lockKeyPrefix + "verifier"

	MinLockPinLength = 4
)

// LockService gates access to the local history behind a PIN.
//
// Contract:
//   - SetPIN stores a fresh salt and an argon2id verifier, never the PIN.
//   - Authenticate returns true when no PIN is configured, and false when
//     the lock state cannot be read.
//   - ClearPIN removes the lock.
type LockService interface {
	SetPIN(ctx context.Context, pin string) error
	ClearPIN(ctx context.Context) error
	Enabled(ctx context.Context) bool
	Authenticate(ctx context.Context, reason, pin string) bool
}

type lockService struct {
	db     *sql.DB
	logger logging.Logger
}

func NewLockService(db *sql.DB, logger logging.Logger) LockService {
	return &lockService{db: db, logger: logger.With("module", "history_lock")}
}

func (s *lockService) repo() metadata.Repository {
	return metadata.NewSQLiteRepository(s.db)
}

func (s *lockService) SetPIN(ctx context.Context, pin string) error {
	if utf8.RuneCountInString(pin) < MinLockPinLength {
		return fmt.Errorf("%w: pin must be at least %d characters", common.ErrorValidation, MinLockPinLength)
	}

	salt := common.GenerateRandByteArray(cryptox.SaltSize)
	key := cryptox.DeriveKey([]byte(pin), salt)
	defer common.WipeByteArray(key)
	verifier := cryptox.MakeVerifier(key)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, lockSaltKey, salt); err != nil {
			return err
		}
		return repo.Set(ctx, lockVerifierKey, verifier)
	})
	if err != nil {
		return fmt.Errorf("save history lock: %w", err)
	}

	s.logger.Info(ctx, "history lock enabled")
	return nil
}

func (s *lockService) ClearPIN(ctx context.Context) error {
	if err := s.repo().DeletePrefix(ctx, lockKeyPrefix); err != nil {
		return err
	}
	s.logger.Info(ctx, "history lock disabled")
	return nil
}

func (s *lockService) Enabled(ctx context.Context) bool {
	_, verifier, err := s.load(ctx)
	return err != nil || verifier != nil
}

func (s *lockService) Authenticate(ctx context.Context, reason, pin string) bool {
	salt, verifier, err := s.load(ctx)
	if err != nil {
		s.logger.Error(ctx, "history lock unreadable", "reason", reason, "error", err)
		return false
	}
	if verifier == nil {
		return true
	}

	ok := cryptox.CheckVerifier([]byte(pin), salt, verifier)
	if !ok {
		s.logger.Warn(ctx, "history unlock rejected", "reason", reason)
	}
	return ok
}

func (s *lockService) load(ctx context.Context) (salt, verifier []byte, err error) {
	repo := s.repo()
	if verifier, err = repo.Get(ctx, lockVerifierKey); err != nil || verifier == nil {
		return nil, nil, err
	}
	if salt, err = repo.Get(ctx, lockSaltKey); err != nil {
		return nil, nil, err
	}
	return salt, verifier, nil
}

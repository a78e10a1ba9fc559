package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util"
)

// SessionRegistry abstracts the server-side session store.
type SessionRegistry interface {
	Create(ctx context.Context, accountID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// TokenIssuer abstracts session token generation.
type TokenIssuer interface {
	Generate(account *domain.Account, sessionID string) (string, time.Time, error)
}

// AccountService coordinates registration and login flows.
type AccountService struct {
	accounts   repository.AccountRepository
	sessions   SessionRegistry
	tokens     TokenIssuer
	bcryptCost int
	logger     *zap.Logger
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	AccountRepo repository.AccountRepository
	Sessions    SessionRegistry
	Tokens      TokenIssuer
	BcryptCost  int
	Logger      *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.AccountRepo,
		sessions:   deps.Sessions,
		tokens:     deps.Tokens,
		bcryptCost: deps.BcryptCost,
		logger:     deps.Logger,
	}
}

// Register creates a new client account.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}

	taken, err := s.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("username already exists", map[string]any{"username": username})
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleClient,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Verify checks credentials and returns the matching account.
func (s *AccountService) Verify(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid username or password")
	}
	return account, nil
}

// Login verifies credentials, registers a session and issues its token.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	sessionID, err := s.sessions.Create(ctx, account.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, expiresAt, err := s.tokens.Generate(account, sessionID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, expiresAt, nil
}

// Logout revokes the session.
func (s *AccountService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}

// UsernameExists reports whether the username is taken.
func (s *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.accounts.ExistsByUsername(ctx, username)
}

// EnsureSeedStaff creates the bootstrap staff account when absent. Safe to
// call on every startup.
func (s *AccountService) EnsureSeedStaff(ctx context.Context, username, password string) error {
	taken, err := s.accounts.ExistsByUsername(ctx, username)
	if err != nil {
		return err
	}
	if taken {
		return nil
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	account := &domain.Account{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleStaff,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("seed staff account created", zap.String("username", username))
	}
	return nil
}

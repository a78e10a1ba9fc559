package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util"
)

const principalKey = "auth_principal"

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "case_session"

// Principal represents the authenticated caller.
type Principal struct {
	Account   *domain.Account
	SessionID string
}

// Middleware resolves the session cookie to an account and makes it
// available to handlers as the request actor.
type Middleware struct {
	tokens   *TokenManager
	sessions *SessionStore
	accounts repository.AccountRepository
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, sessions *SessionStore, accounts repository.AccountRepository) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions, accounts: accounts}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	cookie := c.Cookies(SessionCookieName)
	if cookie == "" {
		return apperrors.NewUnauthorized("login required")
	}

	claims, err := m.tokens.Parse(cookie)
	if err != nil {
		return apperrors.NewUnauthorized("invalid session token")
	}

	accountID, err := m.sessions.Validate(c.Context(), claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.MapError(err)
	}
	if accountID != claims.AccountID {
		return apperrors.NewUnauthorized("session mismatch")
	}

	account, err := m.accounts.GetByID(c.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Account: account, SessionID: claims.SessionID})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

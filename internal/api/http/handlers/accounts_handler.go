package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/auth"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util"
)

// AccountsHandler exposes registration, login and session endpoints.
type AccountsHandler struct {
	accounts *service.AccountService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(accountService *service.AccountService) *AccountsHandler {
	return &AccountsHandler{accounts: accountService}
}

// Register handles POST /register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	if _, err := h.accounts.Register(c.Context(), req.Username, req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "user registered"})
}

// Login handles POST /login. The session token is set as a cookie.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	account, token, expiresAt, err := h.accounts.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.LoginResponse{
		Message: "logged in as " + account.Username,
		Role:    string(account.Role),
	})
}

// Logout handles GET /logout, revokes the session and redirects to the login page.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	if err := h.accounts.Logout(c.Context(), principal.SessionID); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/login_page", fiber.StatusFound)
}

// CheckUsername handles GET /check_username/:username without authentication.
func (h *AccountsHandler) CheckUsername(c *fiber.Ctx) error {
	exists, err := h.accounts.UsernameExists(c.Context(), c.Params("username"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UsernameCheckResponse{Exists: exists})
}

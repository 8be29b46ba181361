package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/directory-service/internal/api/dto"
	"github.com/spec-kit/directory-service/internal/auth"
	"github.com/spec-kit/directory-service/internal/domain"
	"github.com/spec-kit/directory-service/internal/service"
	apperrors "github.com/spec-kit/directory-service/pkg/util"
)

// AuthHandler exposes the login and token refresh endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string]string{"body": "invalid JSON payload"})
	}
	if problems := req.Validate(); problems != nil {
		return apperrors.NewValidationError(problems)
	}

	token, expiresAt, err := h.auth.Login(c.Context(), domain.Credential{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		Token:     token,
		Message:   "Login successful",
		ExpiresAt: expiresAt,
	})
}

// Refresh handles POST /refresh-token. The endpoint does its own header
// extraction with the same accepted shapes as the guard so that rejection
// semantics stay uniform across protected surfaces.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	credential, err := auth.CredentialFromHeader(c.Get("Authorization"))
	if err != nil {
		return err
	}

	token, expiresAt, err := h.auth.Refresh(credential)
	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(dto.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	})
}

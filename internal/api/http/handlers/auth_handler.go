package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ZvonimirSimic/weather-service/internal/api/dto"
	"github.com/ZvonimirSimic/weather-service/internal/auth"
	"github.com/ZvonimirSimic/weather-service/internal/service"
	apperrors "github.com/ZvonimirSimic/weather-service/pkg/util"
)

// AuthHandler exposes registration and login endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register. Registration does not log the
// user in; the client calls login separately.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	if _, err := h.auth.Register(c.Context(), req.Username, req.Email, req.Password); err != nil {
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "registration successful"})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	user, token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.LoginResponse{Token: token, Username: user.Username})
}

// Protected handles GET /api/protected, a token smoke-test endpoint that
// greets the authenticated caller.
func (h *AuthHandler) Protected(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"msg": fmt.Sprintf("Hello %s", principal.Username)})
}

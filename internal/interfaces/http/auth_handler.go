package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pipeline-crm/internal/application/auth"
	"github.com/jhoicas/pipeline-crm/internal/application/dto"
)

// AuthHandler serves the login endpoint.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindAndValidate(c, &in); err != nil {
		return handleBindError(c, err)
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

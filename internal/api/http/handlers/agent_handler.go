package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-portal/internal/api/dto"
	"github.com/spec-kit/agent-portal/internal/auth"
	"github.com/spec-kit/agent-portal/internal/service"
	apperrors "github.com/spec-kit/agent-portal/pkg/util"
)

// AgentHandler exposes registration, login, and profile endpoints.
type AgentHandler struct {
	auth *service.AuthService
}

// NewAgentHandler constructs handler.
func NewAgentHandler(authService *service.AuthService) *AgentHandler {
	return &AgentHandler{auth: authService}
}

// Me handles GET /agent/me.
func (h *AgentHandler) Me(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("could not validate credentials")
	}
	return c.JSON(dto.AgentProfileResponse{
		ID:    agent.ID,
		Name:  agent.Name,
		Email: agent.Email,
		Role:  agent.Role,
	})
}

// Register handles POST /agent/register.
func (h *AgentHandler) Register(c *fiber.Ctx) error {
	var req dto.AgentRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	_, token, _, err := h.auth.RegisterAgent(c.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Login handles POST /agent/login with a form-encoded username/password body.
func (h *AgentHandler) Login(c *fiber.Ctx) error {
	var req dto.AgentLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	_, token, _, err := h.auth.LoginAgent(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

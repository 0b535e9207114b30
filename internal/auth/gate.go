package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agent-portal/internal/domain"
	"github.com/spec-kit/agent-portal/internal/repository"
	apperrors "github.com/spec-kit/agent-portal/pkg/util"
)

const agentKey = "current_agent"

// AgentGate is the single authorization primitive for protected routes:
// verify the bearer credential, resolve it to an account, require the
// AGENT role. The account is re-read from the store on every request.
type AgentGate struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewAgentGate constructs the gate middleware.
func NewAgentGate(tokens *TokenManager, users repository.UserRepository) *AgentGate {
	return &AgentGate{tokens: tokens, users: users}
}

// Handle enforces the gate and stores the resolved agent in request locals.
func (g *AgentGate) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	email, err := g.tokens.VerifyToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("could not validate credentials")
	}

	user, err := g.users.GetByEmail(c.Context(), email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("user not found")
		}
		return apperrors.MapError(err)
	}

	if !user.IsAgent() {
		return apperrors.NewForbidden("access forbidden: agents only")
	}

	c.Locals(agentKey, user)
	return c.Next()
}

// AgentFromContext retrieves the gated agent for the current request.
func AgentFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(agentKey)
	if val == nil {
		return nil, false
	}
	agent, ok := val.(*domain.User)
	return agent, ok
}

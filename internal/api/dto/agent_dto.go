package dto

import "github.com/spec-kit/agent-portal/internal/domain"

// AgentRegisterRequest payload for new agents.
type AgentRegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// AgentLoginRequest payload for login. The portal accepts the standard
// form-encoded username/password pair; username carries the email.
type AgentLoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// TokenResponse is the bearer credential returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AgentProfileResponse is returned by GET /agent/me.
type AgentProfileResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  domain.UserRole `json:"role"`
}

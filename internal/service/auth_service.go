package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agent-portal/internal/auth"
	"github.com/spec-kit/agent-portal/internal/config"
	"github.com/spec-kit/agent-portal/internal/domain"
	"github.com/spec-kit/agent-portal/internal/events"
	"github.com/spec-kit/agent-portal/internal/repository"
	apperrors "github.com/spec-kit/agent-portal/pkg/util"
)

// AuthService coordinates agent registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		dispatcher: dispatcher,
	}
}

// RegisterAgent creates an account, forces its role to AGENT, and mints
// a session credential for it.
func (s *AuthService) RegisterAgent(ctx context.Context, name, email, password, phone string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
	}
	if err := s.users.CreateAgent(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventAgentRegistered,
		AgentID:   user.ID,
		Timestamp: time.Now(),
		Payload:   events.AgentRegisteredPayload{Email: user.Email, Name: user.Name},
	})
	return user, token, exp, nil
}

// LoginAgent authenticates an agent with email and password. A missing
// account and a wrong password produce the same error so callers cannot
// probe which emails are registered.
func (s *AuthService) LoginAgent(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect email or password")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect email or password")
	}

	if !user.IsAgent() {
		return nil, "", time.Time{}, apperrors.NewForbidden("user is not an agent")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for gate construction.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

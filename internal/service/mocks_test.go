package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agent-portal/internal/domain"
)

type mockUserRepository struct {
	CreateAgentFunc func(ctx context.Context, user *domain.User) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepository) CreateAgent(ctx context.Context, user *domain.User) error {
	if m.CreateAgentFunc != nil {
		return m.CreateAgentFunc(ctx, user)
	}
	user.ID = "generated-id"
	user.Role = domain.UserRoleAgent
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, pgx.ErrNoRows
}

type mockTicketRepository struct {
	ListAllFunc          func(ctx context.Context) ([]domain.Ticket, error)
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Ticket, error)
	GetByIDWithOwnerFunc func(ctx context.Context, id string) (*domain.Ticket, error)
	UpdateFunc           func(ctx context.Context, ticket *domain.Ticket) error
}

func (m *mockTicketRepository) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockTicketRepository) GetByIDWithOwner(ctx context.Context, id string) (*domain.Ticket, error) {
	if m.GetByIDWithOwnerFunc != nil {
		return m.GetByIDWithOwnerFunc(ctx, id)
	}
	return nil, pgx.ErrNoRows
}

func (m *mockTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ticket)
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/agent-portal/internal/domain"
	"github.com/spec-kit/agent-portal/internal/events"
	"github.com/spec-kit/agent-portal/internal/repository"
	apperrors "github.com/spec-kit/agent-portal/pkg/util"
)

// TicketService implements the agent triage operations. Every caller is
// assumed to have already passed the agent gate.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// ListTickets returns all tickets, newest first.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket fetches one ticket with its owning user resolved.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	if err := validateTicketID(ticketID); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByIDWithOwner(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err)
	}
	return ticket, nil
}

// UpdateStatus overwrites the ticket status with the given string. The
// value is persisted as sent; statuses outside domain.TicketStatus are
// accepted. Concurrent updates are last-writer-wins.
func (s *TicketService) UpdateStatus(ctx context.Context, agent *domain.User, ticketID, status string) (*domain.Ticket, error) {
	if err := validateTicketID(ticketID); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err)
	}

	oldStatus := ticket.Status
	ticket.Status = status
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapTicketError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketStatusChanged,
		AgentID:   agent.ID,
		TicketID:  ticket.ID,
		Timestamp: time.Now(),
		Payload:   events.TicketStatusChangedPayload{OldStatus: oldStatus, NewStatus: status},
	})
	return ticket, nil
}

// Reply appends an attributed agent reply to the ticket's description log.
func (s *TicketService) Reply(ctx context.Context, agent *domain.User, ticketID, message string) (*domain.Ticket, error) {
	if err := validateTicketID(ticketID); err != nil {
		return nil, err
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, mapTicketError(err)
	}

	ticket.AppendAgentReply(agent.Name, message)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, mapTicketError(err)
	}

	s.publish(ctx, events.Event{
		Type:      events.EventTicketReplied,
		AgentID:   agent.ID,
		TicketID:  ticket.ID,
		Timestamp: time.Now(),
		Payload:   events.TicketRepliedPayload{AgentName: agent.Name, MessagePreview: previewOf(message)},
	})
	return ticket, nil
}

// validateTicketID treats a malformed id the same as an absent one.
func validateTicketID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFound("ticket")
	}
	return nil
}

func mapTicketError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket")
	}
	return apperrors.MapError(err)
}

func previewOf(message string) string {
	const max = 80
	if len(message) <= max {
		return message
	}
	return message[:max]
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

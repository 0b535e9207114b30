package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-portal/internal/api/dto"
	"github.com/spec-kit/agent-portal/internal/auth"
	"github.com/spec-kit/agent-portal/internal/domain"
	"github.com/spec-kit/agent-portal/internal/service"
	apperrors "github.com/spec-kit/agent-portal/pkg/util"
)

// AgentTicketsHandler manages the agent triage endpoints. All routes are
// registered behind the agent gate.
type AgentTicketsHandler struct {
	tickets *service.TicketService
}

// NewAgentTicketsHandler constructs handler.
func NewAgentTicketsHandler(ticketService *service.TicketService) *AgentTicketsHandler {
	return &AgentTicketsHandler{tickets: ticketService}
}

// ListTickets GET /agent/tickets.
func (h *AgentTicketsHandler) ListTickets(c *fiber.Ctx) error {
	if _, err := currentAgent(c); err != nil {
		return err
	}
	tickets, err := h.tickets.ListTickets(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return c.JSON(items)
}

// GetTicket GET /agent/ticket/:id.
func (h *AgentTicketsHandler) GetTicket(c *fiber.Ctx) error {
	if _, err := currentAgent(c); err != nil {
		return err
	}
	ticket, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ticketDetail(ticket))
}

// UpdateStatus PUT /agent/ticket/:id/status.
func (h *AgentTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	agent, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.TicketStatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Status) == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	ticket, err := h.tickets.UpdateStatus(c.Context(), agent, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Reply POST /agent/ticket/:id/reply.
func (h *AgentTicketsHandler) Reply(c *fiber.Ctx) error {
	agent, err := currentAgent(c)
	if err != nil {
		return err
	}
	var req dto.AgentReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message required", nil)
	}

	ticket, err := h.tickets.Reply(c.Context(), agent, c.Params("id"), req.Message)
	if err != nil {
		return err
	}
	return c.JSON(dto.ReplyResponse{
		Message: "Reply added",
		Ticket:  ticketResponse(ticket),
	})
}

func currentAgent(c *fiber.Ctx) (*domain.User, error) {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("could not validate credentials")
	}
	return agent, nil
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:          ticket.ID,
		UserID:      ticket.UserID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Status:      ticket.Status,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	detail := dto.TicketDetailResponse{TicketResponse: ticketResponse(ticket)}
	if ticket.Owner != nil {
		detail.User = &dto.TicketOwnerResponse{
			ID:    ticket.Owner.ID,
			Name:  ticket.Owner.Name,
			Email: ticket.Owner.Email,
			Phone: ticket.Owner.Phone,
			Role:  ticket.Owner.Role,
		}
	}
	return detail
}

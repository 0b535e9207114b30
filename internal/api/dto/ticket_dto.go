package dto

import (
	"time"

	"github.com/spec-kit/agent-portal/internal/domain"
)

// TicketStatusUpdateRequest payload for PUT /agent/ticket/:id/status.
type TicketStatusUpdateRequest struct {
	Status string `json:"status"`
}

// AgentReplyRequest payload for POST /agent/ticket/:id/reply.
type AgentReplyRequest struct {
	Message string `json:"message"`
}

// TicketResponse is the ticket shape returned by list and mutation endpoints.
type TicketResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TicketOwnerResponse describes the owning user on the detail endpoint.
type TicketOwnerResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Phone string          `json:"phone"`
	Role  domain.UserRole `json:"role"`
}

// TicketDetailResponse is a ticket with its owning user resolved.
type TicketDetailResponse struct {
	TicketResponse
	User *TicketOwnerResponse `json:"user"`
}

// ReplyResponse confirms a reply and echoes the updated ticket.
type ReplyResponse struct {
	Message string         `json:"message"`
	Ticket  TicketResponse `json:"ticket"`
}

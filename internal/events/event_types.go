package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAgentRegistered     EventType = "agent_registered"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketReplied       EventType = "ticket_replied"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	AgentID   string      `json:"agent_id"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AgentRegisteredPayload payload.
type AgentRegisteredPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

// TicketRepliedPayload payload.
type TicketRepliedPayload struct {
	AgentName      string `json:"agent_name"`
	MessagePreview string `json:"message_preview"`
}

package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates the statuses the wider system knows about.
// The agent status-update endpoint deliberately does not validate
// against this set; the stored value is whatever the agent sent.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// Ticket is a support request submitted by an end-user. The description
// doubles as an append-only reply log.
type Ticket struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Owner is populated only when the ticket is fetched with its
	// owning user joined in.
	Owner *User
}

// AppendAgentReply records an agent reply at the end of the description log.
func (t *Ticket) AppendAgentReply(agentName, message string) {
	t.Description += fmt.Sprintf("\n\n[AGENT %s]: %s", agentName, message)
}

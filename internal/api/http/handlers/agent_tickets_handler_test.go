package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/agent-portal/internal/domain"
)

type ticketBody struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func seedOwnerAndTicket(env *testEnv, description string) (domain.User, domain.Ticket) {
	owner := domain.User{
		ID:    uuid.NewString(),
		Name:  "Grace",
		Email: "grace@example.com",
		Phone: "555-0199",
		Role:  domain.UserRoleUser,
	}
	env.users.seed(owner)

	ticket := domain.Ticket{
		ID:          uuid.NewString(),
		UserID:      owner.ID,
		Title:       "VPN keeps dropping",
		Description: description,
		Status:      string(domain.TicketStatusOpen),
		CreatedAt:   time.Now().Add(-time.Hour),
	}
	env.tickets.seed(ticket)
	return owner, ticket
}

func TestListTickets_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")

	owner, _ := seedOwnerAndTicket(env, "first")
	base := time.Now()
	for i, title := range []string{"t1", "t2", "t3"} {
		env.tickets.seed(domain.Ticket{
			ID:        uuid.NewString(),
			UserID:    owner.ID,
			Title:     title,
			Status:    string(domain.TicketStatusOpen),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	resp := env.doJSON(t, "GET", "/agent/tickets", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []ticketBody
	decodeBody(t, resp, &list)
	require.Len(t, list, 4)
	assert.Equal(t, "t3", list[0].Title)
	assert.Equal(t, "t2", list[1].Title)
	assert.Equal(t, "t1", list[2].Title)
	assert.Equal(t, "VPN keeps dropping", list[3].Title)
}

func TestListTickets_RequiresGate(t *testing.T) {
	env := newTestEnv(t)

	resp := env.doJSON(t, "GET", "/agent/tickets", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetTicket_IncludesOwner(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")
	owner, ticket := seedOwnerAndTicket(env, "details please")

	resp := env.doJSON(t, "GET", "/agent/ticket/"+ticket.ID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var detail struct {
		ticketBody
		User *struct {
			ID    string `json:"id"`
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"user"`
	}
	decodeBody(t, resp, &detail)
	assert.Equal(t, ticket.ID, detail.ID)
	require.NotNil(t, detail.User)
	assert.Equal(t, owner.ID, detail.User.ID)
	assert.Equal(t, "Grace", detail.User.Name)
}

func TestGetTicket_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")

	resp := env.doJSON(t, "GET", "/agent/ticket/"+uuid.NewString(), nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTicket_MalformedID(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")

	resp := env.doJSON(t, "GET", "/agent/ticket/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatus_PersistsExactString(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")
	_, ticket := seedOwnerAndTicket(env, "desc")

	const status = "waiting_on_vendor (escalated!)"
	resp := env.doJSON(t, "PUT", "/agent/ticket/"+ticket.ID+"/status", map[string]string{
		"status": status,
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated ticketBody
	decodeBody(t, resp, &updated)
	assert.Equal(t, status, updated.Status)

	// Retrievable by a subsequent fetch, uncoerced.
	fetch := env.doJSON(t, "GET", "/agent/ticket/"+ticket.ID, nil, token)
	require.Equal(t, http.StatusOK, fetch.StatusCode)
	var fetched ticketBody
	decodeBody(t, fetch, &fetched)
	assert.Equal(t, status, fetched.Status)
}

func TestUpdateStatus_UnknownTicket(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")

	resp := env.doJSON(t, "PUT", "/agent/ticket/"+uuid.NewString()+"/status", map[string]string{
		"status": "CLOSED",
	}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateStatus_EmptyStatusRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")
	_, ticket := seedOwnerAndTicket(env, "desc")

	resp := env.doJSON(t, "PUT", "/agent/ticket/"+ticket.ID+"/status", map[string]string{
		"status": "  ",
	}, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReply_AppendsAttributedLine(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")
	_, ticket := seedOwnerAndTicket(env, "It broke.")

	resp := env.doJSON(t, "POST", "/agent/ticket/"+ticket.ID+"/reply", map[string]string{
		"message": "A",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var first struct {
		Message string     `json:"message"`
		Ticket  ticketBody `json:"ticket"`
	}
	decodeBody(t, resp, &first)
	assert.Equal(t, "Reply added", first.Message)
	assert.Equal(t, "It broke.\n\n[AGENT Ada]: A", first.Ticket.Description)

	second := env.doJSON(t, "POST", "/agent/ticket/"+ticket.ID+"/reply", map[string]string{
		"message": "B",
	}, token)
	require.Equal(t, http.StatusOK, second.StatusCode)

	var again struct {
		Ticket ticketBody `json:"ticket"`
	}
	decodeBody(t, second, &again)
	assert.Equal(t, "It broke.\n\n[AGENT Ada]: A\n\n[AGENT Ada]: B", again.Ticket.Description)
}

func TestReply_UnknownTicket(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAgent(t, "Ada", "ada@example.com", "pw")

	resp := env.doJSON(t, "POST", "/agent/ticket/"+uuid.NewString()+"/reply", map[string]string{
		"message": "hello",
	}, token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTicketMutations_RequireGate(t *testing.T) {
	env := newTestEnv(t)
	_, ticket := seedOwnerAndTicket(env, "desc")

	update := env.doJSON(t, "PUT", "/agent/ticket/"+ticket.ID+"/status", map[string]string{
		"status": "CLOSED",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, update.StatusCode)

	reply := env.doJSON(t, "POST", "/agent/ticket/"+ticket.ID+"/reply", map[string]string{
		"message": "hi",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, reply.StatusCode)
}

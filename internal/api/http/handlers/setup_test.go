package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/agent-portal/internal/api/http"
	"github.com/spec-kit/agent-portal/internal/api/http/handlers"
	"github.com/spec-kit/agent-portal/internal/auth"
	"github.com/spec-kit/agent-portal/internal/config"
	"github.com/spec-kit/agent-portal/internal/domain"
	"github.com/spec-kit/agent-portal/internal/events"
	"github.com/spec-kit/agent-portal/internal/observability"
	"github.com/spec-kit/agent-portal/internal/service"
)

// fakeUserStore is an in-memory stand-in for the shared account store.
type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*domain.User)}
}

func (s *fakeUserStore) CreateAgent(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = uuid.NewString()
	user.Role = domain.UserRoleAgent
	copied := *user
	s.byEmail[user.Email] = &copied
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) seed(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byEmail[user.Email] = &user
}

// fakeTicketStore is an in-memory stand-in for the ticket store.
type fakeTicketStore struct {
	mu    sync.Mutex
	users *fakeUserStore
	byID  map[string]*domain.Ticket
}

func newFakeTicketStore(users *fakeUserStore) *fakeTicketStore {
	return &fakeTicketStore{users: users, byID: make(map[string]*domain.Ticket)}
}

func (s *fakeTicketStore) ListAll(_ context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]domain.Ticket, 0, len(s.byID))
	for _, ticket := range s.byID {
		result = append(result, *ticket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *fakeTicketStore) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (s *fakeTicketStore) GetByIDWithOwner(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.users.GetByID(ctx, ticket.UserID)
	if err != nil {
		return nil, err
	}
	ticket.Owner = owner
	return ticket, nil
}

func (s *fakeTicketStore) Update(_ context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *ticket
	copied.Owner = nil
	s.byID[ticket.ID] = &copied
	return nil
}

func (s *fakeTicketStore) seed(ticket domain.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[ticket.ID] = &ticket
}

type testEnv struct {
	app     *fiber.App
	users   *fakeUserStore
	tickets *fakeTicketStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newFakeUserStore()
	tickets := newFakeTicketStore(users)
	dispatcher := events.NewInMemoryDispatcher()

	authCfg := config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}
	authService := service.NewAuthService(authCfg, users, dispatcher)
	ticketService := service.NewTicketService(tickets, dispatcher)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler("agent-portal-test", "dev", nil, nil),
		Agent:     handlers.NewAgentHandler(authService),
		Tickets:   handlers.NewAgentTicketsHandler(ticketService),
		AgentGate: auth.NewAgentGate(authService.TokenManager(), users),
	})

	return &testEnv{app: app, users: users, tickets: tickets}
}

func (e *testEnv) registerAgent(t *testing.T, name, email, password string) string {
	t.Helper()
	resp := e.doJSON(t, "POST", "/agent/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
		"phone":    "555-0100",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decodeBody(t, resp, &body)
	require.Equal(t, "bearer", body.TokenType)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func (e *testEnv) doJSON(t *testing.T, method, path string, payload any, token string) *http.Response {
	t.Helper()
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reqBody)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) doForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

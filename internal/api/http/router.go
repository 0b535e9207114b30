package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/agent-portal/internal/api/http/handlers"
	"github.com/spec-kit/agent-portal/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Agent     *handlers.AgentHandler
	Tickets   *handlers.AgentTicketsHandler
	AgentGate *auth.AgentGate
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Welcome to the Agent Portal API!"})
	})

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	agent := app.Group("/agent")
	agent.Post("/register", cfg.Agent.Register)
	agent.Post("/login", cfg.Agent.Login)

	protected := agent.Group("", cfg.AgentGate.Handle)
	protected.Get("/me", cfg.Agent.Me)
	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Get("/ticket/:id", cfg.Tickets.GetTicket)
	protected.Put("/ticket/:id/status", cfg.Tickets.UpdateStatus)
	protected.Post("/ticket/:id/reply", cfg.Tickets.Reply)
}

package handlers

import (
	"agency/internal/app"
	agentController "agency/internal/controllers/agents"
	"agency/internal/handlers/middleware"
	. "agency/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AgentHandler struct {
	Handler
	controller *agentController.AgentController
}

func NewAgentHandler(app app.App, router fiber.Router) *AgentHandler {
	return &AgentHandler{
		controller: app.AgentController,
		Handler:    newHandler(app, router, "agent_handler"),
	}
}

func (h *AgentHandler) Register() {
	agents := h.router.Group("/agents")
	agents.Post("/login", h.login)

	agents.Get("/me", h.middleware.AuthRequired(), h.getAgent)
	agents.Post("/logout", h.middleware.AuthRequired(), h.logout)
}

func (h *AgentHandler) getAgent(c *fiber.Ctx) error {
	session, ok := middleware.CurrentSession(c)
	if !ok {
		h.log.Function("getAgent").ErMsg("No session found in locals")
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "error", "error": "failed to get agent"})
	}

	if session.AgentID == "" {
		return c.JSON(fiber.Map{"message": "success", "agent": session})
	}

	agent, err := h.controller.GetAgent(c.Context(), session.AgentID)
	if err != nil {
		return h.fail(c, err, "Agent", "failed to get agent")
	}

	return c.JSON(fiber.Map{"message": "success", "agent": agent})
}

func (h *AgentHandler) logout(c *fiber.Ctx) error {
	if err := h.controller.Logout(c.Context(), middleware.BearerToken(c)); err != nil {
		return h.fail(c, err, "Session", "failed to log out")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AgentHandler) login(c *fiber.Ctx) error {
	var loginRequest LoginRequest
	if err := c.BodyParser(&loginRequest); err != nil {
		return h.badRequest(c, err, "failed to parse login request")
	}

	session, err := h.controller.Login(c.Context(), loginRequest)
	if err != nil {
		return h.fail(c, err, "Agent", "failed to log in")
	}

	return c.JSON(fiber.Map{"message": "success", "session": session})
}

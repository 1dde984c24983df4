package handlers

import (
	"agency/internal/app"
	adminController "agency/internal/controllers/admin"
	"agency/internal/handlers/middleware"
	. "agency/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	controller *adminController.AdminController
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	return &AdminHandler{
		controller: app.AdminController,
		Handler:    newHandler(app, router, "admin_handler"),
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.AuthRequired(), h.middleware.AdminRequired())
	admin.Post("/broadcast", h.sendBroadcast)
	admin.Post("/agents", h.createAgent)
	admin.Post("/cache/flush", h.flushCache)
}

type broadcastRequest struct {
	Message string `json:"message"`
}

func (h *AdminHandler) sendBroadcast(c *fiber.Ctx) error {
	var request broadcastRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse broadcast request")
	}

	session, _ := middleware.CurrentSession(c)
	if err := h.controller.SendBroadcast(c.Context(), session, request.Message); err != nil {
		return h.fail(c, err, "Broadcast", "failed to send broadcast")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *AdminHandler) createAgent(c *fiber.Ctx) error {
	var request CreateAgentRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse agent request")
	}

	agent, err := h.controller.CreateAgent(c.Context(), request)
	if err != nil {
		return h.fail(c, err, "Agent", "failed to create agent")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "agent": agent})
}

func (h *AdminHandler) flushCache(c *fiber.Ctx) error {
	session, _ := middleware.CurrentSession(c)
	if err := h.controller.FlushCache(c.Context(), session); err != nil {
		return h.fail(c, err, "Cache", "failed to flush cache")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

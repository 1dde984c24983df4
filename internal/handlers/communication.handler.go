package handlers

import (
	"agency/internal/app"
	communicationController "agency/internal/controllers/communications"
	. "agency/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CommunicationHandler struct {
	Handler
	controller *communicationController.CommunicationController
}

func NewCommunicationHandler(app app.App, router fiber.Router) *CommunicationHandler {
	return &CommunicationHandler{
		controller: app.CommunicationController,
		Handler:    newHandler(app, router, "communication_handler"),
	}
}

func (h *CommunicationHandler) Register() {
	communications := h.router.Group("/communications", h.middleware.AuthRequired())
	communications.Get("/", h.getCommunications)
	communications.Post("/", h.createCommunication)
}

func (h *CommunicationHandler) getCommunications(c *fiber.Ctx) error {
	communications, err := h.controller.GetCommunications(c.Context(), CommunicationFilter{
		CustomerID: c.Query("customerId"),
		Type:       c.Query("type"),
		Status:     c.Query("status"),
	})
	if err != nil {
		return h.fail(c, err, "Communication", "failed to get communications")
	}
	return c.JSON(fiber.Map{"message": "success", "communications": communications})
}

func (h *CommunicationHandler) createCommunication(c *fiber.Ctx) error {
	var request CreateCommunicationRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse communication request")
	}

	communication, err := h.controller.CreateCommunication(c.Context(), request)
	if err != nil {
		return h.fail(c, err, "Customer", "failed to create communication")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "communication": communication})
}

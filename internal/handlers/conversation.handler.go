package handlers

import (
	"agency/internal/app"
	conversationController "agency/internal/controllers/conversations"

	"github.com/gofiber/fiber/v2"
)

type ConversationHandler struct {
	Handler
	controller *conversationController.ConversationController
}

func NewConversationHandler(app app.App, router fiber.Router) *ConversationHandler {
	return &ConversationHandler{
		controller: app.ConversationController,
		Handler:    newHandler(app, router, "conversation_handler"),
	}
}

func (h *ConversationHandler) Register() {
	conversations := h.router.Group("/conversations", h.middleware.AuthRequired())
	conversations.Get("/", h.getConversations)
	conversations.Get("/:id", h.getConversation)
	conversations.Post("/:id/foresights", h.getForesights)
}

func (h *ConversationHandler) getConversations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "success", "conversations": h.controller.GetConversations()})
}

func (h *ConversationHandler) getConversation(c *fiber.Ctx) error {
	conversation, err := h.controller.GetConversation(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Conversation", "failed to fetch conversation")
	}
	return c.JSON(conversation)
}

func (h *ConversationHandler) getForesights(c *fiber.Ctx) error {
	return c.JSON(h.controller.GetForesights(c.Params("id")))
}

package handlers

import (
	"agency/internal/app"
	documentController "agency/internal/controllers/documents"
	. "agency/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DocumentHandler struct {
	Handler
	controller *documentController.DocumentController
}

func NewDocumentHandler(app app.App, router fiber.Router) *DocumentHandler {
	return &DocumentHandler{
		controller: app.DocumentController,
		Handler:    newHandler(app, router, "document_handler"),
	}
}

func (h *DocumentHandler) Register() {
	documents := h.router.Group("/documents", h.middleware.AuthRequired())
	documents.Get("/", h.getDocuments)
	documents.Post("/", h.createDocument)
}

func (h *DocumentHandler) getDocuments(c *fiber.Ctx) error {
	documents, err := h.controller.GetDocuments(c.Context(), DocumentFilter{
		CustomerID: c.Query("customerId"),
		Type:       c.Query("type"),
	})
	if err != nil {
		return h.fail(c, err, "Document", "failed to get documents")
	}
	return c.JSON(fiber.Map{"message": "success", "documents": documents})
}

func (h *DocumentHandler) createDocument(c *fiber.Ctx) error {
	var request CreateDocumentRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse document request")
	}

	document, err := h.controller.CreateDocument(c.Context(), request)
	if err != nil {
		return h.fail(c, err, "Customer", "failed to create document")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "document": document})
}

package handlers

import (
	"agency/internal/app"
	templateController "agency/internal/controllers/templates"
	"agency/internal/templates"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type TemplateHandler struct {
	Handler
	controller *templateController.TemplateController
}

func NewTemplateHandler(app app.App, router fiber.Router) *TemplateHandler {
	return &TemplateHandler{
		controller: app.TemplateController,
		Handler:    newHandler(app, router, "template_handler"),
	}
}

func (h *TemplateHandler) Register() {
	group := h.router.Group("/templates", h.middleware.AuthRequired())

	documents := group.Group("/documents")
	documents.Get("/", h.listDocumentTemplates)
	documents.Post("/extract", h.extractFields)
	documents.Get("/:id", h.getDocumentTemplate)
	documents.Post("/:id/autofill", h.autoFill)
	documents.Post("/:id/validate", h.validateForm)
	documents.Post("/:id/generate", h.generate)

	communications := group.Group("/communications")
	communications.Get("/", h.listCommunicationTemplates)
	communications.Post("/:id/render", h.renderCommunication)
}

func (h *TemplateHandler) listDocumentTemplates(c *fiber.Ctx) error {
	list := h.controller.ListDocumentTemplates(templates.TemplateFilter{
		Type:       templates.DocumentType(c.Query("type")),
		SearchText: c.Query("search"),
	})
	return c.JSON(fiber.Map{"message": "success", "templates": list})
}

func (h *TemplateHandler) getDocumentTemplate(c *fiber.Ctx) error {
	template, err := h.controller.GetDocumentTemplate(c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Template", "failed to get template")
	}
	return c.JSON(fiber.Map{"message": "success", "template": template})
}

type autoFillRequest struct {
	CustomerID string         `json:"customerId"`
	Previous   map[string]any `json:"previous"`
}

func (h *TemplateHandler) autoFill(c *fiber.Ctx) error {
	var request autoFillRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse autofill request")
	}
	if request.CustomerID == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", "error": "customerId is required"})
	}

	state, err := h.controller.AutoFill(c.Context(), c.Params("id"), request.CustomerID, request.Previous)
	if err != nil {
		return h.fail(c, err, "Template or customer", "failed to auto-fill form")
	}
	return c.JSON(fiber.Map{"message": "success", "formState": state})
}

type valuesRequest struct {
	Values map[string]any `json:"values"`
}

func (h *TemplateHandler) validateForm(c *fiber.Ctx) error {
	var request valuesRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse validation request")
	}

	state, err := h.controller.ValidateForm(c.Params("id"), request.Values)
	if err != nil {
		return h.fail(c, err, "Template", "failed to validate form")
	}
	return c.JSON(fiber.Map{"message": "success", "valid": true, "formState": state})
}

// generate streams the rendered file. The recorded document id, when any, is sent in a header.
func (h *TemplateHandler) generate(c *fiber.Ctx) error {
	var request templateController.GenerateRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse generate request")
	}

	generated, err := h.controller.Generate(c.Context(), c.Params("id"), request)
	if err != nil {
		return h.fail(c, err, "Template or customer", "failed to generate document")
	}

	c.Set(fiber.HeaderContentType, generated.ContentType)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+strconv.Quote(generated.Filename))
	if generated.Document != nil {
		c.Set("X-Document-Id", generated.Document.ID)
	}
	return c.Send(generated.Content)
}

type extractRequest struct {
	TemplateID string `json:"templateId"`
	Text       string `json:"text"`
}

func (h *TemplateHandler) extractFields(c *fiber.Ctx) error {
	var request extractRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse extract request")
	}

	result, err := h.controller.ExtractFields(request.TemplateID, request.Text)
	if err != nil {
		return h.fail(c, err, "Template", "failed to extract fields")
	}
	return c.JSON(fiber.Map{"message": "success", "extracted": result.Extracted, "formState": result.FormState})
}

func (h *TemplateHandler) listCommunicationTemplates(c *fiber.Ctx) error {
	list := h.controller.ListCommunicationTemplates(templates.CommunicationFilter{
		Type:       templates.Channel(c.Query("type")),
		Category:   templates.Category(c.Query("category")),
		SearchText: c.Query("search"),
	})
	return c.JSON(fiber.Map{"message": "success", "templates": list})
}

type renderRequest struct {
	CustomerID string            `json:"customerId"`
	Values     map[string]string `json:"values"`
}

func (h *TemplateHandler) renderCommunication(c *fiber.Ctx) error {
	var request renderRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse render request")
	}

	message, err := h.controller.RenderCommunication(c.Context(), c.Params("id"), request.CustomerID, request.Values)
	if err != nil {
		return h.fail(c, err, "Template or customer", "failed to render communication")
	}
	return c.JSON(fiber.Map{"message": "success", "rendered": message})
}

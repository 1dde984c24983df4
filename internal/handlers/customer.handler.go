package handlers

import (
	"agency/internal/app"
	customerController "agency/internal/controllers/customers"
	. "agency/internal/models"
	"bytes"
	"io"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	Handler
	controller *customerController.CustomerController
}

func NewCustomerHandler(app app.App, router fiber.Router) *CustomerHandler {
	return &CustomerHandler{
		controller: app.CustomerController,
		Handler:    newHandler(app, router, "customer_handler"),
	}
}

func (h *CustomerHandler) Register() {
	customers := h.router.Group("/customers", h.middleware.AuthRequired())
	customers.Get("/", h.getCustomers)
	customers.Post("/", h.createCustomer)
	customers.Get("/export", h.exportCustomers)
	customers.Post("/import", h.importCustomers)

	customers.Get("/:id", h.getCustomer)
	customers.Put("/:id", h.updateCustomer)
	customers.Delete("/:id", h.deleteCustomer)
}

func (h *CustomerHandler) getCustomers(c *fiber.Ctx) error {
	customers, err := h.controller.GetCustomers(c.Context())
	if err != nil {
		return h.fail(c, err, "Customer", "failed to get customers")
	}
	return c.JSON(fiber.Map{"message": "success", "customers": customers})
}

func (h *CustomerHandler) getCustomer(c *fiber.Ctx) error {
	customer, err := h.controller.GetCustomer(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Customer", "failed to get customer")
	}
	return c.JSON(fiber.Map{"message": "success", "customer": customer})
}

func (h *CustomerHandler) createCustomer(c *fiber.Ctx) error {
	var request CustomerRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse customer request")
	}

	customer, err := h.controller.CreateCustomer(c.Context(), request)
	if err != nil {
		return h.fail(c, err, "Customer", "failed to create customer")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "customer": customer})
}

func (h *CustomerHandler) updateCustomer(c *fiber.Ctx) error {
	var request CustomerRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse customer request")
	}

	customer, err := h.controller.UpdateCustomer(c.Context(), c.Params("id"), request)
	if err != nil {
		return h.fail(c, err, "Customer", "failed to update customer")
	}
	return c.JSON(fiber.Map{"message": "success", "customer": customer})
}

func (h *CustomerHandler) deleteCustomer(c *fiber.Ctx) error {
	if err := h.controller.DeleteCustomer(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "Customer", "failed to delete customer")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func (h *CustomerHandler) exportCustomers(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.controller.ExportCSV(c.Context(), &buf); err != nil {
		return h.fail(c, err, "Customer", "failed to export customers")
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="customers.csv"`)
	return c.Send(buf.Bytes())
}

// importCustomers accepts a multipart "file" upload or a raw CSV body.
func (h *CustomerHandler) importCustomers(c *fiber.Ctx) error {
	var reader io.Reader = bytes.NewReader(c.Body())

	if header, err := c.FormFile("file"); err == nil {
		file, err := header.Open()
		if err != nil {
			return h.badRequest(c, err, "failed to open uploaded file")
		}
		defer file.Close()
		reader = file
	}

	count, err := h.controller.ImportCSV(c.Context(), reader)
	if err != nil {
		return h.fail(c, err, "Customer", "failed to import customers")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "imported": count})
}

package handlers

import (
	"agency/internal/app"
	paymentController "agency/internal/controllers/payments"
	. "agency/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	Handler
	controller *paymentController.PaymentController
}

func NewPaymentHandler(app app.App, router fiber.Router) *PaymentHandler {
	return &PaymentHandler{
		controller: app.PaymentController,
		Handler:    newHandler(app, router, "payment_handler"),
	}
}

func (h *PaymentHandler) Register() {
	payments := h.router.Group("/payments", h.middleware.AuthRequired())
	payments.Get("/", h.getPayments)
	payments.Post("/", h.createPayment)
	payments.Post("/:id/paid", h.markPaid)
}

func (h *PaymentHandler) getPayments(c *fiber.Ctx) error {
	payments, err := h.controller.GetPayments(c.Context(), PaymentFilter{
		CustomerID: c.Query("customerId"),
		Status:     c.Query("status"),
	})
	if err != nil {
		return h.fail(c, err, "Payment", "failed to get payments")
	}
	return c.JSON(fiber.Map{"message": "success", "payments": payments})
}

func (h *PaymentHandler) createPayment(c *fiber.Ctx) error {
	var request CreatePaymentRequest
	if err := c.BodyParser(&request); err != nil {
		return h.badRequest(c, err, "failed to parse payment request")
	}

	payment, err := h.controller.CreatePayment(c.Context(), request)
	if err != nil {
		return h.fail(c, err, "Customer", "failed to create payment")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "success", "payment": payment})
}

func (h *PaymentHandler) markPaid(c *fiber.Ctx) error {
	payment, err := h.controller.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Payment", "failed to mark payment as paid")
	}
	return c.JSON(fiber.Map{"message": "success", "payment": payment})
}

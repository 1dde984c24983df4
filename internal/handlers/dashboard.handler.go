package handlers

import (
	"agency/internal/app"
	dashboardController "agency/internal/controllers/dashboard"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Handler
	controller *dashboardController.DashboardController
}

func NewDashboardHandler(app app.App, router fiber.Router) *DashboardHandler {
	return &DashboardHandler{
		controller: app.DashboardController,
		Handler:    newHandler(app, router, "dashboard_handler"),
	}
}

func (h *DashboardHandler) Register() {
	h.router.Get("/stats", h.middleware.AuthRequired(), h.getStats)
	h.router.Get("/analytics", h.middleware.AuthRequired(), h.getAnalytics)
}

func (h *DashboardHandler) getStats(c *fiber.Ctx) error {
	stats, err := h.controller.GetStats(c.Context())
	if err != nil {
		return h.fail(c, err, "Stats", "failed to get stats")
	}
	return c.JSON(fiber.Map{"message": "success", "stats": stats})
}

func (h *DashboardHandler) getAnalytics(c *fiber.Ctx) error {
	analytics, err := h.controller.GetAnalytics(c.Context())
	if err != nil {
		return h.fail(c, err, "Analytics", "failed to get analytics")
	}
	return c.JSON(fiber.Map{"message": "success", "analytics": analytics})
}

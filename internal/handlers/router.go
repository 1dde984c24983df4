package handlers

import (
	"agency/internal/app"
	"agency/internal/handlers/middleware"
	"agency/internal/logger"
	"agency/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func newHandler(app app.App, router fiber.Router, file string) Handler {
	return Handler{
		middleware: app.Middleware,
		log:        logger.New("handlers").File(file),
		router:     router,
	}
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)
	router.Get("/metrics", metrics.Handler())

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewAgentHandler(*app, api).Register()
	NewCustomerHandler(*app, api).Register()
	NewTemplateHandler(*app, api).Register()
	NewDocumentHandler(*app, api).Register()
	NewCommunicationHandler(*app, api).Register()
	NewPaymentHandler(*app, api).Register()
	NewStorageHandler(*app, api).Register()
	NewDashboardHandler(*app, api).Register()
	NewConversationHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}

func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			c.Locals("allowed", true)
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}

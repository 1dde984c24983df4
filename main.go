package main

import (
	"agency/config"
	"agency/internal/app"
	"agency/internal/handlers"
	"agency/internal/logger"
	"agency/internal/metrics"
	"context"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const SHUTDOWN_TIMEOUT = 15 * time.Second

func main() {
	if err := run(); err != nil {
		logger.New("main").Function("main").Er("server exited with error", err)
		os.Exit(1)
	}
}

func run() error {
	log := logger.New("main").Function("run")

	config, err := config.InitConfig()
	if err != nil {
		return log.Err("failed to load config", err)
	}
	logger.Init(config.GeneralLogFormat, config.GeneralLogLevel)

	app, err := app.NewWithConfig(config)
	if err != nil {
		return log.Err("failed to initialize app", err)
	}
	defer app.Close()

	server := fiber.New(fiber.Config{
		AppName:      "agency " + config.GeneralVersion,
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	server.Use(recover.New())
	server.Use(requestid.New())
	origins := config.CorsOrigins()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: len(origins) > 0 && !slices.Contains(origins, "*"),
	}))
	server.Use(metrics.Middleware())
	server.Use(app.Middleware.RateLimit())

	if err := handlers.Router(server, app); err != nil {
		return log.Err("failed to register routes", err)
	}

	if err := app.Scheduler.Start(); err != nil {
		return log.Err("failed to start dispatcher", err)
	}

	listenErr := make(chan error, 1)
	go func() {
		address := fmt.Sprintf(":%d", config.ServerPort)
		log.Info("Server listening", "address", address, "version", config.GeneralVersion)
		listenErr <- server.Listen(address)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-listenErr:
		return log.Err("server stopped", err)
	case <-quit:
	}

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil {
		return log.Err("failed to shut down server", err)
	}
	return nil
}

package app

import (
	"agency/config"
	"agency/internal/database"
	"agency/internal/events"
	"agency/internal/handlers/middleware"
	"agency/internal/logger"
	"agency/internal/repositories"
	"agency/internal/scheduler"
	"agency/internal/services"
	"agency/internal/storage"
	"agency/internal/templates"
	"agency/internal/websockets"
	"context"
	"time"

	adminController "agency/internal/controllers/admin"
	agentController "agency/internal/controllers/agents"
	communicationController "agency/internal/controllers/communications"
	conversationController "agency/internal/controllers/conversations"
	customerController "agency/internal/controllers/customers"
	dashboardController "agency/internal/controllers/dashboard"
	documentController "agency/internal/controllers/documents"
	paymentController "agency/internal/controllers/payments"
	storageController "agency/internal/controllers/storage"
	templateController "agency/internal/controllers/templates"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Websocket  *websockets.Manager
	EventBus   *events.EventBus
	Scheduler  *scheduler.Dispatcher
	Registry   *templates.Registry
	Storage    *storage.Service
	Config     config.Config

	// Services
	TransactionService       *services.TransactionService
	SessionService           *services.SessionService
	CacheInvalidationService *services.CacheInvalidationService

	// Repositories
	CustomerRepo      repositories.CustomerRepository
	DocumentRepo      repositories.DocumentRepository
	CommunicationRepo repositories.CommunicationRepository
	PaymentRepo       repositories.PaymentRepository
	AgentRepo         repositories.AgentRepository

	// Controllers
	AdminController         *adminController.AdminController
	AgentController         *agentController.AgentController
	CustomerController      *customerController.CustomerController
	TemplateController      *templateController.TemplateController
	DocumentController      *documentController.DocumentController
	CommunicationController *communicationController.CommunicationController
	PaymentController       *paymentController.PaymentController
	StorageController       *storageController.StorageController
	DashboardController     *dashboardController.DashboardController
	ConversationController  *conversationController.ConversationController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	return NewWithConfig(config)
}

// NewWithConfig wires the application from an already loaded config. The caller owns Close.
func NewWithConfig(config config.Config) (*App, error) {
	log := logger.New("app").Function("NewWithConfig")

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	if _, err := db.Migrate(); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to migrate database", err)
	}

	eventBus := events.New(db.Cache.Events, config)

	registry, err := templates.New()
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to load template registry", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)
	sessionService := services.NewSessionService(db, time.Duration(config.SessionTTLHours)*time.Hour)
	cacheInvalidationService := services.NewCacheInvalidationService(db, eventBus)

	// Initialize repositories
	customerRepo := repositories.NewCustomer(db)
	documentRepo := repositories.NewDocument(db)
	communicationRepo := repositories.NewCommunication(db)
	paymentRepo := repositories.NewPayment(db)
	agentRepo := repositories.NewAgent(db)

	// Storage is optional; the interfaces below must stay nil when it is off.
	var (
		fileStore      *storage.Service
		documentStore  templateController.DocumentStore
		storageBackend storageController.FileStore
	)
	if config.StorageEnabled() {
		fileStore, err = storage.New(context.Background(), config)
		if err != nil {
			_ = db.Close()
			return &App{}, log.Err("failed to create storage service", err)
		}
		documentStore = fileStore
		storageBackend = fileStore
	} else {
		log.Info("File storage is not configured, generated documents are recorded by name only")
	}

	// Initialize controllers with repositories and services
	middleware := middleware.New(sessionService, config)
	conversations := conversationController.New()

	websocket, err := websockets.New(eventBus, config)
	if err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to create websocket manager", err)
	}

	app := &App{
		Database:                 db,
		Config:                   config,
		Middleware:               middleware,
		Websocket:                websocket,
		EventBus:                 eventBus,
		Registry:                 registry,
		Storage:                  fileStore,
		TransactionService:       transactionService,
		SessionService:           sessionService,
		CacheInvalidationService: cacheInvalidationService,
		CustomerRepo:             customerRepo,
		DocumentRepo:             documentRepo,
		CommunicationRepo:        communicationRepo,
		PaymentRepo:              paymentRepo,
		AgentRepo:                agentRepo,
		Scheduler: scheduler.New(
			communicationRepo,
			paymentRepo,
			cacheInvalidationService,
			config.DispatchSchedule,
		),
		AdminController: adminController.New(eventBus, agentRepo, db, config),
		AgentController: agentController.New(agentRepo, sessionService),
		CustomerController: customerController.New(
			customerRepo,
			transactionService,
			cacheInvalidationService,
		),
		TemplateController: templateController.New(
			registry,
			customerRepo,
			documentRepo,
			cacheInvalidationService,
			documentStore,
			config,
		),
		DocumentController: documentController.New(documentRepo, customerRepo, cacheInvalidationService),
		CommunicationController: communicationController.New(
			communicationRepo,
			customerRepo,
			transactionService,
			cacheInvalidationService,
		),
		PaymentController: paymentController.New(paymentRepo, customerRepo, cacheInvalidationService, config),
		StorageController: storageController.New(storageBackend),
		DashboardController: dashboardController.New(
			customerRepo,
			documentRepo,
			paymentRepo,
			communicationRepo,
			conversations.ActiveCount,
		),
		ConversationController: conversations,
	}

	if err := app.validate(); err != nil {
		_ = app.Close()
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := map[string]bool{
		"websocket":                a.Websocket == nil,
		"eventBus":                 a.EventBus == nil,
		"scheduler":                a.Scheduler == nil,
		"registry":                 a.Registry == nil,
		"transactionService":       a.TransactionService == nil,
		"sessionService":           a.SessionService == nil,
		"cacheInvalidationService": a.CacheInvalidationService == nil,
		"customerRepo":             a.CustomerRepo == nil,
		"documentRepo":             a.DocumentRepo == nil,
		"communicationRepo":        a.CommunicationRepo == nil,
		"paymentRepo":              a.PaymentRepo == nil,
		"agentRepo":                a.AgentRepo == nil,
		"adminController":          a.AdminController == nil,
		"agentController":          a.AgentController == nil,
		"customerController":       a.CustomerController == nil,
		"templateController":       a.TemplateController == nil,
		"documentController":       a.DocumentController == nil,
		"communicationController":  a.CommunicationController == nil,
		"paymentController":        a.PaymentController == nil,
		"storageController":        a.StorageController == nil,
		"dashboardController":      a.DashboardController == nil,
		"conversationController":   a.ConversationController == nil,
	}

	for name, isNil := range nilChecks {
		if isNil {
			return log.Error("nil check failed", "component", name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Scheduler != nil {
		ctx, cancel := context.WithTimeout(context.Background(), scheduler.RUN_TIMEOUT)
		defer cancel()
		if stopErr := a.Scheduler.Stop(ctx); stopErr != nil {
			err = stopErr
		}
	}

	if a.Websocket != nil {
		a.Websocket.Close()
	}

	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}

package adminController

import (
	"agency/config"
	"agency/internal/database"
	"agency/internal/events"
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type AdminController struct {
	agentRepo repositories.AgentRepository
	db        database.DB
	Config    config.Config
	log       logger.Logger
	eventBus  *events.EventBus
}

func New(
	eventBus *events.EventBus,
	agentRepo repositories.AgentRepository,
	db database.DB,
	config config.Config,
) *AdminController {
	return &AdminController{
		agentRepo: agentRepo,
		db:        db,
		Config:    config,
		log:       logger.New("AdminController"),
		eventBus:  eventBus,
	}
}

// SendBroadcast pushes an announcement from an agent to every connected client.
func (c *AdminController) SendBroadcast(ctx context.Context, session services.Session, message string) error {
	log := c.log.Function("SendBroadcast")

	message = strings.TrimSpace(message)
	if message == "" {
		return NewValidationError("message", "is required")
	}

	event := events.Event{
		ID:     uuid.New().String(),
		Type:   "admin",
		Action: "broadcast",
		UserID: session.AgentID,
		Data: map[string]any{
			"message": message,
			"from":    session.DisplayName,
		},
		Timestamp: time.Now(),
	}

	log.Info("Broadcasting admin message", "agentID", session.AgentID)
	if err := c.eventBus.Publish(events.ChannelBroadcast, event); err != nil {
		return log.Err("failed to publish event", err, "eventID", event.ID)
	}
	return nil
}

// CreateAgent adds an agent account. The password is hashed on insert.
func (c *AdminController) CreateAgent(ctx context.Context, request CreateAgentRequest) (*Agent, error) {
	log := c.log.Function("CreateAgent")

	request.Login = strings.TrimSpace(request.Login)
	if request.Login == "" || request.DisplayName == "" || len(request.Password) < 8 {
		return nil, NewValidationError("", "login, displayName and a password of at least 8 characters are required")
	}

	agent := &Agent{
		Login:       request.Login,
		DisplayName: request.DisplayName,
		Email:       request.Email,
		Password:    request.Password,
		IsAdmin:     request.IsAdmin,
	}
	if err := c.agentRepo.Create(ctx, agent); err != nil {
		return nil, log.Err("failed to create agent", err, "login", request.Login)
	}

	log.Info("Agent created", "agentID", agent.ID)
	return agent, nil
}

// FlushCache drops every cached customer entry.
func (c *AdminController) FlushCache(ctx context.Context, session services.Session) error {
	log := c.log.Function("FlushCache")

	if err := c.db.FlushCustomerCache(ctx); err != nil {
		return log.Err("failed to flush customer cache", err)
	}

	log.Info("Customer cache flushed", "agentID", session.AgentID)
	return nil
}

package agentController

import (
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"context"
	"errors"
	"strings"
)

var ErrInvalidCredentials = errors.New("invalid login or password")

type AgentController struct {
	agentRepo      repositories.AgentRepository
	sessionService *services.SessionService
	log            logger.Logger
}

func New(agentRepo repositories.AgentRepository, sessionService *services.SessionService) *AgentController {
	return &AgentController{
		agentRepo:      agentRepo,
		sessionService: sessionService,
		log:            logger.New("AgentController"),
	}
}

// Login checks the agent's password and opens a session. Unknown logins and wrong
// passwords fail the same way.
func (ac *AgentController) Login(ctx context.Context, request LoginRequest) (services.Session, error) {
	log := ac.log.Function("Login")

	login := strings.TrimSpace(request.Login)
	if login == "" || request.Password == "" {
		return services.Session{}, NewValidationError("", "login and password are required")
	}

	agent, err := ac.agentRepo.GetByLogin(ctx, login)
	if errors.Is(err, repositories.ErrNotFound) {
		log.Warn("Login attempt for unknown agent", "login", login)
		return services.Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return services.Session{}, log.Err("failed to get agent", err, "login", login)
	}

	if !agent.CheckPassword(request.Password) {
		log.Warn("Login attempt with wrong password", "login", login)
		return services.Session{}, ErrInvalidCredentials
	}

	session, err := ac.sessionService.Create(ctx, services.Session{
		AgentID:     agent.ID,
		Login:       agent.Login,
		DisplayName: agent.DisplayName,
		IsAdmin:     agent.IsAdmin,
	})
	if err != nil {
		return services.Session{}, log.Err("failed to create session", err, "agentID", agent.ID)
	}

	log.Info("Agent logged in", "agentID", agent.ID)
	return session, nil
}

func (ac *AgentController) Logout(ctx context.Context, token string) error {
	if err := ac.sessionService.Delete(ctx, token); err != nil {
		return ac.log.Function("Logout").Err("failed to delete session", err)
	}
	return nil
}

func (ac *AgentController) GetAgent(ctx context.Context, agentID string) (*Agent, error) {
	agent, err := ac.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, ac.log.Function("GetAgent").Err("failed to get agent", err, "agentID", agentID)
	}
	return agent, nil
}

package repositories

import (
	"agency/internal/database"
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/services"
	"context"

	"gorm.io/gorm"
)

type AgentRepository interface {
	GetByID(ctx context.Context, id string) (*Agent, error)
	GetByLogin(ctx context.Context, login string) (*Agent, error)
	Create(ctx context.Context, agent *Agent) error
}

type agentRepository struct {
	db  database.DB
	log logger.Logger
}

func NewAgent(db database.DB) AgentRepository {
	return &agentRepository{
		db:  db,
		log: logger.New("agentRepository"),
	}
}

func (r *agentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*Agent, error) {
	var agent Agent
	if err := r.getDB(ctx).First(&agent, "id = ?", id).Error; err != nil {
		return nil, r.log.Function("GetByID").Err("failed to get agent", notFound(err), "agentID", id)
	}
	return &agent, nil
}

func (r *agentRepository) GetByLogin(ctx context.Context, login string) (*Agent, error) {
	var agent Agent
	if err := r.getDB(ctx).First(&agent, "login = ?", login).Error; err != nil {
		return nil, r.log.Function("GetByLogin").Err("failed to get agent", notFound(err), "login", login)
	}
	return &agent, nil
}

func (r *agentRepository) Create(ctx context.Context, agent *Agent) error {
	if err := r.getDB(ctx).Create(agent).Error; err != nil {
		return r.log.Function("Create").Err("failed to create agent", err, "login", agent.Login)
	}
	return nil
}

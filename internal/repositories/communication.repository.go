package repositories

import (
	"agency/internal/database"
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/services"
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

type CommunicationRepository interface {
	GetAll(ctx context.Context, filter CommunicationFilter) ([]CommunicationLog, error)
	Create(ctx context.Context, communication *Communication, customerID string) error
	GetDueScheduled(ctx context.Context, now time.Time) ([]Communication, error)
	MarkSent(ctx context.Context, ids []string, sentAt time.Time) (int64, error)
}

type communicationRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCommunication(db database.DB) CommunicationRepository {
	return &communicationRepository{
		db:  db,
		log: logger.New("communicationRepository"),
	}
}

func (r *communicationRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

type communicationRow struct {
	ID          string
	CustomerID  string
	FirstName   *string
	LastName    *string
	Type        string
	Subject     string
	Content     string
	ScheduledAt *time.Time
	SentAt      *time.Time
	Status      string
	CreatedAt   time.Time
}

// GetAll lists the communication log joined with recipients, newest first.
func (r *communicationRepository) GetAll(ctx context.Context, filter CommunicationFilter) ([]CommunicationLog, error) {
	log := r.log.Function("GetAll")

	query := r.getDB(ctx).
		Table("communications AS c").
		Select(`c.id, r.customer_id, cu.first_name, cu.last_name, c.type, c.subject, c.content,
			c.scheduled_at, c.sent_at, c.status, c.created_at`).
		Joins("JOIN communication_recipients AS r ON r.communication_id = c.id AND r.deleted_at IS NULL").
		Joins("LEFT JOIN customers AS cu ON cu.id = r.customer_id").
		Where("c.deleted_at IS NULL").
		Order("c.created_at DESC")

	if filter.CustomerID != "" {
		query = query.Where("r.customer_id = ?", filter.CustomerID)
	}
	if filter.Type != "" {
		query = query.Where("c.type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("c.status = ?", filter.Status)
	}

	var rows []communicationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, log.Err("failed to get communications", err, "filter", filter)
	}

	logs := make([]CommunicationLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, CommunicationLog{
			ID:           row.ID,
			CustomerID:   row.CustomerID,
			CustomerName: NameOrFallback(joinName(row.FirstName, row.LastName)),
			Type:         row.Type,
			Subject:      row.Subject,
			Content:      row.Content,
			ScheduledFor: row.ScheduledAt,
			SentAt:       row.SentAt,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
		})
	}

	return logs, nil
}

// Create stores the communication and its recipient row. Run it inside a transaction so both
// rows land together.
func (r *communicationRepository) Create(ctx context.Context, communication *Communication, customerID string) error {
	log := r.log.Function("Create")

	db := r.getDB(ctx)
	if err := db.Create(communication).Error; err != nil {
		return log.Err("failed to create communication", err, "customerID", customerID)
	}

	recipient := &CommunicationRecipient{
		CommunicationID: communication.ID,
		CustomerID:      customerID,
	}
	if err := db.Create(recipient).Error; err != nil {
		return log.Err("failed to create communication recipient", err,
			"communicationID", communication.ID,
			"customerID", customerID)
	}

	return nil
}

func (r *communicationRepository) GetDueScheduled(ctx context.Context, now time.Time) ([]Communication, error) {
	var due []Communication
	if err := r.getDB(ctx).
		Where("status = ? AND scheduled_at <= ?", CommunicationStatusScheduled, now).
		Order("scheduled_at ASC").
		Find(&due).Error; err != nil {
		return nil, r.log.Function("GetDueScheduled").Err("failed to get due communications", err)
	}
	return due, nil
}

func (r *communicationRepository) MarkSent(ctx context.Context, ids []string, sentAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.getDB(ctx).
		Model(&Communication{}).
		Where("id IN ? AND status = ?", ids, CommunicationStatusScheduled).
		Updates(map[string]any{"status": CommunicationStatusSent, "sent_at": sentAt})
	if result.Error != nil {
		return 0, r.log.Function("MarkSent").Err("failed to mark communications sent", result.Error, "count", len(ids))
	}

	return result.RowsAffected, nil
}

func joinName(first, last *string) string {
	var parts []string
	for _, part := range []*string{first, last} {
		if part != nil && strings.TrimSpace(*part) != "" {
			parts = append(parts, strings.TrimSpace(*part))
		}
	}
	return strings.Join(parts, " ")
}

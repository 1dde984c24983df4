package repositories

import (
	"agency/internal/database"
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/services"
	"context"
	"time"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	GetAll(ctx context.Context, filter DocumentFilter) ([]Document, error)
	Create(ctx context.Context, document *Document) error
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type documentRepository struct {
	db  database.DB
	log logger.Logger
}

func NewDocument(db database.DB) DocumentRepository {
	return &documentRepository{
		db:  db,
		log: logger.New("documentRepository"),
	}
}

func (r *documentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// GetAll lists documents, most recently uploaded first.
func (r *documentRepository) GetAll(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	log := r.log.Function("GetAll")

	query := r.getDB(ctx).Order("uploaded_at DESC")
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	documents := []Document{}
	if err := query.Find(&documents).Error; err != nil {
		return nil, log.Err("failed to get documents", err, "filter", filter)
	}

	return documents, nil
}

func (r *documentRepository) Create(ctx context.Context, document *Document) error {
	log := r.log.Function("Create")

	if document.UploadedAt.IsZero() {
		document.UploadedAt = time.Now().UTC()
	}

	if err := r.getDB(ctx).Create(document).Error; err != nil {
		return log.Err("failed to create document", err, "customerID", document.CustomerID, "name", document.Name)
	}

	return nil
}

func (r *documentRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.getDB(ctx).
		Model(&Document{}).
		Where("uploaded_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountSince").Err("failed to count documents", err, "since", since)
	}
	return count, nil
}

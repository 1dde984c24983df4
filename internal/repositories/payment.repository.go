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

type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*Payment, error)
	GetAll(ctx context.Context, filter PaymentFilter) ([]PaymentView, error)
	Create(ctx context.Context, payment *Payment) error
	Update(ctx context.Context, payment *Payment) error
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}

type paymentRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPayment(db database.DB) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: logger.New("paymentRepository"),
	}
}

func (r *paymentRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*Payment, error) {
	log := r.log.Function("GetByID")

	if !validID(id) {
		return nil, log.Err("invalid payment id", ErrNotFound, "paymentID", id)
	}

	var payment Payment
	if err := r.getDB(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get payment", notFound(err), "paymentID", id)
	}

	return &payment, nil
}

type paymentRow struct {
	Payment
	FirstName    *string
	LastName     *string
	PolicyNumber *string
}

// GetAll lists payment requests with the customer's name and policy number, newest first.
func (r *paymentRepository) GetAll(ctx context.Context, filter PaymentFilter) ([]PaymentView, error) {
	log := r.log.Function("GetAll")

	query := r.getDB(ctx).
		Table("payments AS p").
		Select("p.*, cu.first_name, cu.last_name, cu.policy_number").
		Joins("LEFT JOIN customers AS cu ON cu.id = p.customer_id").
		Where("p.deleted_at IS NULL").
		Order("p.created_at DESC")

	if filter.CustomerID != "" {
		query = query.Where("p.customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("p.status = ?", filter.Status)
	}

	var rows []paymentRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, log.Err("failed to get payments", err, "filter", filter)
	}

	views := make([]PaymentView, 0, len(rows))
	for _, row := range rows {
		views = append(views, PaymentView{
			Payment:      row.Payment,
			CustomerName: NameOrFallback(joinName(row.FirstName, row.LastName)),
			PolicyNumber: TextOrFallback(row.PolicyNumber),
		})
	}

	return views, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *Payment) error {
	if err := r.getDB(ctx).Create(payment).Error; err != nil {
		return r.log.Function("Create").
			Err("failed to create payment", err, "customerID", payment.CustomerID)
	}
	return nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *Payment) error {
	if err := r.getDB(ctx).Save(payment).Error; err != nil {
		return r.log.Function("Update").Err("failed to update payment", err, "paymentID", payment.ID)
	}
	return nil
}

// ExpireOverdue flips active payment links past their expiry to expired.
func (r *paymentRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := r.getDB(ctx).
		Model(&Payment{}).
		Where("status = ? AND expires_at < ?", PaymentStatusActive, now).
		Update("status", PaymentStatusExpired)
	if result.Error != nil {
		return 0, r.log.Function("ExpireOverdue").Err("failed to expire payments", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *paymentRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.getDB(ctx).
		Model(&Payment{}).
		Where("created_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountSince").Err("failed to count payments", err, "since", since)
	}
	return count, nil
}

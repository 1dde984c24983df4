package repositories

import (
	"agency/config"
	"agency/internal/database"
	. "agency/internal/models"
	"agency/internal/services"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := database.DB{SQL: gdb, Driver: config.DriverSQLite}
	_, err = db.Migrate()
	require.NoError(t, err)

	return db
}

func stringPtr(s string) *string {
	return &s
}

func createCustomer(t *testing.T, repo CustomerRepository, first, last string) *CustomerRecord {
	t.Helper()
	customer := &CustomerRecord{
		FirstName:    first,
		LastName:     last,
		Email:        first + "@example.com",
		PolicyNumber: stringPtr("POL-" + first),
		PolicyType:   "Auto",
		Premium:      1200,
		Status:       string(PolicyStatusActive),
	}
	require.NoError(t, repo.Create(context.Background(), customer))
	return customer
}

func TestCustomerRepository_CRUD(t *testing.T) {
	repo := NewCustomer(newTestDB(t))
	ctx := context.Background()

	customer := createCustomer(t, repo, "Ana", "Cruz")
	assert.NotEmpty(t, customer.ID)

	found, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", found.FirstName)
	assert.Equal(t, 1200.0, found.Premium)

	found.Notes = stringPtr("prefers email")
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "prefers email", *updated.Notes)

	require.NoError(t, repo.Delete(ctx, customer.ID))

	_, err = repo.GetByID(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, customer.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepository_GetByID_InvalidID(t *testing.T) {
	repo := NewCustomer(newTestDB(t))

	_, err := repo.GetByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerRepository_GetAll_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomer(db)
	ctx := context.Background()

	older := createCustomer(t, repo, "Ana", "Cruz")
	require.NoError(t, db.SQL.Model(&CustomerRecord{}).
		Where("id = ?", older.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)
	newer := createCustomer(t, repo, "Ben", "Ortiz")

	customers, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, newer.ID, customers[0].ID)
	assert.Equal(t, older.ID, customers[1].ID)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCustomerRepository_GetAll_Empty(t *testing.T) {
	customers, err := NewCustomer(newTestDB(t)).GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, customers)
	assert.Empty(t, customers)
}

func TestCustomerRepository_CreateBatch(t *testing.T) {
	repo := NewCustomer(newTestDB(t))
	ctx := context.Background()

	err := repo.CreateBatch(ctx, nil, 10)
	assert.Error(t, err)

	batch := []*CustomerRecord{
		{FirstName: "A", LastName: "One", Status: "active"},
		{FirstName: "B", LastName: "Two", Status: "active"},
		{FirstName: "C", LastName: "Three", Status: "active"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch, 2))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	for _, customer := range batch {
		assert.NotEmpty(t, customer.ID)
	}
}

func TestCustomerRepository_CountUpdatedSince(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomer(db)
	ctx := context.Background()

	stale := createCustomer(t, repo, "Ana", "Cruz")
	createCustomer(t, repo, "Ben", "Ortiz")
	require.NoError(t, db.SQL.Exec("UPDATE customers SET updated_at = ? WHERE id = ?",
		time.Now().UTC().Add(-2*time.Hour), stale.ID).Error)

	count, err := repo.CountUpdatedSince(ctx, time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDocumentRepository(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, NewCustomer(db), "Ana", "Cruz")
	repo := NewDocument(db)
	ctx := context.Background()

	old := &Document{
		CustomerID: customer.ID,
		Name:       "Old Policy",
		Type:       string(DocumentTypePolicy),
		URL:        "uploads/old.pdf",
		UploadedAt: time.Now().UTC().AddDate(0, 0, -40),
	}
	recent := &Document{
		CustomerID: customer.ID,
		Name:       "Claim",
		Type:       string(DocumentTypeClaim),
		URL:        "uploads/claim.pdf",
	}
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, recent))
	assert.False(t, recent.UploadedAt.IsZero())

	all, err := repo.GetAll(ctx, DocumentFilter{CustomerID: customer.ID})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Claim", all[0].Name)

	claims, err := repo.GetAll(ctx, DocumentFilter{Type: string(DocumentTypeClaim)})
	require.NoError(t, err)
	assert.Len(t, claims, 1)

	count, err := repo.CountSince(ctx, time.Now().UTC().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCommunicationRepository_CreateInTransaction(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, NewCustomer(db), "Ana", "Cruz")
	repo := NewCommunication(db)
	transactions := services.NewTransactionService(db)
	ctx := context.Background()

	communication := &Communication{
		Type:    "email",
		Subject: "Renewal",
		Content: "Your policy renews soon",
		Status:  string(CommunicationStatusSent),
	}
	err := transactions.Execute(ctx, func(txCtx context.Context) error {
		return repo.Create(txCtx, communication, customer.ID)
	})
	require.NoError(t, err)

	logs, err := repo.GetAll(ctx, CommunicationFilter{CustomerID: customer.ID})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Ana Cruz", logs[0].CustomerName)
	assert.Equal(t, "Renewal", logs[0].Subject)
	assert.Equal(t, customer.ID, logs[0].CustomerID)
}

func TestCommunicationRepository_RollbackLeavesNothing(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, NewCustomer(db), "Ana", "Cruz")
	repo := NewCommunication(db)
	transactions := services.NewTransactionService(db)
	ctx := context.Background()

	failure := errors.New("notify failed")
	err := transactions.Execute(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, &Communication{Type: "sms", Subject: "x", Content: "y", Status: "sent"}, customer.ID); err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	logs, err := repo.GetAll(ctx, CommunicationFilter{})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestCommunicationRepository_DueScheduled(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, NewCustomer(db), "Ana", "Cruz")
	repo := NewCommunication(db)
	ctx := context.Background()
	now := time.Now().UTC()

	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)
	due := &Communication{Type: "email", Subject: "due", Content: "c", Status: string(CommunicationStatusScheduled), ScheduledAt: &past}
	later := &Communication{Type: "email", Subject: "later", Content: "c", Status: string(CommunicationStatusScheduled), ScheduledAt: &future}
	require.NoError(t, repo.Create(ctx, due, customer.ID))
	require.NoError(t, repo.Create(ctx, later, customer.ID))

	found, err := repo.GetDueScheduled(ctx, now)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, due.ID, found[0].ID)

	updated, err := repo.MarkSent(ctx, []string{due.ID}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	sent, err := repo.GetAll(ctx, CommunicationFilter{Status: string(CommunicationStatusSent)})
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.NotNil(t, sent[0].SentAt)

	updated, err = repo.MarkSent(ctx, nil, now)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestPaymentRepository(t *testing.T) {
	db := newTestDB(t)
	customer := createCustomer(t, NewCustomer(db), "Ana", "Cruz")
	repo := NewPayment(db)
	ctx := context.Background()
	now := time.Now().UTC()

	active := &Payment{
		CustomerID:  customer.ID,
		Amount:      125,
		Description: "Monthly premium",
		DueDate:     "2024-03-01",
		Status:      string(PaymentStatusActive),
		ExpiresAt:   now.Add(PaymentLinkValidity),
	}
	overdue := &Payment{
		CustomerID:  "00000000-0000-0000-0000-000000000000",
		Amount:      80,
		Description: "Orphaned",
		DueDate:     "2024-01-01",
		Status:      string(PaymentStatusActive),
		ExpiresAt:   now.Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, overdue))

	views, err := repo.GetAll(ctx, PaymentFilter{})
	require.NoError(t, err)
	require.Len(t, views, 2)

	byID := map[string]PaymentView{}
	for _, view := range views {
		byID[view.ID] = view
	}
	assert.Equal(t, "Ana Cruz", byID[active.ID].CustomerName)
	assert.Equal(t, "POL-Ana", byID[active.ID].PolicyNumber)
	assert.Equal(t, "Unknown Customer", byID[overdue.ID].CustomerName)
	assert.Equal(t, "N/A", byID[overdue.ID].PolicyNumber)

	expired, err := repo.ExpireOverdue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	payment, err := repo.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, string(PaymentStatusExpired), payment.Status)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	count, err := repo.CountSince(ctx, now.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestAgentRepository(t *testing.T) {
	repo := NewAgent(newTestDB(t))
	ctx := context.Background()

	agent := &Agent{Login: "alex", DisplayName: "Alex", Password: "secret"}
	require.NoError(t, repo.Create(ctx, agent))

	found, err := repo.GetByLogin(ctx, "alex")
	require.NoError(t, err)
	assert.True(t, found.CheckPassword("secret"))
	assert.NotEqual(t, "secret", found.Password)

	byID, err := repo.GetByID(ctx, agent.ID)
	require.NoError(t, err)
	assert.Equal(t, "alex", byID.Login)

	_, err = repo.GetByLogin(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, repo.Create(ctx, &Agent{Login: "alex", DisplayName: "Dup", Password: "x"}))
}

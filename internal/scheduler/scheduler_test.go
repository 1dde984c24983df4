package scheduler

import (
	"agency/config"
	"agency/internal/database"
	. "agency/internal/models"
	"agency/internal/repositories"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	channel string
	action  string
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []notification
}

func (f *fakeNotifier) Notify(channel, eventType, action string, data map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, notification{channel: channel, action: action})
}

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := database.New(config.Config{DatabaseDriver: config.DriverSQLite, DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)
	return db
}

func TestDispatcher_RunOnce(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	customers := repositories.NewCustomer(db)
	communications := repositories.NewCommunication(db)
	payments := repositories.NewPayment(db)

	customer := &CustomerRecord{FirstName: "Ana", LastName: "Cruz", Status: string(PolicyStatusActive)}
	require.NoError(t, customers.Create(ctx, customer))

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	due := &Communication{Type: "email", Subject: "Renewal", Content: "Hi", Status: string(CommunicationStatusScheduled), ScheduledAt: &past}
	later := &Communication{Type: "sms", Subject: "Reminder", Content: "Hi", Status: string(CommunicationStatusScheduled), ScheduledAt: &future}
	require.NoError(t, communications.Create(ctx, due, customer.ID))
	require.NoError(t, communications.Create(ctx, later, customer.ID))

	overdue := &Payment{CustomerID: customer.ID, Amount: 100, Description: "Premium", DueDate: "2024-05-01", Status: string(PaymentStatusActive), ExpiresAt: past}
	current := &Payment{CustomerID: customer.ID, Amount: 100, Description: "Premium", DueDate: "2024-07-01", Status: string(PaymentStatusActive), ExpiresAt: future}
	require.NoError(t, payments.Create(ctx, overdue))
	require.NoError(t, payments.Create(ctx, current))

	notifier := &fakeNotifier{}
	dispatcher := New(communications, payments, notifier, "")
	dispatcher.now = func() time.Time { return now }

	result, err := dispatcher.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{Dispatched: 1, Expired: 1}, result)

	logs, err := communications.GetAll(ctx, CommunicationFilter{})
	require.NoError(t, err)
	statuses := map[string]string{}
	for _, entry := range logs {
		statuses[entry.ID] = entry.Status
	}
	assert.Equal(t, string(CommunicationStatusSent), statuses[due.ID])
	assert.Equal(t, string(CommunicationStatusScheduled), statuses[later.ID])

	expired, err := payments.GetByID(ctx, overdue.ID)
	require.NoError(t, err)
	assert.Equal(t, string(PaymentStatusExpired), expired.Status)

	assert.Equal(t, []notification{
		{channel: "communications", action: "sent"},
		{channel: "payments", action: "expired"},
	}, notifier.calls)

	result, err = dispatcher.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Result{}, result, "a second run finds nothing left to do")
}

func TestDispatcher_StartStop(t *testing.T) {
	db := newTestDB(t)
	dispatcher := New(repositories.NewCommunication(db), repositories.NewPayment(db), nil, "@every 1h")

	require.NoError(t, dispatcher.Start())
	require.NoError(t, dispatcher.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, dispatcher.Stop(ctx))
	assert.NoError(t, dispatcher.Stop(ctx))
}

func TestDispatcher_InvalidSchedule(t *testing.T) {
	db := newTestDB(t)
	dispatcher := New(repositories.NewCommunication(db), repositories.NewPayment(db), nil, "every so often")

	err := dispatcher.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid dispatch schedule")
}

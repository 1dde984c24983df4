package dashboardController

import (
	"agency/config"
	"agency/internal/database"
	. "agency/internal/models"
	"agency/internal/repositories"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := database.New(config.Config{DatabaseDriver: config.DriverSQLite, DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)
	return db
}

func TestSyncPercentage(t *testing.T) {
	tests := []struct {
		name     string
		synced   int64
		total    int64
		expected int
	}{
		{"no customers", 0, 0, 0},
		{"all synced", 4, 4, 100},
		{"rounds half up", 1, 8, 13},
		{"one third", 1, 3, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SyncPercentage(tt.synced, tt.total))
		})
	}
}

func record(policyType, status string, premium float64, createdAt time.Time) CustomerRecord {
	r := CustomerRecord{FirstName: "A", LastName: "B", PolicyType: policyType, Status: status, Premium: premium}
	r.CreatedAt = createdAt
	return r
}

func TestBuildAnalytics(t *testing.T) {
	now := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	records := []CustomerRecord{
		record("Auto", "active", 1200, now),
		record("Auto", "expired", 800, now.AddDate(0, -1, 0)),
		record("Home", "active", 900, now.AddDate(0, -2, 0)),
		record("", "active", 100, now.AddDate(-1, 0, 0)),
	}
	communications := []CommunicationLog{
		{CreatedAt: now},
		{CreatedAt: now.AddDate(0, -5, 0)},
		{CreatedAt: now.AddDate(0, -6, 0)},
	}

	analytics := BuildAnalytics(records, communications, now)

	assert.Equal(t, 4, analytics.TotalCustomers)
	assert.Equal(t, 2200.0, analytics.TotalRevenue)
	assert.Equal(t, 0.75, analytics.ConversionRate)

	require.Len(t, analytics.MonthlyStats, ANALYTICS_MONTHS)
	assert.Equal(t, "Jan 2024", analytics.MonthlyStats[0].Month)
	assert.Equal(t, "Jun 2024", analytics.MonthlyStats[5].Month)
	assert.Equal(t, 1, analytics.MonthlyStats[5].Customers)
	assert.Equal(t, 1200.0, analytics.MonthlyStats[5].Revenue)
	assert.Equal(t, 1, analytics.MonthlyStats[4].Customers)
	assert.Equal(t, 0.0, analytics.MonthlyStats[4].Revenue)
	assert.Equal(t, 1, analytics.MonthlyStats[0].Communications)
	assert.Equal(t, 1, analytics.MonthlyStats[5].Communications)

	require.Len(t, analytics.TopPolicies, 2)
	assert.Equal(t, PolicyShare{PolicyType: "Auto", Count: 2, Revenue: 1200}, analytics.TopPolicies[0])
	assert.Equal(t, PolicyShare{PolicyType: "Home", Count: 1, Revenue: 900}, analytics.TopPolicies[1])

	require.Len(t, analytics.ConversationMoods, 4)
	assert.Equal(t, "receptive", analytics.ConversationMoods[0].Mood)
}

func TestBuildAnalytics_Empty(t *testing.T) {
	analytics := BuildAnalytics(nil, nil, time.Now())

	assert.Zero(t, analytics.TotalCustomers)
	assert.Zero(t, analytics.ConversionRate)
	assert.Empty(t, analytics.TopPolicies)
	assert.NotNil(t, analytics.TopPolicies)
}

func TestGetStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	customers := repositories.NewCustomer(db)
	documents := repositories.NewDocument(db)
	controller := New(customers, documents, repositories.NewPayment(db), repositories.NewCommunication(db), func() int { return 2 })

	stats, err := controller.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, stats)

	customer := &CustomerRecord{FirstName: "Ana", LastName: "Cruz", Status: string(PolicyStatusActive)}
	require.NoError(t, customers.Create(ctx, customer))
	require.NoError(t, documents.Create(ctx, &Document{CustomerID: customer.ID, Name: "policy.pdf", Type: string(DocumentTypePolicy), URL: "policy.pdf"}))

	stats, err = controller.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.CustomerCount)
	assert.Equal(t, int64(1), stats.DocumentCount)
	assert.Equal(t, int64(0), stats.PaymentCount)
	assert.Equal(t, 100, stats.CloudSyncPercentage)

	analytics, err := controller.GetAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, analytics.TotalCustomers)
	assert.Equal(t, 2, analytics.ActiveConversations)
}

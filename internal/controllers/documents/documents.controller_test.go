package documentController

import (
	"agency/config"
	"agency/internal/database"
	"agency/internal/events"
	. "agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) (*DocumentController, *CustomerRecord, *[]events.Event) {
	t.Helper()

	db, err := database.New(config.Config{DatabaseDriver: config.DriverSQLite, DatabaseDbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Migrate()
	require.NoError(t, err)

	bus := events.New(nil, config.Config{})
	var received []events.Event
	bus.Subscribe(events.ChannelDocuments, func(event events.Event) {
		received = append(received, event)
	})

	customers := repositories.NewCustomer(db)
	customer := &CustomerRecord{FirstName: "Ana", LastName: "Cruz", Status: string(PolicyStatusActive)}
	require.NoError(t, customers.Create(context.Background(), customer))

	controller := New(repositories.NewDocument(db), customers, services.NewCacheInvalidationService(db, bus))
	return controller, customer, &received
}

func TestCreateDocument(t *testing.T) {
	controller, customer, received := newController(t)
	ctx := context.Background()

	document, err := controller.CreateDocument(ctx, CreateDocumentRequest{
		CustomerID: customer.ID,
		Name:       " Driver License ",
		Type:       string(DocumentTypeIdentification),
		URL:        "uploads/license.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Driver License", document.Name)
	assert.NotEmpty(t, document.ID)

	require.Len(t, *received, 1)
	assert.Equal(t, "created", (*received)[0].Action)

	documents, err := controller.GetDocuments(ctx, DocumentFilter{CustomerID: customer.ID})
	require.NoError(t, err)
	assert.Len(t, documents, 1)

	documents, err = controller.GetDocuments(ctx, DocumentFilter{Type: string(DocumentTypeClaim)})
	require.NoError(t, err)
	assert.Empty(t, documents)
}

func TestCreateDocument_Validation(t *testing.T) {
	controller, customer, received := newController(t)

	tests := []struct {
		name    string
		request CreateDocumentRequest
		field   string
	}{
		{"missing url", CreateDocumentRequest{CustomerID: customer.ID, Name: "Policy", Type: "policy"}, ""},
		{"blank name", CreateDocumentRequest{CustomerID: customer.ID, Name: "  ", Type: "policy", URL: "x"}, ""},
		{"unknown type", CreateDocumentRequest{CustomerID: customer.ID, Name: "Policy", Type: "memo", URL: "x"}, "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.CreateDocument(context.Background(), tt.request)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
	assert.Empty(t, *received)
}

func TestCreateDocument_UnknownCustomer(t *testing.T) {
	controller, _, _ := newController(t)

	_, err := controller.CreateDocument(context.Background(), CreateDocumentRequest{
		CustomerID: "missing",
		Name:       "Policy",
		Type:       "policy",
		URL:        "x",
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

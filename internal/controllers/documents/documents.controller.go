package documentController

import (
	"agency/internal/events"
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"context"
	"strings"
)

type DocumentController struct {
	documentRepo             repositories.DocumentRepository
	customerRepo             repositories.CustomerRepository
	cacheInvalidationService *services.CacheInvalidationService
	log                      logger.Logger
}

func New(
	documentRepo repositories.DocumentRepository,
	customerRepo repositories.CustomerRepository,
	cacheInvalidationService *services.CacheInvalidationService,
) *DocumentController {
	return &DocumentController{
		documentRepo:             documentRepo,
		customerRepo:             customerRepo,
		cacheInvalidationService: cacheInvalidationService,
		log:                      logger.New("DocumentController"),
	}
}

func (dc *DocumentController) GetDocuments(ctx context.Context, filter DocumentFilter) ([]Document, error) {
	documents, err := dc.documentRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, dc.log.Function("GetDocuments").Err("failed to get documents", err)
	}
	return documents, nil
}

func (dc *DocumentController) CreateDocument(ctx context.Context, request CreateDocumentRequest) (*Document, error) {
	log := dc.log.Function("CreateDocument")

	request.Name = strings.TrimSpace(request.Name)
	request.URL = strings.TrimSpace(request.URL)
	if request.CustomerID == "" || request.Name == "" || request.Type == "" || request.URL == "" {
		return nil, NewValidationError("", "Missing required fields: customerId, name, type, url")
	}
	if !DocumentType(request.Type).Valid() {
		return nil, NewValidationError("type", "must be one of policy, claim, payment, identification, other")
	}

	if _, err := dc.customerRepo.GetByID(ctx, request.CustomerID); err != nil {
		return nil, log.Err("failed to get customer", err, "customerID", request.CustomerID)
	}

	document := &Document{
		CustomerID:  request.CustomerID,
		Name:        request.Name,
		Type:        request.Type,
		URL:         request.URL,
		Description: request.Description,
	}
	if err := dc.documentRepo.Create(ctx, document); err != nil {
		return nil, log.Err("failed to create document", err)
	}

	dc.cacheInvalidationService.Notify(events.ChannelDocuments, "document", "created", map[string]any{
		"documentId": document.ID,
		"customerId": document.CustomerID,
	})

	return document, nil
}

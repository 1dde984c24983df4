package communicationController

import (
	"agency/internal/events"
	"agency/internal/logger"
	"agency/internal/metrics"
	. "agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"context"
	"slices"
	"time"
)

type CommunicationController struct {
	communicationRepo        repositories.CommunicationRepository
	customerRepo             repositories.CustomerRepository
	transactionService       *services.TransactionService
	cacheInvalidationService *services.CacheInvalidationService
	now                      func() time.Time
	log                      logger.Logger
}

func New(
	communicationRepo repositories.CommunicationRepository,
	customerRepo repositories.CustomerRepository,
	transactionService *services.TransactionService,
	cacheInvalidationService *services.CacheInvalidationService,
) *CommunicationController {
	return &CommunicationController{
		communicationRepo:        communicationRepo,
		customerRepo:             customerRepo,
		transactionService:       transactionService,
		cacheInvalidationService: cacheInvalidationService,
		now:                      func() time.Time { return time.Now().UTC() },
		log:                      logger.New("CommunicationController"),
	}
}

func (cc *CommunicationController) GetCommunications(
	ctx context.Context,
	filter CommunicationFilter,
) ([]CommunicationLog, error) {
	communications, err := cc.communicationRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, cc.log.Function("GetCommunications").Err("failed to get communications", err)
	}
	return communications, nil
}

// CreateCommunication logs a communication for one customer. It is scheduled when
// scheduledFor is set and recorded as sent otherwise.
func (cc *CommunicationController) CreateCommunication(
	ctx context.Context,
	request CreateCommunicationRequest,
) (CommunicationLog, error) {
	log := cc.log.Function("CreateCommunication")

	if request.CustomerID == "" || request.Type == "" || request.Subject == "" || request.Content == "" {
		return CommunicationLog{}, NewValidationError("", "Missing required fields")
	}
	if !slices.Contains(CommunicationLogTypes, request.Type) {
		return CommunicationLog{}, NewValidationError("type", "must be one of email, sms, phone, meeting")
	}

	customer, err := cc.customerRepo.GetByID(ctx, request.CustomerID)
	if err != nil {
		return CommunicationLog{}, log.Err("failed to get customer", err, "customerID", request.CustomerID)
	}

	communication := &Communication{
		Type:    request.Type,
		Subject: request.Subject,
		Content: request.Content,
	}
	if request.ScheduledFor != nil {
		scheduled := request.ScheduledFor.UTC()
		communication.Status = string(CommunicationStatusScheduled)
		communication.ScheduledAt = &scheduled
	} else {
		sent := cc.now()
		communication.Status = string(CommunicationStatusSent)
		communication.SentAt = &sent
	}

	err = cc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		return cc.communicationRepo.Create(txCtx, communication, request.CustomerID)
	})
	if err != nil {
		return CommunicationLog{}, log.Err("failed to create communication", err, "customerID", request.CustomerID)
	}

	metrics.CommunicationsTotal.WithLabelValues(communication.Type, communication.Status).Inc()
	cc.cacheInvalidationService.Notify(events.ChannelCommunications, "communication", "created", map[string]any{
		"communicationId": communication.ID,
		"customerId":      request.CustomerID,
		"status":          communication.Status,
	})

	return CommunicationLog{
		ID:           communication.ID,
		CustomerID:   request.CustomerID,
		CustomerName: NameOrFallback(customer.ToCustomer().FullName()),
		Type:         communication.Type,
		Subject:      communication.Subject,
		Content:      communication.Content,
		ScheduledFor: communication.ScheduledAt,
		SentAt:       communication.SentAt,
		Status:       communication.Status,
		CreatedAt:    communication.CreatedAt,
	}, nil
}

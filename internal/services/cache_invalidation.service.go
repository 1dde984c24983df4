package services

import (
	"agency/internal/database"
	"agency/internal/events"
	"agency/internal/logger"
	"context"
	"time"

	"github.com/google/uuid"
)

type CacheInvalidationService struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func NewCacheInvalidationService(db database.DB, eventBus *events.EventBus) *CacheInvalidationService {
	return &CacheInvalidationService{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("CacheInvalidationService"),
	}
}

// InvalidateCustomer drops the cached customer and customer list, then tells connected
// clients which customer changed. Cache errors are returned; event errors are only logged.
func (s *CacheInvalidationService) InvalidateCustomer(ctx context.Context, customerID, action string) error {
	log := s.log.Function("InvalidateCustomer")

	var firstErr error
	keys := []string{database.CustomerCacheKey(customerID), database.CustomerListCacheKey}
	for _, key := range keys {
		if err := database.NewCacheBuilder(s.db.Cache.Customer, key).WithContext(ctx).Delete(); err != nil {
			if firstErr == nil {
				firstErr = log.Err("failed to delete cache key", err, "key", key)
			}
		}
	}

	s.Notify(events.ChannelCustomers, "customer", action, map[string]any{"customerId": customerID})

	return firstErr
}

// InvalidateCustomerList drops only the cached customer list, for bulk changes that add
// customers without touching existing ones.
func (s *CacheInvalidationService) InvalidateCustomerList(ctx context.Context, action string, data map[string]any) error {
	var err error
	if deleteErr := database.NewCacheBuilder(s.db.Cache.Customer, database.CustomerListCacheKey).
		WithContext(ctx).
		Delete(); deleteErr != nil {
		err = s.log.Function("InvalidateCustomerList").
			Err("failed to delete cache key", deleteErr, "key", database.CustomerListCacheKey)
	}

	s.Notify(events.ChannelCustomers, "customer", action, data)
	return err
}

// Notify publishes a change event for websocket clients.
func (s *CacheInvalidationService) Notify(channel, eventType, action string, data map[string]any) {
	if s.eventBus == nil {
		return
	}

	event := events.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Action:    action,
		Data:      data,
		Timestamp: time.Now(),
	}

	if err := s.eventBus.Publish(channel, event); err != nil {
		s.log.Function("Notify").Warn("failed to publish change event", "channel", channel, "error", err)
	}
}

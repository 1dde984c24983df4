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

const (
	CUSTOMER_CACHE_EXPIRY      = 1 * time.Hour
	CUSTOMER_LIST_CACHE_EXPIRY = 5 * time.Minute
)

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*CustomerRecord, error)
	GetAll(ctx context.Context) ([]CustomerRecord, error)
	Create(ctx context.Context, customer *CustomerRecord) error
	CreateBatch(ctx context.Context, customers []*CustomerRecord, batchSize int) error
	Update(ctx context.Context, customer *CustomerRecord) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountUpdatedSince(ctx context.Context, since time.Time) (int64, error)
}

type customerRepository struct {
	db  database.DB
	log logger.Logger
}

func NewCustomer(db database.DB) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: logger.New("customerRepository"),
	}
}

func (r *customerRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*CustomerRecord, error) {
	log := r.log.Function("GetByID")

	var customer CustomerRecord
	if found := r.getCacheByID(ctx, id, &customer); found {
		return &customer, nil
	}

	if err := r.getDBByID(ctx, id, &customer); err != nil {
		return nil, err
	}

	if err := r.addCustomerToCache(ctx, &customer); err != nil {
		log.Warn("failed to add customer to cache", "customerID", id, "error", err)
	}

	return &customer, nil
}

// GetAll returns every customer, newest first.
func (r *customerRepository) GetAll(ctx context.Context) ([]CustomerRecord, error) {
	log := r.log.Function("GetAll")

	var customers []CustomerRecord
	found, err := database.NewCacheBuilder(r.db.Cache.Customer, database.CustomerListCacheKey).
		WithContext(ctx).
		Get(&customers)
	if err != nil {
		log.Warn("failed to read customer list from cache", "error", err)
	}
	if found {
		return customers, nil
	}

	customers = []CustomerRecord{}
	if err := r.getDB(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, log.Err("failed to get all customers", err)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Customer, database.CustomerListCacheKey).
		WithStruct(customers).
		WithTTL(CUSTOMER_LIST_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to add customer list to cache", "error", err)
	}

	return customers, nil
}

func (r *customerRepository) Create(ctx context.Context, customer *CustomerRecord) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(customer).Error; err != nil {
		return log.Err("failed to create customer", err, "email", customer.Email)
	}

	if err := r.addCustomerToCache(ctx, customer); err != nil {
		log.Warn("failed to add customer to cache", "customerID", customer.ID, "error", err)
	}

	return nil
}

func (r *customerRepository) CreateBatch(
	ctx context.Context,
	customers []*CustomerRecord,
	batchSize int,
) error {
	log := r.log.Function("CreateBatch")

	if len(customers) == 0 {
		return log.Error("empty customer batch provided")
	}

	if batchSize <= 0 {
		batchSize = 100
	}

	if err := r.getDB(ctx).CreateInBatches(customers, batchSize).Error; err != nil {
		return log.Err("failed to create customer batch", err,
			"totalRecords", len(customers),
			"batchSize", batchSize)
	}

	log.Info("Inserted customer batch", "totalRecords", len(customers), "batchSize", batchSize)
	return nil
}

func (r *customerRepository) Update(ctx context.Context, customer *CustomerRecord) error {
	log := r.log.Function("Update")

	if err := r.getDB(ctx).Save(customer).Error; err != nil {
		return log.Err("failed to update customer", err, "customerID", customer.ID)
	}

	if err := r.addCustomerToCache(ctx, customer); err != nil {
		log.Warn("failed to update customer in cache", "customerID", customer.ID, "error", err)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	log := r.log.Function("Delete")

	if !validID(id) {
		return log.Err("invalid customer id", ErrNotFound, "customerID", id)
	}

	result := r.getDB(ctx).Delete(&CustomerRecord{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete customer", result.Error, "customerID", id)
	}
	if result.RowsAffected == 0 {
		return log.Err("customer not found", ErrNotFound, "customerID", id)
	}

	if err := database.NewCacheBuilder(r.db.Cache.Customer, database.CustomerCacheKey(id)).
		WithContext(ctx).
		Delete(); err != nil {
		log.Warn("failed to remove customer from cache", "customerID", id, "error", err)
	}

	return nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.getDB(ctx).Model(&CustomerRecord{}).Count(&count).Error; err != nil {
		return 0, r.log.Function("Count").Err("failed to count customers", err)
	}
	return count, nil
}

func (r *customerRepository) CountUpdatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	if err := r.getDB(ctx).
		Model(&CustomerRecord{}).
		Where("updated_at > ?", since).
		Count(&count).Error; err != nil {
		return 0, r.log.Function("CountUpdatedSince").
			Err("failed to count recently updated customers", err, "since", since)
	}
	return count, nil
}

func (r *customerRepository) getCacheByID(ctx context.Context, customerID string, customer *CustomerRecord) bool {
	found, err := database.NewCacheBuilder(r.db.Cache.Customer, database.CustomerCacheKey(customerID)).
		WithContext(ctx).
		Get(customer)
	if err != nil {
		r.log.Function("getCacheByID").
			Warn("failed to get customer from cache", "customerID", customerID, "error", err)
		return false
	}
	return found
}

func (r *customerRepository) addCustomerToCache(ctx context.Context, customer *CustomerRecord) error {
	if err := database.NewCacheBuilder(r.db.Cache.Customer, database.CustomerCacheKey(customer.ID)).
		WithStruct(customer).
		WithTTL(CUSTOMER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addCustomerToCache").
			Err("failed to add customer to cache", err, "customerID", customer.ID)
	}
	return nil
}

func (r *customerRepository) getDBByID(ctx context.Context, customerID string, customer *CustomerRecord) error {
	log := r.log.Function("getDBByID")

	if !validID(customerID) {
		return log.Err("invalid customer id", ErrNotFound, "customerID", customerID)
	}

	if err := r.getDB(ctx).First(customer, "id = ?", customerID).Error; err != nil {
		return log.Err("failed to get customer by id", notFound(err), "customerID", customerID)
	}

	return nil
}

package customerController

import (
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"agency/internal/utils"
	"context"
	"io"
	"net/mail"
	"slices"
	"strings"
)

const IMPORT_BATCH_SIZE = 100

type CustomerController struct {
	customerRepo             repositories.CustomerRepository
	transactionService       *services.TransactionService
	cacheInvalidationService *services.CacheInvalidationService
	log                      logger.Logger
}

func New(
	customerRepo repositories.CustomerRepository,
	transactionService *services.TransactionService,
	cacheInvalidationService *services.CacheInvalidationService,
) *CustomerController {
	return &CustomerController{
		customerRepo:             customerRepo,
		transactionService:       transactionService,
		cacheInvalidationService: cacheInvalidationService,
		log:                      logger.New("CustomerController"),
	}
}

func (cc *CustomerController) GetCustomers(ctx context.Context) ([]Customer, error) {
	records, err := cc.customerRepo.GetAll(ctx)
	if err != nil {
		return nil, cc.log.Function("GetCustomers").Err("failed to get customers", err)
	}

	customers := make([]Customer, len(records))
	for i, record := range records {
		customers[i] = record.ToCustomer()
	}
	return customers, nil
}

func (cc *CustomerController) GetCustomer(ctx context.Context, id string) (Customer, error) {
	record, err := cc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return Customer{}, cc.log.Function("GetCustomer").Err("failed to get customer", err, "customerID", id)
	}
	return record.ToCustomer(), nil
}

func (cc *CustomerController) CreateCustomer(ctx context.Context, request CustomerRequest) (Customer, error) {
	log := cc.log.Function("CreateCustomer")

	var record CustomerRecord
	if err := prepare(request, &record); err != nil {
		return Customer{}, err
	}

	if err := cc.customerRepo.Create(ctx, &record); err != nil {
		return Customer{}, log.Err("failed to create customer", err)
	}

	cc.invalidate(ctx, record.ID, "created")
	return record.ToCustomer(), nil
}

func (cc *CustomerController) UpdateCustomer(ctx context.Context, id string, request CustomerRequest) (Customer, error) {
	log := cc.log.Function("UpdateCustomer")

	record, err := cc.customerRepo.GetByID(ctx, id)
	if err != nil {
		return Customer{}, log.Err("failed to get customer", err, "customerID", id)
	}

	if err := prepare(request, record); err != nil {
		return Customer{}, err
	}

	if err := cc.customerRepo.Update(ctx, record); err != nil {
		return Customer{}, log.Err("failed to update customer", err, "customerID", id)
	}

	cc.invalidate(ctx, id, "updated")
	return record.ToCustomer(), nil
}

func (cc *CustomerController) DeleteCustomer(ctx context.Context, id string) error {
	if err := cc.customerRepo.Delete(ctx, id); err != nil {
		return cc.log.Function("DeleteCustomer").Err("failed to delete customer", err, "customerID", id)
	}

	cc.invalidate(ctx, id, "deleted")
	return nil
}

func (cc *CustomerController) ExportCSV(ctx context.Context, w io.Writer) error {
	log := cc.log.Function("ExportCSV")

	customers, err := cc.GetCustomers(ctx)
	if err != nil {
		return err
	}

	if err := utils.WriteCustomersCSV(w, customers); err != nil {
		return log.Err("failed to write customer csv", err, "count", len(customers))
	}
	return nil
}

// ImportCSV creates every row of r in one transaction; a single bad row rejects the file.
func (cc *CustomerController) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	log := cc.log.Function("ImportCSV")

	requests, err := utils.ReadCustomersCSV(r)
	if err != nil {
		return 0, NewValidationError("file", err.Error())
	}
	if len(requests) == 0 {
		return 0, NewValidationError("file", "csv file has no customer rows")
	}

	records := make([]*CustomerRecord, len(requests))
	for i, request := range requests {
		records[i] = &CustomerRecord{}
		if err := prepare(request, records[i]); err != nil {
			return 0, NewValidationError("file", (&utils.CSVRowError{Row: i + 1, Reason: err.Error()}).Error())
		}
	}

	err = cc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		return cc.customerRepo.CreateBatch(txCtx, records, IMPORT_BATCH_SIZE)
	})
	if err != nil {
		return 0, log.Err("failed to import customers", err, "count", len(records))
	}

	if err := cc.cacheInvalidationService.InvalidateCustomerList(ctx, "imported", map[string]any{"count": len(records)}); err != nil {
		log.Warn("Failed to invalidate customer list after import", "error", err)
	}

	log.Info("Imported customers", "count", len(records))
	return len(records), nil
}

func (cc *CustomerController) invalidate(ctx context.Context, customerID, action string) {
	if err := cc.cacheInvalidationService.InvalidateCustomer(ctx, customerID, action); err != nil {
		cc.log.Function("invalidate").Warn(
			"Failed to invalidate customer cache",
			"customerID", customerID,
			"action", action,
			"error", err,
		)
	}
}

// prepare validates request and copies it onto record with dates normalised.
func prepare(request CustomerRequest, record *CustomerRecord) error {
	if strings.TrimSpace(request.FirstName) == "" {
		return NewValidationError("firstName", "is required")
	}
	if strings.TrimSpace(request.LastName) == "" {
		return NewValidationError("lastName", "is required")
	}

	if email := strings.TrimSpace(request.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return NewValidationError("email", "is not a valid email address")
		}
	}

	if request.PreferredTime != nil && strings.TrimSpace(*request.PreferredTime) != "" {
		preferred := strings.ToLower(strings.TrimSpace(*request.PreferredTime))
		if !slices.Contains(PreferredTimes, preferred) {
			return NewValidationError("preferredTime", "must be one of morning, afternoon, evening")
		}
		request.PreferredTime = &preferred
	}

	if request.DateOfBirth != "" {
		normalized, ok := utils.NormalizeDate(request.DateOfBirth)
		if !ok {
			return NewValidationError("dateOfBirth", "is not a recognised date")
		}
		request.DateOfBirth = normalized
	}

	for field, target := range map[string]**string{"startDate": &request.StartDate, "endDate": &request.EndDate} {
		if !present(*target) {
			continue
		}
		normalized, ok := utils.NormalizeDate(**target)
		if !ok {
			return NewValidationError(field, "is not a recognised date")
		}
		*target = &normalized
	}

	if present(request.StartDate) && present(request.EndDate) && *request.EndDate < *request.StartDate {
		return NewValidationError("endDate", "must not be before startDate")
	}

	request.Apply(record)
	return nil
}

func present(value *string) bool {
	return value != nil && strings.TrimSpace(*value) != ""
}

package paymentController

import (
	"agency/config"
	"agency/internal/events"
	"agency/internal/logger"
	. "agency/internal/models"
	"agency/internal/repositories"
	"agency/internal/services"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type PaymentController struct {
	paymentRepo              repositories.PaymentRepository
	customerRepo             repositories.CustomerRepository
	cacheInvalidationService *services.CacheInvalidationService
	baseURL                  string
	now                      func() time.Time
	log                      logger.Logger
}

func New(
	paymentRepo repositories.PaymentRepository,
	customerRepo repositories.CustomerRepository,
	cacheInvalidationService *services.CacheInvalidationService,
	cfg config.Config,
) *PaymentController {
	return &PaymentController{
		paymentRepo:              paymentRepo,
		customerRepo:             customerRepo,
		cacheInvalidationService: cacheInvalidationService,
		baseURL:                  strings.TrimRight(cfg.PaymentsBaseURL, "/"),
		now:                      func() time.Time { return time.Now().UTC() },
		log:                      logger.New("PaymentController"),
	}
}

func (pc *PaymentController) GetPayments(ctx context.Context, filter PaymentFilter) ([]PaymentView, error) {
	payments, err := pc.paymentRepo.GetAll(ctx, filter)
	if err != nil {
		return nil, pc.log.Function("GetPayments").Err("failed to get payments", err)
	}
	return payments, nil
}

// CreatePayment records a payment request. Without an explicit URL the request links to
// the payment page for its own id; without an expiry it stays valid for thirty days.
func (pc *PaymentController) CreatePayment(ctx context.Context, request CreatePaymentRequest) (PaymentView, error) {
	log := pc.log.Function("CreatePayment")

	request.Description = strings.TrimSpace(request.Description)
	if request.CustomerID == "" || request.Amount == 0 || request.DueDate == "" || request.Description == "" {
		return PaymentView{}, NewValidationError("", "Missing required fields: customerId, amount, dueDate, description")
	}
	if request.Amount < 0 || math.IsNaN(request.Amount) || math.IsInf(request.Amount, 0) {
		return PaymentView{}, NewValidationError("amount", "must be a positive number")
	}

	record, err := pc.customerRepo.GetByID(ctx, request.CustomerID)
	if err != nil {
		return PaymentView{}, log.Err("failed to get customer", err, "customerID", request.CustomerID)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return PaymentView{}, log.Err("failed to generate payment id", err)
	}

	payment := &Payment{
		CustomerID:  request.CustomerID,
		Amount:      request.Amount,
		Description: request.Description,
		DueDate:     request.DueDate,
		Status:      string(PaymentStatusActive),
		PaymentURL:  fmt.Sprintf("%s/payments/%s", pc.baseURL, id.String()),
		ExpiresAt:   pc.now().Add(PaymentLinkValidity),
	}
	payment.ID = id.String()
	if request.PaymentURL != nil && strings.TrimSpace(*request.PaymentURL) != "" {
		payment.PaymentURL = strings.TrimSpace(*request.PaymentURL)
	}
	if request.ExpiresAt != nil {
		payment.ExpiresAt = request.ExpiresAt.UTC()
	}

	if err := pc.paymentRepo.Create(ctx, payment); err != nil {
		return PaymentView{}, log.Err("failed to create payment", err, "customerID", request.CustomerID)
	}

	pc.cacheInvalidationService.Notify(events.ChannelPayments, "payment", "created", map[string]any{
		"paymentId":  payment.ID,
		"customerId": payment.CustomerID,
	})

	customer := record.ToCustomer()
	view := PaymentView{
		Payment:      *payment,
		CustomerName: NameOrFallback(customer.FullName()),
		PolicyNumber: TextOrFallback(customer.InsuranceInfo.PolicyNumber),
	}
	return view, nil
}

// MarkPaid closes an active payment request.
func (pc *PaymentController) MarkPaid(ctx context.Context, id string) (*Payment, error) {
	log := pc.log.Function("MarkPaid")

	payment, err := pc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, log.Err("failed to get payment", err, "paymentID", id)
	}
	if payment.Status != string(PaymentStatusActive) {
		return nil, NewValidationError("status", fmt.Sprintf("payment is %s and cannot be marked paid", payment.Status))
	}

	payment.Status = string(PaymentStatusPaid)
	if err := pc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, log.Err("failed to update payment", err, "paymentID", id)
	}

	pc.cacheInvalidationService.Notify(events.ChannelPayments, "payment", "paid", map[string]any{
		"paymentId":  payment.ID,
		"customerId": payment.CustomerID,
	})
	return payment, nil
}

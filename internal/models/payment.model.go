package models

import "time"

type PaymentStatus string

const (
	PaymentStatusActive  PaymentStatus = "active"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusExpired PaymentStatus = "expired"
)

const PaymentLinkValidity = 30 * 24 * time.Hour

type Payment struct {
	BaseUUIDModel
	CustomerID  string    `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Amount      float64   `gorm:"type:numeric(12,2);not null"     json:"amount"`
	Description string    `gorm:"type:text;not null"              json:"description"`
	DueDate     string    `gorm:"type:varchar(10);not null"       json:"dueDate"`
	Status      string    `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentURL  string    `gorm:"type:text"                       json:"paymentUrl"`
	ExpiresAt   time.Time `gorm:"not null"                        json:"expiresAt"`
}

// PaymentView is a payment joined with the customer fields shown on the payment page.
type PaymentView struct {
	Payment
	CustomerName string `json:"customerName"`
	PolicyNumber string `json:"policyNumber"`
}

type CreatePaymentRequest struct {
	CustomerID  string     `json:"customerId"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	DueDate     string     `json:"dueDate"`
	PaymentURL  *string    `json:"paymentUrl"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

type PaymentFilter struct {
	CustomerID string
	Status     string
}

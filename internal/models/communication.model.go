package models

import "time"

type CommunicationStatus string

const (
	CommunicationStatusScheduled CommunicationStatus = "scheduled"
	CommunicationStatusSent      CommunicationStatus = "sent"
	CommunicationStatusDelivered CommunicationStatus = "delivered"
	CommunicationStatusFailed    CommunicationStatus = "failed"
)

var CommunicationLogTypes = []string{"email", "sms", "phone", "meeting"}

type Communication struct {
	BaseUUIDModel
	Type        string     `gorm:"type:varchar(20);not null;index" json:"type"`
	Subject     string     `gorm:"type:varchar(255);not null"      json:"subject"`
	Content     string     `gorm:"type:text;not null"              json:"content"`
	Status      string     `gorm:"type:varchar(20);not null;index" json:"status"`
	ScheduledAt *time.Time `gorm:"index"                           json:"scheduledFor,omitempty"`
	SentAt      *time.Time `gorm:"column:sent_at"                  json:"sentAt,omitempty"`
}

type CommunicationRecipient struct {
	BaseUUIDModel
	CommunicationID string `gorm:"type:varchar(64);not null;index" json:"communicationId"`
	CustomerID      string `gorm:"type:varchar(64);not null;index" json:"customerId"`
}

// CommunicationLog joins a communication with its recipient for listing.
type CommunicationLog struct {
	ID           string     `json:"id"`
	CustomerID   string     `json:"customerId"`
	CustomerName string     `json:"customerName"`
	Type         string     `json:"type"`
	Subject      string     `json:"subject"`
	Content      string     `json:"content"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type CreateCommunicationRequest struct {
	CustomerID   string     `json:"customerId"`
	Type         string     `json:"type"`
	Subject      string     `json:"subject"`
	Content      string     `json:"content"`
	ScheduledFor *time.Time `json:"scheduledFor"`
}

type CommunicationFilter struct {
	CustomerID string
	Type       string
	Status     string
}

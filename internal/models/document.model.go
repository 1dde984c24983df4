package models

import "time"

type DocumentType string

const (
	DocumentTypePolicy         DocumentType = "policy"
	DocumentTypeClaim          DocumentType = "claim"
	DocumentTypePayment        DocumentType = "payment"
	DocumentTypeIdentification DocumentType = "identification"
	DocumentTypeOther          DocumentType = "other"
)

var DocumentTypes = []DocumentType{
	DocumentTypePolicy,
	DocumentTypeClaim,
	DocumentTypePayment,
	DocumentTypeIdentification,
	DocumentTypeOther,
}

func (t DocumentType) Valid() bool {
	for _, documentType := range DocumentTypes {
		if t == documentType {
			return true
		}
	}
	return false
}

type Document struct {
	BaseUUIDModel
	CustomerID  string    `gorm:"type:varchar(64);not null;index" json:"customerId"`
	Name        string    `gorm:"type:varchar(255);not null"      json:"name"`
	Type        string    `gorm:"type:varchar(20);not null;index" json:"type"`
	URL         string    `gorm:"type:text;not null"              json:"url"`
	Description *string   `gorm:"type:text"                       json:"description"`
	TemplateID  *string   `gorm:"type:varchar(64)"                json:"templateId,omitempty"`
	UploadedAt  time.Time `gorm:"not null;index"                  json:"uploadedAt"`
}

type CreateDocumentRequest struct {
	CustomerID  string  `json:"customerId"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	URL         string  `json:"url"`
	Description *string `json:"description"`
}

type DocumentFilter struct {
	CustomerID string
	Type       string
}

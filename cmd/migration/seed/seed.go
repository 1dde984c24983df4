package seed

import (
	"agency/config"
	"agency/internal/logger"
	. "agency/internal/models"
	"time"

	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	agents := []Agent{
		{
			Login:       "alex",
			DisplayName: config.AgentName,
			Email:       "alex@example.com",
			Password:    "password",
			IsAdmin:     true,
		}, {
			Login:       "jordan",
			DisplayName: "Jordan Reyes",
			Email:       "jordan@example.com",
			Password:    "password",
			IsAdmin:     false,
		},
	}

	for _, agent := range agents {
		var existingAgent Agent
		if err := db.First(&existingAgent, "login = ?", agent.Login).Error; err == nil {
			log.Info("Agent already exists", "login", agent.Login)
			continue
		}
		log.Info("Seeding agent", "login", agent.Login)
		if err := db.Create(&agent).Error; err != nil {
			log.Er("failed to create agent", err, "login", agent.Login)
		}
	}

	customers := []CustomerRecord{
		{
			FirstName:      "Sarah",
			LastName:       "Johnson",
			Email:          "sarah.johnson@example.com",
			Phone:          "(555) 123-4567",
			DateOfBirth:    "1985-03-15",
			AddressStreet:  stringPtr("123 Main St"),
			AddressCity:    stringPtr("Springfield"),
			AddressState:   stringPtr("IL"),
			AddressZipCode: stringPtr("62701"),
			PolicyNumber:   stringPtr("POL-INS-2024-001"),
			PolicyType:     "Auto Insurance",
			Premium:        1500,
			Status:         string(PolicyStatusActive),
			StartDate:      stringPtr("2024-02-15"),
			EndDate:        stringPtr("2025-02-15"),
			CommPrefsEmail: true,
			CommPrefsSms:   true,
			PreferredTime:  stringPtr("morning"),
		}, {
			FirstName:      "Michael",
			LastName:       "Chen",
			Email:          "michael.chen@example.com",
			Phone:          "(555) 987-6543",
			DateOfBirth:    "1978-11-02",
			AddressStreet:  stringPtr("45 Oak Avenue"),
			AddressCity:    stringPtr("Portland"),
			AddressState:   stringPtr("OR"),
			AddressZipCode: stringPtr("97201"),
			PolicyNumber:   stringPtr("POL-INS-2024-002"),
			PolicyType:     "Home Insurance",
			Premium:        2200,
			Status:         string(PolicyStatusActive),
			StartDate:      stringPtr("2024-01-01"),
			EndDate:        stringPtr("2025-01-01"),
			CommPrefsEmail: true,
			CommPrefsPhone: true,
			PreferredTime:  stringPtr("afternoon"),
		}, {
			FirstName:      "Emily",
			LastName:       "Davis",
			Email:          "emily.davis@example.com",
			Phone:          "(555) 246-8101",
			DateOfBirth:    "1992-07-21",
			PolicyNumber:   stringPtr("POL-INS-2023-117"),
			PolicyType:     "Life Insurance",
			Premium:        900,
			Status:         string(PolicyStatusPending),
			CommPrefsEmail: true,
		},
	}

	for _, customer := range customers {
		var existingCustomer CustomerRecord
		if err := db.First(&existingCustomer, "policy_number = ?", *customer.PolicyNumber).Error; err == nil {
			log.Info("Customer already exists", "policyNumber", *customer.PolicyNumber)
			continue
		}
		log.Info("Seeding customer", "policyNumber", *customer.PolicyNumber)
		if err := db.Create(&customer).Error; err != nil {
			log.Er("failed to create customer", err, "policyNumber", *customer.PolicyNumber)
			continue
		}

		sentAt := time.Now().UTC()
		welcome := Communication{
			Type:    "email",
			Subject: "Welcome to " + config.CompanyName,
			Content: "Hi " + customer.FirstName + ", thanks for choosing us.",
			Status:  string(CommunicationStatusSent),
			SentAt:  &sentAt,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&welcome).Error; err != nil {
				return err
			}
			return tx.Create(&CommunicationRecipient{CommunicationID: welcome.ID, CustomerID: customer.ID}).Error
		})
		if err != nil {
			log.Er("failed to create communication", err, "customerID", customer.ID)
		}
	}

	return nil
}

package models

import "strings"

type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusPending   PolicyStatus = "pending"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

var PolicyStatuses = []PolicyStatus{
	PolicyStatusActive,
	PolicyStatusPending,
	PolicyStatusExpired,
	PolicyStatusCancelled,
}

func (s PolicyStatus) Valid() bool {
	for _, status := range PolicyStatuses {
		if s == status {
			return true
		}
	}
	return false
}

var PreferredTimes = []string{"morning", "afternoon", "evening"}

// CustomerRecord is the flat row stored in the customers table.
type CustomerRecord struct {
	BaseUUIDModel
	FirstName      string  `gorm:"type:varchar(100);not null"  json:"firstName"`
	LastName       string  `gorm:"type:varchar(100);not null"  json:"lastName"`
	Email          string  `gorm:"type:varchar(255);index"     json:"email"`
	Phone          string  `gorm:"type:varchar(50)"            json:"phone"`
	DateOfBirth    string  `gorm:"type:varchar(10)"            json:"dateOfBirth"`
	AddressStreet  *string `gorm:"type:varchar(255)"           json:"addressStreet"`
	AddressCity    *string `gorm:"type:varchar(100)"           json:"addressCity"`
	AddressState   *string `gorm:"type:varchar(50)"            json:"addressState"`
	AddressZipCode *string `gorm:"type:varchar(20)"            json:"addressZipCode"`
	PolicyNumber   *string `gorm:"type:varchar(64);index"      json:"policyNumber"`
	PolicyType     string  `gorm:"type:varchar(100)"           json:"policyType"`
	Premium        float64 `gorm:"type:numeric(12,2);not null" json:"premium"`
	Status         string  `gorm:"type:varchar(20);not null"   json:"status"`
	StartDate      *string `gorm:"type:varchar(10)"            json:"startDate"`
	EndDate        *string `gorm:"type:varchar(10)"            json:"endDate"`
	CommPrefsEmail bool    `gorm:"not null;default:false"      json:"commPrefsEmail"`
	CommPrefsSms   bool    `gorm:"not null;default:false"      json:"commPrefsSms"`
	CommPrefsPhone bool    `gorm:"not null;default:false"      json:"commPrefsPhone"`
	PreferredTime  *string `gorm:"type:varchar(20)"            json:"preferredTime"`
	Notes          *string `gorm:"type:text"                   json:"notes"`
}

func (CustomerRecord) TableName() string {
	return "customers"
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type InsuranceInfo struct {
	PolicyNumber *string      `json:"policyNumber,omitempty"`
	PolicyType   string       `json:"policyType"`
	Premium      float64      `json:"premium"`
	Status       PolicyStatus `json:"status"`
	StartDate    *string      `json:"startDate,omitempty"`
	EndDate      *string      `json:"endDate,omitempty"`
}

type CommunicationPreferences struct {
	Email         bool    `json:"email"`
	SMS           bool    `json:"sms"`
	Phone         bool    `json:"phone"`
	PreferredTime *string `json:"preferredTime,omitempty"`
}

// Customer is the nested shape served to clients and read by the document templating layer.
type Customer struct {
	ID                       string                   `json:"id"`
	FirstName                string                   `json:"firstName"`
	LastName                 string                   `json:"lastName"`
	Email                    string                   `json:"email"`
	Phone                    string                   `json:"phone"`
	DateOfBirth              string                   `json:"dateOfBirth"`
	Address                  Address                  `json:"address"`
	InsuranceInfo            InsuranceInfo            `json:"insuranceInfo"`
	CommunicationPreferences CommunicationPreferences `json:"communicationPreferences"`
	Notes                    *string                  `json:"notes,omitempty"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// ToCustomer reshapes the stored row, applying the fallback policy for absent values.
func (r CustomerRecord) ToCustomer() Customer {
	return Customer{
		ID:          r.ID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		DateOfBirth: r.DateOfBirth,
		Address: Address{
			Street:  TextOrFallback(r.AddressStreet),
			City:    TextOrFallback(r.AddressCity),
			State:   TextOrFallback(r.AddressState),
			ZipCode: TextOrFallback(r.AddressZipCode),
		},
		InsuranceInfo: InsuranceInfo{
			PolicyNumber: nonEmpty(r.PolicyNumber),
			PolicyType:   r.PolicyType,
			Premium:      PremiumOrZero(r.Premium),
			Status:       StatusOrDefault(r.Status),
			StartDate:    nonEmpty(r.StartDate),
			EndDate:      nonEmpty(r.EndDate),
		},
		CommunicationPreferences: CommunicationPreferences{
			Email:         r.CommPrefsEmail,
			SMS:           r.CommPrefsSms,
			Phone:         r.CommPrefsPhone,
			PreferredTime: nonEmpty(r.PreferredTime),
		},
		Notes: nonEmpty(r.Notes),
	}
}

type CustomerRequest struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	DateOfBirth   string  `json:"dateOfBirth"`
	Street        *string `json:"street"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zipCode"`
	PolicyNumber  *string `json:"policyNumber"`
	PolicyType    string  `json:"policyType"`
	Premium       any     `json:"premium"`
	Status        string  `json:"status"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	EmailOptIn    bool    `json:"emailOptIn"`
	SMSOptIn      bool    `json:"smsOptIn"`
	PhoneOptIn    bool    `json:"phoneOptIn"`
	PreferredTime *string `json:"preferredTime"`
	Notes         *string `json:"notes"`
}

// Apply copies the request onto the record. Dates are expected already normalised.
func (req CustomerRequest) Apply(record *CustomerRecord) {
	record.FirstName = strings.TrimSpace(req.FirstName)
	record.LastName = strings.TrimSpace(req.LastName)
	record.Email = strings.TrimSpace(req.Email)
	record.Phone = strings.TrimSpace(req.Phone)
	record.DateOfBirth = req.DateOfBirth
	record.AddressStreet = nonEmpty(req.Street)
	record.AddressCity = nonEmpty(req.City)
	record.AddressState = nonEmpty(req.State)
	record.AddressZipCode = nonEmpty(req.ZipCode)
	record.PolicyNumber = nonEmpty(req.PolicyNumber)
	record.PolicyType = req.PolicyType
	record.Premium = PremiumOrZero(req.Premium)
	record.Status = string(StatusOrDefault(req.Status))
	record.StartDate = nonEmpty(req.StartDate)
	record.EndDate = nonEmpty(req.EndDate)
	record.CommPrefsEmail = req.EmailOptIn
	record.CommPrefsSms = req.SMSOptIn
	record.CommPrefsPhone = req.PhoneOptIn
	record.PreferredTime = nonEmpty(req.PreferredTime)
	record.Notes = nonEmpty(req.Notes)
}

func nonEmpty(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package templates

import "slices"

type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeCheckbox FieldType = "checkbox"
)

var FieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeNumber,
	FieldTypeDate,
	FieldTypeSelect,
	FieldTypeCheckbox,
}

func (t FieldType) Valid() bool {
	return slices.Contains(FieldTypes, t)
}

type DocumentType string

const (
	DocumentTypePolicy      DocumentType = "policy"
	DocumentTypeClaim       DocumentType = "claim"
	DocumentTypeQuote       DocumentType = "quote"
	DocumentTypeRenewal     DocumentType = "renewal"
	DocumentTypeCertificate DocumentType = "certificate"
)

var DocumentTypes = []DocumentType{
	DocumentTypePolicy,
	DocumentTypeClaim,
	DocumentTypeQuote,
	DocumentTypeRenewal,
	DocumentTypeCertificate,
}

func (t DocumentType) Valid() bool {
	return slices.Contains(DocumentTypes, t)
}

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelPhone Channel = "phone"
)

var Channels = []Channel{ChannelEmail, ChannelSMS, ChannelPhone}

func (c Channel) Valid() bool {
	return slices.Contains(Channels, c)
}

type Category string

const (
	CategoryReminder Category = "reminder"
	CategoryWelcome  Category = "welcome"
	CategoryRenewal  Category = "renewal"
	CategoryClaim    Category = "claim"
	CategoryPayment  Category = "payment"
	CategoryFollowUp Category = "follow-up"
)

type DocumentField struct {
	ID               string    `json:"id"`
	Label            string    `json:"label"`
	Type             FieldType `json:"type"`
	Required         bool      `json:"required"`
	Placeholder      string    `json:"placeholder,omitempty"`
	Options          []string  `json:"options,omitempty"`
	CustomerDataPath string    `json:"customerDataPath,omitempty"`
}

type DocumentTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        DocumentType    `json:"type"`
	Description string          `json:"description"`
	Fields      []DocumentField `json:"fields"`
}

func (t DocumentTemplate) Field(id string) (DocumentField, bool) {
	for _, field := range t.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return DocumentField{}, false
}

func (t DocumentTemplate) clone() DocumentTemplate {
	fields := make([]DocumentField, len(t.Fields))
	for i, field := range t.Fields {
		field.Options = slices.Clone(field.Options)
		fields[i] = field
	}
	t.Fields = fields
	return t
}

type CommunicationTemplate struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      Channel  `json:"type"`
	Category  Category `json:"category"`
	Subject   string   `json:"subject"`
	Content   string   `json:"content"`
	Variables []string `json:"variables"`
}

func (t CommunicationTemplate) clone() CommunicationTemplate {
	t.Variables = slices.Clone(t.Variables)
	return t
}

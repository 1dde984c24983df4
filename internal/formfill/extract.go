package formfill

import (
	"agency/internal/templates"
	"regexp"
)

var (
	emailPattern  = regexp.MustCompile(`(?i)\b[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}\b`)
	phonePattern  = regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	policyPattern = regexp.MustCompile(`(?i)Policy Number:?\s*([A-Z0-9-]+)`)
)

// Extracted lists what was recognised in free text, keyed by the field ids the catalog uses.
type Extracted struct {
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	PolicyNumber  string `json:"policyNumber,omitempty"`
}

func ExtractText(text string) Extracted {
	var extracted Extracted

	extracted.CustomerEmail = emailPattern.FindString(text)
	extracted.CustomerPhone = phonePattern.FindString(text)
	if match := policyPattern.FindStringSubmatch(text); match != nil {
		extracted.PolicyNumber = match[1]
	}

	return extracted
}

// ExtractFromText starts a fresh FormState from recognised values, keeping only fields the
// template declares.
func ExtractFromText(template templates.DocumentTemplate, text string) FormState {
	extracted := ExtractText(text)
	candidates := map[string]string{
		"customerEmail": extracted.CustomerEmail,
		"customerPhone": extracted.CustomerPhone,
		"policyNumber":  extracted.PolicyNumber,
	}

	state := FormState{}
	for _, field := range template.Fields {
		if value := candidates[field.ID]; value != "" {
			state[field.ID] = typedOrText(field, value)
		}
	}
	return state
}

package formfill

import (
	"agency/internal/logger"
	"agency/internal/models"
	"agency/internal/templates"
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// FormState maps field ids to values for one document generation. Functions in this
// package never mutate a FormState passed to them.
type FormState map[string]Value

func (s FormState) Get(fieldID string) (Value, bool) {
	value, ok := s[fieldID]
	return value, ok
}

type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// AutoFill fills every path-bound field whose resolution is non-empty.
func AutoFill(template templates.DocumentTemplate, customer models.Customer) FormState {
	raw, err := json.Marshal(customer)
	if err != nil {
		logger.New("formfill").Function("AutoFill").Er("failed to encode customer", err, "customerID", customer.ID)
		return FormState{}
	}
	return AutoFillJSON(template, raw)
}

func AutoFillJSON(template templates.DocumentTemplate, raw []byte) FormState {
	state := FormState{}
	for _, field := range template.Fields {
		if field.CustomerDataPath == "" {
			continue
		}
		if resolved := ResolveJSON(raw, field.CustomerDataPath); resolved != "" {
			state[field.ID] = typedOrText(field, resolved)
		}
	}
	return state
}

// Refill switches state to a different customer. Every path-bound field loses its previous
// value and takes the new customer's resolution; fields without a path keep user entries.
func Refill(state FormState, template templates.DocumentTemplate, customer models.Customer) FormState {
	next := maps.Clone(state)
	if next == nil {
		next = FormState{}
	}

	for _, field := range template.Fields {
		if field.CustomerDataPath != "" {
			delete(next, field.ID)
		}
	}

	maps.Copy(next, AutoFill(template, customer))
	return next
}

// SetField returns a copy of state with fieldID set to value.
func SetField(state FormState, fieldID string, value Value) FormState {
	next := maps.Clone(state)
	if next == nil {
		next = FormState{}
	}
	next[fieldID] = value
	return next
}

func ClearField(state FormState, fieldID string) FormState {
	next := maps.Clone(state)
	delete(next, fieldID)
	if next == nil {
		next = FormState{}
	}
	return next
}

// Validate returns a *MissingFieldsError listing required fields without a non-empty value,
// in template order.
func Validate(template templates.DocumentTemplate, state FormState) error {
	var missing []string
	for _, field := range template.Fields {
		if !field.Required {
			continue
		}
		if value, ok := state[field.ID]; !ok || value.IsEmpty() {
			missing = append(missing, field.ID)
		}
	}

	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// ParseState builds a FormState from decoded request values. Blank and null entries are
// left unset; ids the template does not declare are rejected.
func ParseState(template templates.DocumentTemplate, raw map[string]any) (FormState, error) {
	state := FormState{}
	for fieldID, rawValue := range raw {
		field, ok := template.Field(fieldID)
		if !ok {
			return nil, &InvalidValueError{FieldID: fieldID, Reason: "unknown field"}
		}

		input, ok := RawString(rawValue)
		if !ok || strings.TrimSpace(input) == "" {
			continue
		}

		value, err := ParseInput(field, input)
		if err != nil {
			return nil, err
		}
		state[fieldID] = value
	}
	return state, nil
}

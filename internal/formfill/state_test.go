package formfill

import (
	"agency/internal/models"
	"agency/internal/templates"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func autoPolicy(t *testing.T) templates.DocumentTemplate {
	t.Helper()
	registry, err := templates.New()
	require.NoError(t, err)
	template, found := registry.FindTemplate("auto-policy")
	require.True(t, found)
	return template
}

func TestAutoFill_EndToEnd(t *testing.T) {
	template := autoPolicy(t)

	state := AutoFillJSON(template, []byte(`{
		"firstName": "Ana",
		"lastName": "Cruz",
		"insuranceInfo": {"policyNumber": "POL-1"}
	}`))

	assert.Equal(t, FormState{
		"policyNumber": TextValue("POL-1"),
		"customerName": TextValue("Ana Cruz"),
	}, state)

	state = SetField(state, "customerEmail", TextValue("ana@example.com"))
	state = SetField(state, "customerPhone", TextValue("555-123-4567"))
	state = SetField(state, "customerAddress", TextValue("1 Main St"))
	state = SetField(state, "premium", NumberValue(1200))
	state = SetField(state, "startDate", DateValue("2024-01-01"))
	state = SetField(state, "endDate", DateValue("2025-01-01"))

	err := Validate(template, state)
	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"vehicleYear", "vehicleMake", "vehicleModel", "coverage"}, missing.Fields)
}

func TestAutoFill_TypesValues(t *testing.T) {
	template := autoPolicy(t)
	customer := models.Customer{
		FirstName: "Ana",
		LastName:  "Cruz",
		Email:     "ana@example.com",
		InsuranceInfo: models.InsuranceInfo{
			PolicyNumber: stringPtr("POL-1"),
			Premium:      1200.5,
			StartDate:    stringPtr("01/15/2024"),
			EndDate:      stringPtr("someday"),
		},
	}

	state := AutoFill(template, customer)

	assert.Equal(t, NumberValue(1200.5), state["premium"])
	assert.Equal(t, DateValue("2024-01-15"), state["startDate"])
	assert.Equal(t, TextValue("someday"), state["endDate"])
	assert.Equal(t, TextValue("ana@example.com"), state["customerEmail"])
	assert.NotContains(t, state, "customerPhone")
	assert.NotContains(t, state, "customerAddress")
	assert.NotContains(t, state, "vehicleYear")
}

func TestRefill_ReplacesPreviousCustomer(t *testing.T) {
	template := autoPolicy(t)
	first := models.Customer{
		FirstName: "Ana",
		LastName:  "Cruz",
		Phone:     "555-000-1111",
		InsuranceInfo: models.InsuranceInfo{
			PolicyNumber: stringPtr("POL-1"),
			StartDate:    stringPtr("2024-01-01"),
		},
	}
	second := models.Customer{
		FirstName: "Ben",
		LastName:  "Ortiz",
		InsuranceInfo: models.InsuranceInfo{
			PolicyNumber: stringPtr("POL-2"),
		},
	}

	state := AutoFill(template, first)
	state = SetField(state, "vehicleMake", TextValue("Toyota"))
	state = Refill(state, template, second)

	assert.Equal(t, AutoFill(template, second)["customerName"], state["customerName"])
	assert.Equal(t, TextValue("Ben Ortiz"), state["customerName"])
	assert.Equal(t, TextValue("POL-2"), state["policyNumber"])
	assert.NotContains(t, state, "customerPhone")
	assert.NotContains(t, state, "startDate")
	assert.Equal(t, TextValue("Toyota"), state["vehicleMake"])
}

func TestRefill_DoesNotMutateInput(t *testing.T) {
	template := autoPolicy(t)
	state := FormState{"policyNumber": TextValue("OLD")}

	Refill(state, template, models.Customer{FirstName: "Ben"})

	assert.Equal(t, FormState{"policyNumber": TextValue("OLD")}, state)
}

func TestSetField(t *testing.T) {
	original := FormState{"a": TextValue("1")}

	updated := SetField(original, "a", TextValue("2"))
	updated = SetField(updated, "a", NumberValue(3))

	assert.Equal(t, TextValue("1"), original["a"])
	assert.Equal(t, NumberValue(3), updated["a"])
	assert.Equal(t, FormState{"b": CheckboxValue(true)}, SetField(nil, "b", CheckboxValue(true)))
}

func TestClearField(t *testing.T) {
	original := FormState{"a": TextValue("1"), "b": TextValue("2")}

	cleared := ClearField(original, "a")

	assert.Equal(t, FormState{"b": TextValue("2")}, cleared)
	assert.Len(t, original, 2)
	assert.Equal(t, FormState{}, ClearField(nil, "a"))
}

func TestValidate(t *testing.T) {
	template := templates.DocumentTemplate{
		ID: "t",
		Fields: []templates.DocumentField{
			{ID: "a", Type: templates.FieldTypeText, Required: true},
			{ID: "b", Type: templates.FieldTypeText},
			{ID: "c", Type: templates.FieldTypeText, Required: true},
			{ID: "d", Type: templates.FieldTypeNumber, Required: true},
			{ID: "e", Type: templates.FieldTypeCheckbox, Required: true},
		},
	}

	tests := []struct {
		name     string
		state    FormState
		expected []string
	}{
		{
			name:     "ordered missing fields",
			state:    FormState{"b": TextValue("x"), "d": NumberValue(1), "e": CheckboxValue(true)},
			expected: []string{"a", "c"},
		},
		{
			name:     "blank text is missing",
			state:    FormState{"a": TextValue("  "), "c": TextValue("x"), "d": NumberValue(0), "e": CheckboxValue(true)},
			expected: []string{"a"},
		},
		{
			name:     "unchecked checkbox is missing",
			state:    FormState{"a": TextValue("x"), "c": TextValue("x"), "d": NumberValue(0), "e": CheckboxValue(false)},
			expected: []string{"e"},
		},
		{
			name:  "complete",
			state: FormState{"a": TextValue("x"), "c": TextValue("y"), "d": NumberValue(0), "e": CheckboxValue(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(template, tt.state)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}

			var missing *MissingFieldsError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.expected, missing.Fields)
		})
	}
}

func TestParseState(t *testing.T) {
	template := autoPolicy(t)

	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{
		"vehicleYear": 2024,
		"vehicleMake": "Toyota",
		"coverage": "full coverage",
		"startDate": "01/15/2024",
		"endDate": "",
		"customerPhone": null
	}`), &raw))

	state, err := ParseState(template, raw)
	require.NoError(t, err)

	assert.Equal(t, FormState{
		"vehicleYear": NumberValue(2024),
		"vehicleMake": TextValue("Toyota"),
		"coverage":    SelectValue("Full Coverage"),
		"startDate":   DateValue("2024-01-15"),
	}, state)
}

func TestParseState_Rejects(t *testing.T) {
	template := autoPolicy(t)

	tests := []struct {
		name    string
		raw     map[string]any
		fieldID string
	}{
		{"unknown field", map[string]any{"boat": "yes"}, "boat"},
		{"bad number", map[string]any{"vehicleYear": "soon"}, "vehicleYear"},
		{"bad option", map[string]any{"coverage": "Platinum"}, "coverage"},
		{"bad date", map[string]any{"startDate": "2024-13-01"}, "startDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseState(template, tt.raw)
			var invalid *InvalidValueError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.fieldID, invalid.FieldID)
		})
	}
}

func TestFormState_MarshalsScalars(t *testing.T) {
	state := FormState{
		"name":    TextValue("Ana"),
		"premium": NumberValue(0),
		"agreed":  CheckboxValue(true),
	}

	encoded, err := json.Marshal(state)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ana","premium":0,"agreed":true}`, string(encoded))
}

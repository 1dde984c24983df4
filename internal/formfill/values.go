package formfill

import (
	"agency/internal/templates"
	"agency/internal/utils"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Value is one field entry. Kind selects which of Text, Number or Checked is meaningful:
// text, date and select values use Text, number uses Number, checkbox uses Checked.
type Value struct {
	Kind    templates.FieldType
	Text    string
	Number  float64
	Checked bool
}

func TextValue(text string) Value {
	return Value{Kind: templates.FieldTypeText, Text: text}
}

func NumberValue(number float64) Value {
	return Value{Kind: templates.FieldTypeNumber, Number: number}
}

// DateValue holds an already normalised YYYY-MM-DD date.
func DateValue(date string) Value {
	return Value{Kind: templates.FieldTypeDate, Text: date}
}

func SelectValue(option string) Value {
	return Value{Kind: templates.FieldTypeSelect, Text: option}
}

func CheckboxValue(checked bool) Value {
	return Value{Kind: templates.FieldTypeCheckbox, Checked: checked}
}

func (v Value) String() string {
	switch v.Kind {
	case templates.FieldTypeNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case templates.FieldTypeCheckbox:
		return strconv.FormatBool(v.Checked)
	default:
		return v.Text
	}
}

// IsEmpty reports whether the value fails to satisfy a required field. Numbers are always
// present, including zero; an unchecked checkbox is empty.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case templates.FieldTypeNumber:
		return false
	case templates.FieldTypeCheckbox:
		return !v.Checked
	default:
		return strings.TrimSpace(v.Text) == ""
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case templates.FieldTypeNumber:
		return json.Marshal(v.Number)
	case templates.FieldTypeCheckbox:
		return json.Marshal(v.Checked)
	default:
		return json.Marshal(v.Text)
	}
}

type InvalidValueError struct {
	FieldID string
	Reason  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value for field %s: %s", e.FieldID, e.Reason)
}

// ParseInput turns raw user input into a value of the field's kind.
func ParseInput(field templates.DocumentField, raw string) (Value, error) {
	trimmed := strings.TrimSpace(raw)

	switch field.Type {
	case templates.FieldTypeText:
		return TextValue(raw), nil

	case templates.FieldTypeNumber:
		number, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return Value{}, &InvalidValueError{FieldID: field.ID, Reason: "must be a number"}
		}
		return NumberValue(number), nil

	case templates.FieldTypeDate:
		date, ok := utils.NormalizeDate(trimmed)
		if !ok {
			return Value{}, &InvalidValueError{FieldID: field.ID, Reason: "must be a date"}
		}
		return DateValue(date), nil

	case templates.FieldTypeSelect:
		for _, option := range field.Options {
			if strings.EqualFold(option, trimmed) {
				return SelectValue(option), nil
			}
		}
		return Value{}, &InvalidValueError{
			FieldID: field.ID,
			Reason:  "must be one of " + strings.Join(field.Options, ", "),
		}

	case templates.FieldTypeCheckbox:
		checked, ok := parseCheckbox(trimmed)
		if !ok {
			return Value{}, &InvalidValueError{FieldID: field.ID, Reason: "must be true or false"}
		}
		return CheckboxValue(checked), nil

	default:
		return Value{}, &InvalidValueError{FieldID: field.ID, Reason: "unknown field type " + string(field.Type)}
	}
}

func parseCheckbox(raw string) (bool, bool) {
	switch strings.ToLower(raw) {
	case "on", "yes", "y", "checked":
		return true, true
	case "off", "no", "n", "":
		return false, true
	}
	checked, err := strconv.ParseBool(raw)
	return checked, err == nil
}

// typedOrText types a resolved customer value, keeping it as text when it does not fit the
// field's kind so nothing resolved is lost.
func typedOrText(field templates.DocumentField, resolved string) Value {
	if field.Type == templates.FieldTypeText {
		return TextValue(resolved)
	}

	value, err := ParseInput(field, resolved)
	if err != nil {
		return TextValue(resolved)
	}
	return value
}

// RawString converts a decoded JSON scalar to the raw input form ParseInput accepts.
func RawString(raw any) (string, bool) {
	switch value := raw.(type) {
	case nil:
		return "", false
	case string:
		return value, true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	case int:
		return strconv.Itoa(value), true
	case int64:
		return strconv.FormatInt(value, 10), true
	case bool:
		return strconv.FormatBool(value), true
	case json.Number:
		return value.String(), true
	default:
		return "", false
	}
}

package renderer

import (
	"agency/internal/formfill"
	"agency/internal/models"
	"agency/internal/templates"
	"context"
	"regexp"
	"strings"
)

type RenderField struct {
	Label string
	Value string
}

type RenderRequest struct {
	Title       string
	Description string
	Fields      []RenderField
}

// Renderer turns a validated form into a downloadable document.
type Renderer interface {
	Render(ctx context.Context, request RenderRequest) ([]byte, error)
	ContentType() string
	Extension() string
}

var whitespace = regexp.MustCompile(`\s+`)

// BuildRequest lists every template field in order. Unset or blank values render as "N/A".
func BuildRequest(template templates.DocumentTemplate, state formfill.FormState) RenderRequest {
	request := RenderRequest{
		Title:       template.Name,
		Description: template.Description,
		Fields:      make([]RenderField, 0, len(template.Fields)),
	}

	for _, field := range template.Fields {
		request.Fields = append(request.Fields, RenderField{
			Label: field.Label,
			Value: displayValue(state, field.ID),
		})
	}

	return request
}

func displayValue(state formfill.FormState, fieldID string) string {
	value, ok := state.Get(fieldID)
	if !ok {
		return models.FallbackText
	}

	switch value.Kind {
	case templates.FieldTypeCheckbox:
		if value.Checked {
			return "Yes"
		}
		return "No"
	case templates.FieldTypeNumber:
		return value.String()
	default:
		if strings.TrimSpace(value.Text) == "" {
			return models.FallbackText
		}
		return value.Text
	}
}

// Filename derives the download name from the template name, e.g. "auto_insurance_policy.pdf".
func Filename(template templates.DocumentTemplate, extension string) string {
	name := strings.ToLower(whitespace.ReplaceAllString(template.Name, "_"))
	if extension == "" {
		return name
	}
	return name + "." + strings.TrimPrefix(extension, ".")
}

package templates

import (
	"agency/internal/logger"
	"slices"
	"strings"
)

// Registry is the read-only template catalog. Build it once with New and pass it to
// whatever needs template lookups.
type Registry struct {
	documents      []DocumentTemplate
	communications []CommunicationTemplate
	log            logger.Logger
}

type TemplateFilter struct {
	Type       DocumentType
	SearchText string
}

type CommunicationFilter struct {
	Type       Channel
	Category   Category
	SearchText string
}

func New() (*Registry, error) {
	return NewRegistry(documentCatalog(), communicationCatalog())
}

func NewRegistry(
	documents []DocumentTemplate,
	communications []CommunicationTemplate,
) (*Registry, error) {
	log := logger.New("templates").Function("NewRegistry")

	r := &Registry{log: log}

	seen := map[string]bool{}
	for _, template := range documents {
		if err := validateDocumentTemplate(template, log); err != nil {
			return nil, err
		}
		if seen[template.ID] {
			return nil, log.Error("duplicate document template id", "templateID", template.ID)
		}
		seen[template.ID] = true
		r.documents = append(r.documents, template.clone())
	}

	seen = map[string]bool{}
	for _, template := range communications {
		if err := validateCommunicationTemplate(template, log); err != nil {
			return nil, err
		}
		if seen[template.ID] {
			return nil, log.Error("duplicate communication template id", "templateID", template.ID)
		}
		seen[template.ID] = true
		r.communications = append(r.communications, template.clone())
	}

	log.Debug("template registry ready",
		"documentTemplates", len(r.documents),
		"communicationTemplates", len(r.communications))

	return r, nil
}

func validateDocumentTemplate(template DocumentTemplate, log logger.Logger) error {
	if template.ID == "" || template.Name == "" {
		return log.Error("document template requires id and name", "templateID", template.ID)
	}

	if !template.Type.Valid() {
		return log.Error("invalid document template type", "templateID", template.ID, "type", template.Type)
	}

	fieldIDs := map[string]bool{}
	for _, field := range template.Fields {
		if field.ID == "" {
			return log.Error("document field requires id", "templateID", template.ID)
		}
		if fieldIDs[field.ID] {
			return log.Error("duplicate field id", "templateID", template.ID, "fieldID", field.ID)
		}
		fieldIDs[field.ID] = true

		if !field.Type.Valid() {
			return log.Error("invalid field type", "templateID", template.ID, "fieldID", field.ID, "type", field.Type)
		}
		if field.Type == FieldTypeSelect && len(field.Options) == 0 {
			return log.Error("select field requires options", "templateID", template.ID, "fieldID", field.ID)
		}
	}

	return nil
}

// validateCommunicationTemplate requires the declared variables to match the tokens
// used in subject and content exactly.
func validateCommunicationTemplate(template CommunicationTemplate, log logger.Logger) error {
	if template.ID == "" || template.Name == "" {
		return log.Error("communication template requires id and name", "templateID", template.ID)
	}

	if !template.Type.Valid() {
		return log.Error("invalid communication channel", "templateID", template.ID, "type", template.Type)
	}

	used := Tokens(template.Subject + "\n" + template.Content)
	for _, token := range used {
		if !slices.Contains(template.Variables, token) {
			return log.Error("undeclared template variable", "templateID", template.ID, "variable", token)
		}
	}

	for _, variable := range template.Variables {
		if !slices.Contains(used, variable) {
			return log.Error("unused template variable", "templateID", template.ID, "variable", variable)
		}
	}

	return nil
}

// FindTemplate reports false when id is unknown; callers treat that as a missing template.
func (r *Registry) FindTemplate(id string) (DocumentTemplate, bool) {
	for _, template := range r.documents {
		if template.ID == id {
			return template.clone(), true
		}
	}
	return DocumentTemplate{}, false
}

// ListTemplates returns matching templates in declaration order.
func (r *Registry) ListTemplates(filter TemplateFilter) []DocumentTemplate {
	search := strings.ToLower(strings.TrimSpace(filter.SearchText))

	templates := []DocumentTemplate{}
	for _, template := range r.documents {
		if filter.Type != "" && template.Type != filter.Type {
			continue
		}
		if search != "" && !matches(search, template.Name, template.Description) {
			continue
		}
		templates = append(templates, template.clone())
	}

	return templates
}

func (r *Registry) FindCommunicationTemplate(id string) (CommunicationTemplate, bool) {
	for _, template := range r.communications {
		if template.ID == id {
			return template.clone(), true
		}
	}
	return CommunicationTemplate{}, false
}

func (r *Registry) ListCommunicationTemplates(filter CommunicationFilter) []CommunicationTemplate {
	search := strings.ToLower(strings.TrimSpace(filter.SearchText))

	templates := []CommunicationTemplate{}
	for _, template := range r.communications {
		if filter.Type != "" && template.Type != filter.Type {
			continue
		}
		if filter.Category != "" && template.Category != filter.Category {
			continue
		}
		if search != "" && !matches(search, template.Name, template.Subject) {
			continue
		}
		templates = append(templates, template.clone())
	}

	return templates
}

func matches(search string, values ...string) bool {
	for _, value := range values {
		if strings.Contains(strings.ToLower(value), search) {
			return true
		}
	}
	return false
}

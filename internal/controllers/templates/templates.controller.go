package templateController

import (
	"agency/config"
	"agency/internal/events"
	"agency/internal/formfill"
	"agency/internal/logger"
	"agency/internal/metrics"
	. "agency/internal/models"
	"agency/internal/renderer"
	"agency/internal/repositories"
	"agency/internal/services"
	"agency/internal/templates"
	"context"
	"strconv"
	"strings"
	"time"
)

// DocumentStore keeps a copy of generated documents. It is optional.
type DocumentStore interface {
	StoreGenerated(ctx context.Context, filename, contentType string, content []byte) (string, error)
}

type TemplateController struct {
	registry                 *templates.Registry
	customerRepo             repositories.CustomerRepository
	documentRepo             repositories.DocumentRepository
	cacheInvalidationService *services.CacheInvalidationService
	store                    DocumentStore
	companyName              string
	agentName                string
	log                      logger.Logger
}

func New(
	registry *templates.Registry,
	customerRepo repositories.CustomerRepository,
	documentRepo repositories.DocumentRepository,
	cacheInvalidationService *services.CacheInvalidationService,
	store DocumentStore,
	cfg config.Config,
) *TemplateController {
	return &TemplateController{
		registry:                 registry,
		customerRepo:             customerRepo,
		documentRepo:             documentRepo,
		cacheInvalidationService: cacheInvalidationService,
		store:                    store,
		companyName:              cfg.CompanyName,
		agentName:                cfg.AgentName,
		log:                      logger.New("TemplateController"),
	}
}

type GenerateRequest struct {
	CustomerID string         `json:"customerId"`
	Values     map[string]any `json:"values"`
	Format     string         `json:"format"`
}

type GeneratedDocument struct {
	Filename    string
	ContentType string
	Content     []byte
	Document    *Document
}

type ExtractResult struct {
	Extracted formfill.Extracted `json:"extracted"`
	FormState formfill.FormState `json:"formState"`
}

func (tc *TemplateController) ListDocumentTemplates(filter templates.TemplateFilter) []templates.DocumentTemplate {
	return tc.registry.ListTemplates(filter)
}

func (tc *TemplateController) GetDocumentTemplate(id string) (templates.DocumentTemplate, error) {
	template, found := tc.registry.FindTemplate(id)
	if !found {
		return templates.DocumentTemplate{}, tc.log.Function("GetDocumentTemplate").
			Err("template not found", repositories.ErrNotFound, "templateID", id)
	}
	return template, nil
}

// AutoFill pre-populates a form for customerID. When previous holds the form the agent was
// editing for another customer, unbound entries are kept and customer data is replaced.
func (tc *TemplateController) AutoFill(
	ctx context.Context,
	templateID, customerID string,
	previous map[string]any,
) (formfill.FormState, error) {
	log := tc.log.Function("AutoFill")

	template, err := tc.GetDocumentTemplate(templateID)
	if err != nil {
		return nil, err
	}

	customer, err := tc.getCustomer(ctx, customerID)
	if err != nil {
		return nil, log.Err("failed to get customer", err, "customerID", customerID)
	}

	if previous == nil {
		return formfill.AutoFill(template, customer), nil
	}

	state, err := formfill.ParseState(template, previous)
	if err != nil {
		return nil, err
	}
	return formfill.Refill(state, template, customer), nil
}

// ValidateForm parses submitted values and reports required fields that are still empty.
func (tc *TemplateController) ValidateForm(templateID string, values map[string]any) (formfill.FormState, error) {
	template, err := tc.GetDocumentTemplate(templateID)
	if err != nil {
		return nil, err
	}

	state, err := formfill.ParseState(template, values)
	if err != nil {
		return nil, err
	}

	if err := formfill.Validate(template, state); err != nil {
		metrics.DocumentValidationFailuresTotal.WithLabelValues(template.ID).Inc()
		return state, err
	}
	return state, nil
}

// Generate runs the full document flow: auto-fill from the customer, apply the agent's
// edits, validate, render and record the document against the customer.
func (tc *TemplateController) Generate(
	ctx context.Context,
	templateID string,
	request GenerateRequest,
) (GeneratedDocument, error) {
	log := tc.log.Function("Generate")

	template, err := tc.GetDocumentTemplate(templateID)
	if err != nil {
		return GeneratedDocument{}, err
	}

	output, ok := renderer.ForFormat(request.Format)
	if !ok {
		return GeneratedDocument{}, NewValidationError("format", "must be pdf or html")
	}

	edits, err := formfill.ParseState(template, request.Values)
	if err != nil {
		return GeneratedDocument{}, err
	}

	state := formfill.FormState{}
	if request.CustomerID != "" {
		customer, err := tc.getCustomer(ctx, request.CustomerID)
		if err != nil {
			return GeneratedDocument{}, log.Err("failed to get customer", err, "customerID", request.CustomerID)
		}
		state = formfill.AutoFill(template, customer)
	}
	for fieldID, value := range edits {
		state = formfill.SetField(state, fieldID, value)
	}

	if err := formfill.Validate(template, state); err != nil {
		metrics.DocumentValidationFailuresTotal.WithLabelValues(template.ID).Inc()
		return GeneratedDocument{}, err
	}

	content, err := output.Render(ctx, renderer.BuildRequest(template, state))
	if err != nil {
		return GeneratedDocument{}, log.Err("failed to render document", err, "templateID", template.ID)
	}

	generated := GeneratedDocument{
		Filename:    renderer.Filename(template, output.Extension()),
		ContentType: output.ContentType(),
		Content:     content,
	}
	metrics.DocumentsGeneratedTotal.WithLabelValues(template.ID, output.Extension()).Inc()

	if request.CustomerID == "" {
		return generated, nil
	}

	document, err := tc.recordDocument(ctx, template, request.CustomerID, generated)
	if err != nil {
		return GeneratedDocument{}, err
	}
	generated.Document = document

	return generated, nil
}

func (tc *TemplateController) recordDocument(
	ctx context.Context,
	template templates.DocumentTemplate,
	customerID string,
	generated GeneratedDocument,
) (*Document, error) {
	log := tc.log.Function("recordDocument")

	url := generated.Filename
	if tc.store != nil {
		key, err := tc.store.StoreGenerated(ctx, generated.Filename, generated.ContentType, generated.Content)
		if err != nil {
			return nil, log.Err("failed to store generated document", err, "templateID", template.ID)
		}
		url = key
	}

	templateID := template.ID
	description := template.Name
	document := &Document{
		CustomerID:  customerID,
		Name:        generated.Filename,
		Type:        string(documentType(template.Type)),
		URL:         url,
		Description: &description,
		TemplateID:  &templateID,
	}
	if err := tc.documentRepo.Create(ctx, document); err != nil {
		return nil, log.Err("failed to record generated document", err, "templateID", template.ID)
	}

	tc.cacheInvalidationService.Notify(events.ChannelDocuments, "document", "generated", map[string]any{
		"documentId": document.ID,
		"customerId": customerID,
		"templateId": template.ID,
	})

	return document, nil
}

// documentType maps a template category onto the stored document categories.
func documentType(templateType templates.DocumentType) DocumentType {
	switch templateType {
	case templates.DocumentTypePolicy, templates.DocumentTypeRenewal, templates.DocumentTypeCertificate:
		return DocumentTypePolicy
	case templates.DocumentTypeClaim:
		return DocumentTypeClaim
	default:
		return DocumentTypeOther
	}
}

// ExtractFields recognises customer details in document text and starts a fresh form from them.
func (tc *TemplateController) ExtractFields(templateID, text string) (ExtractResult, error) {
	if strings.TrimSpace(text) == "" {
		return ExtractResult{}, NewValidationError("text", "is required")
	}

	result := ExtractResult{Extracted: formfill.ExtractText(text), FormState: formfill.FormState{}}
	if templateID == "" {
		return result, nil
	}

	template, err := tc.GetDocumentTemplate(templateID)
	if err != nil {
		return ExtractResult{}, err
	}
	result.FormState = formfill.ExtractFromText(template, text)
	return result, nil
}

func (tc *TemplateController) ListCommunicationTemplates(filter templates.CommunicationFilter) []templates.CommunicationTemplate {
	return tc.registry.ListCommunicationTemplates(filter)
}

// RenderCommunication fills a message template. Values derived from the customer and the
// agency settings are used unless values overrides them.
func (tc *TemplateController) RenderCommunication(
	ctx context.Context,
	templateID, customerID string,
	values map[string]string,
) (templates.RenderedMessage, error) {
	log := tc.log.Function("RenderCommunication")

	template, found := tc.registry.FindCommunicationTemplate(templateID)
	if !found {
		return templates.RenderedMessage{}, log.Err("communication template not found", repositories.ErrNotFound, "templateID", templateID)
	}

	merged := map[string]string{
		"companyName": tc.companyName,
		"agentName":   tc.agentName,
	}
	if customerID != "" {
		customer, err := tc.getCustomer(ctx, customerID)
		if err != nil {
			return templates.RenderedMessage{}, log.Err("failed to get customer", err, "customerID", customerID)
		}
		for key, value := range CustomerVariables(customer) {
			merged[key] = value
		}
	}
	for key, value := range values {
		if value != "" {
			merged[key] = value
		}
	}

	return templates.Render(template, merged), nil
}

// CustomerVariables lists the substitution values a customer record can supply.
func CustomerVariables(customer Customer) map[string]string {
	info := customer.InsuranceInfo
	values := map[string]string{
		"customerName": customer.FullName(),
		"firstName":    customer.FirstName,
		"lastName":     customer.LastName,
		"email":        customer.Email,
		"policyType":   info.PolicyType,
		"premium":      strconv.FormatFloat(info.Premium, 'f', 2, 64),
	}
	if info.PolicyNumber != nil {
		values["policyNumber"] = *info.PolicyNumber
	}
	if info.StartDate != nil {
		values["startDate"] = *info.StartDate
	}
	if info.EndDate != nil {
		values["expirationDate"] = *info.EndDate
		if end, err := time.Parse(time.DateOnly, *info.EndDate); err == nil {
			values["renewalDeadline"] = end.AddDate(0, 0, -14).Format(time.DateOnly)
		}
	}
	return values
}

func (tc *TemplateController) getCustomer(ctx context.Context, customerID string) (Customer, error) {
	record, err := tc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return Customer{}, err
	}
	return record.ToCustomer(), nil
}

package utils

import (
	"agency/internal/models"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var CustomerCSVHeaders = []string{
	"first_name",
	"last_name",
	"email",
	"phone",
	"date_of_birth",
	"street",
	"city",
	"state",
	"zip_code",
	"policy_number",
	"policy_type",
	"premium",
	"status",
	"start_date",
	"end_date",
	"email_opt_in",
	"sms_opt_in",
	"phone_opt_in",
	"preferred_time",
	"notes",
}

// WriteCustomersCSV writes one header row followed by one row per customer.
func WriteCustomersCSV(w io.Writer, customers []models.Customer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CustomerCSVHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, customer := range customers {
		if err := writer.Write(customerRow(customer)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func customerRow(customer models.Customer) []string {
	info := customer.InsuranceInfo
	prefs := customer.CommunicationPreferences

	return []string{
		customer.FirstName,
		customer.LastName,
		customer.Email,
		customer.Phone,
		customer.DateOfBirth,
		customer.Address.Street,
		customer.Address.City,
		customer.Address.State,
		customer.Address.ZipCode,
		deref(info.PolicyNumber),
		info.PolicyType,
		strconv.FormatFloat(info.Premium, 'f', 2, 64),
		string(info.Status),
		deref(info.StartDate),
		deref(info.EndDate),
		strconv.FormatBool(prefs.Email),
		strconv.FormatBool(prefs.SMS),
		strconv.FormatBool(prefs.Phone),
		deref(prefs.PreferredTime),
		deref(customer.Notes),
	}
}

// CSVRowError reports a data row (1-based, header excluded) that could not be imported.
type CSVRowError struct {
	Row    int
	Reason string
}

func (e *CSVRowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ReadCustomersCSV parses an import file into create requests. Columns are matched by
// header name, so order does not matter and unknown columns are ignored. Dates in any
// supported spelling are normalised; "N/A" address pieces are treated as absent.
func ReadCustomersCSV(r io.Reader) ([]models.CustomerRequest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read headers: %w", err)
	}

	columns := make(map[string]int, len(headers))
	for i, header := range headers {
		columns[strings.ToLower(strings.TrimSpace(header))] = i
	}
	for _, required := range []string{"first_name", "last_name"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	requests := []models.CustomerRequest{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", row, err)
		}

		request, err := customerRequest(record, columns, row)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	return requests, nil
}

func customerRequest(record []string, columns map[string]int, row int) (models.CustomerRequest, error) {
	get := func(name string) string {
		if i, ok := columns[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}
	optional := func(name string) *string {
		value := get(name)
		if value == "" || value == models.FallbackText {
			return nil
		}
		return &value
	}
	date := func(name string) (string, error) {
		value := get(name)
		if value == "" {
			return "", nil
		}
		normalized, ok := NormalizeDate(value)
		if !ok {
			return "", &CSVRowError{Row: row, Reason: fmt.Sprintf("%s %q is not a recognised date", name, value)}
		}
		return normalized, nil
	}

	request := models.CustomerRequest{
		FirstName:     get("first_name"),
		LastName:      get("last_name"),
		Email:         get("email"),
		Phone:         get("phone"),
		Street:        optional("street"),
		City:          optional("city"),
		State:         optional("state"),
		ZipCode:       optional("zip_code"),
		PolicyNumber:  optional("policy_number"),
		PolicyType:    get("policy_type"),
		Premium:       get("premium"),
		Status:        get("status"),
		EmailOptIn:    parseFlag(get("email_opt_in")),
		SMSOptIn:      parseFlag(get("sms_opt_in")),
		PhoneOptIn:    parseFlag(get("phone_opt_in")),
		PreferredTime: optional("preferred_time"),
		Notes:         optional("notes"),
	}
	if request.FirstName == "" && request.LastName == "" {
		return models.CustomerRequest{}, &CSVRowError{Row: row, Reason: "first_name or last_name is required"}
	}

	var err error
	if request.DateOfBirth, err = date("date_of_birth"); err != nil {
		return models.CustomerRequest{}, err
	}
	for name, target := range map[string]**string{"start_date": &request.StartDate, "end_date": &request.EndDate} {
		value, err := date(name)
		if err != nil {
			return models.CustomerRequest{}, err
		}
		if value != "" {
			*target = &value
		}
	}

	return request, nil
}

func parseFlag(value string) bool {
	switch strings.ToLower(value) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

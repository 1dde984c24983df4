package utils

import (
	"agency/internal/models"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

func TestWriteCustomersCSV(t *testing.T) {
	customers := []models.Customer{
		{
			FirstName:   "Ana",
			LastName:    "Cruz",
			Email:       "ana@example.com",
			Phone:       "555-123-4567",
			DateOfBirth: "1990-04-12",
			Address:     models.Address{Street: "12 Elm St, Apt 4", City: "Austin", State: "TX", ZipCode: "78701"},
			InsuranceInfo: models.InsuranceInfo{
				PolicyNumber: stringPtr("POL-1"),
				PolicyType:   "Auto",
				Premium:      1200.5,
				Status:       models.PolicyStatusActive,
			},
			CommunicationPreferences: models.CommunicationPreferences{Email: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCustomersCSV(&buf, customers))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(CustomerCSVHeaders, ","), lines[0])
	assert.Equal(t,
		`Ana,Cruz,ana@example.com,555-123-4567,1990-04-12,"12 Elm St, Apt 4",Austin,TX,78701,POL-1,Auto,1200.50,active,,,true,false,false,,`,
		lines[1])
}

func TestWriteCustomersCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCustomersCSV(&buf, nil))
	assert.Equal(t, strings.Join(CustomerCSVHeaders, ",")+"\n", buf.String())
}

func TestReadCustomersCSV(t *testing.T) {
	input := `last_name,first_name,date_of_birth,city,premium,sms_opt_in,start_date,extra
Cruz,Ana,04/12/1990,N/A,1200,yes,2024-01-01,ignored
Lee,Sam,,Denver,abc,no,,
`

	requests, err := ReadCustomersCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, "Ana", requests[0].FirstName)
	assert.Equal(t, "Cruz", requests[0].LastName)
	assert.Equal(t, "1990-04-12", requests[0].DateOfBirth)
	assert.Nil(t, requests[0].City)
	assert.Equal(t, "1200", requests[0].Premium)
	assert.True(t, requests[0].SMSOptIn)
	require.NotNil(t, requests[0].StartDate)
	assert.Equal(t, "2024-01-01", *requests[0].StartDate)
	assert.Nil(t, requests[0].EndDate)

	assert.Equal(t, "", requests[1].DateOfBirth)
	assert.Equal(t, "Denver", *requests[1].City)
	assert.False(t, requests[1].SMSOptIn)
}

func TestReadCustomersCSV_RoundTripsExport(t *testing.T) {
	customer := models.Customer{
		FirstName:     "Ana",
		LastName:      "Cruz",
		Address:       models.Address{Street: "N/A", City: "N/A", State: "N/A", ZipCode: "N/A"},
		InsuranceInfo: models.InsuranceInfo{PolicyType: "Home", Premium: 900, Status: models.PolicyStatusPending},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCustomersCSV(&buf, []models.Customer{customer}))

	requests, err := ReadCustomersCSV(&buf)
	require.NoError(t, err)
	require.Len(t, requests, 1)

	var record models.CustomerRecord
	requests[0].Apply(&record)
	assert.Equal(t, customer.Address, record.ToCustomer().Address)
	assert.Equal(t, 900.0, record.Premium)
	assert.Equal(t, "pending", record.Status)
}

func TestReadCustomersCSV_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		errorMsg string
		rowError bool
	}{
		{name: "empty file", input: "", errorMsg: "csv file is empty"},
		{name: "missing name column", input: "email\nana@example.com\n", errorMsg: `missing required column "first_name"`},
		{name: "blank names", input: "first_name,last_name\n,\n", errorMsg: "row 1: first_name or last_name is required", rowError: true},
		{name: "bad date", input: "first_name,last_name,end_date\nAna,Cruz,someday\n", errorMsg: `row 1: end_date "someday"`, rowError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCustomersCSV(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)

			var rowErr *CSVRowError
			assert.Equal(t, tt.rowError, errors.As(err, &rowErr))
		})
	}
}

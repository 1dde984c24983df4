package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		valid    bool
	}{
		{"iso date", "2024-01-15", "2024-01-15", true},
		{"iso date with spaces", "  2024-01-15 ", "2024-01-15", true},
		{"rfc3339", "2024-01-15T10:30:00Z", "2024-01-15", true},
		{"local iso", "2024-01-15T10:30:00", "2024-01-15", true},
		{"us date", "01/15/2024", "2024-01-15", true},
		{"us short date", "1/5/2024", "2024-01-05", true},
		{"us dash date", "01-15-2024", "2024-01-15", true},
		{"slash iso", "2024/01/15", "2024-01-15", true},
		{"long month", "January 15, 2024", "2024-01-15", true},
		{"short month", "Jan 15, 2024", "2024-01-15", true},
		{"empty", "", "", false},
		{"month out of range", "13/01/2024", "", false},
		{"impossible day", "2024-02-30", "", false},
		{"free text", "next tuesday", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, valid := NormalizeDate(tt.input)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.expected, normalized)
		})
	}
}

func TestValidateAndConvert_DetectsFormat(t *testing.T) {
	validator := NewDateValidator()

	result := validator.ValidateAndConvert("03/04/2024")
	assert.True(t, result.IsValid)
	assert.Equal(t, FormatUSDate, result.DetectedFormat)
	assert.Equal(t, 3, int(result.ParsedTime.Month()))

	validator.SetStandardFormat(FormatUSDate)
	assert.Equal(t, "03/04/2024", validator.ValidateAndConvert("2024-03-04").StandardFormat)
}

package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type DateFormat string

const (
	FormatISO8601     DateFormat = "2006-01-02T15:04:05Z07:00"
	FormatISO8601Date DateFormat = "2006-01-02"
	FormatUSDate      DateFormat = "01/02/2006"
	FormatUSShortDate DateFormat = "1/2/2006"
	FormatUSDashDate  DateFormat = "01-02-2006"
	FormatSlashISO    DateFormat = "2006/01/02"
	FormatMonthDay    DateFormat = "January 2, 2006"
	FormatShortMonth  DateFormat = "Jan 2, 2006"
	FormatDateTime    DateFormat = "2006-01-02 15:04:05"
	FormatLocalISO    DateFormat = "2006-01-02T15:04:05"
)

var usDatePattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{4})$`)

// DateValidator accepts the date spellings agents type into forms and customer
// records and converts them to the calendar-date form stored everywhere else.
type DateValidator struct {
	supportedFormats []DateFormat
	standardFormat   DateFormat
}

type ValidationResult struct {
	IsValid        bool
	DetectedFormat DateFormat
	ParsedTime     time.Time
	StandardFormat string
	OriginalValue  string
}

func NewDateValidator() *DateValidator {
	return &DateValidator{
		supportedFormats: []DateFormat{
			FormatISO8601Date,
			FormatISO8601,
			FormatLocalISO,
			FormatDateTime,
			FormatUSDate,
			FormatUSShortDate,
			FormatUSDashDate,
			FormatSlashISO,
			FormatMonthDay,
			FormatShortMonth,
		},
		standardFormat: FormatISO8601Date,
	}
}

func (dv *DateValidator) SetStandardFormat(format DateFormat) {
	dv.standardFormat = format
}

func (dv *DateValidator) ValidateAndConvert(input string) ValidationResult {
	result := ValidationResult{OriginalValue: input}

	input = strings.TrimSpace(input)
	if input == "" {
		return result
	}

	for _, format := range dv.supportedFormats {
		parsedTime, err := time.Parse(string(format), input)
		if err != nil {
			continue
		}
		if !dv.isValidForFormat(input, format) {
			continue
		}

		result.IsValid = true
		result.DetectedFormat = format
		result.ParsedTime = parsedTime
		result.StandardFormat = parsedTime.Format(string(dv.standardFormat))
		return result
	}

	return result
}

func (dv *DateValidator) isValidForFormat(input string, format DateFormat) bool {
	switch format {
	case FormatUSDate, FormatUSShortDate, FormatUSDashDate:
		return validateUSDateFormat(input)
	default:
		return true
	}
}

// MM/DD/YYYY with month 1-12 and day 1-31.
func validateUSDateFormat(input string) bool {
	matches := usDatePattern.FindStringSubmatch(input)
	if len(matches) < 4 {
		return false
	}

	month, _ := strconv.Atoi(matches[1])
	day, _ := strconv.Atoi(matches[2])

	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// NormalizeDate returns input as YYYY-MM-DD, or false when it is not a recognised date.
func NormalizeDate(input string) (string, bool) {
	result := NewDateValidator().ValidateAndConvert(input)
	return result.StandardFormat, result.IsValid
}

package models

import (
	"math"
	"strconv"
	"strings"
)

// Fallback values used when a stored value is absent or unusable.
const (
	FallbackText         = "N/A"
	FallbackCustomerName = "Unknown Customer"
)

func TextOrFallback(value *string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return FallbackText
	}
	return *value
}

func NameOrFallback(name string) string {
	if strings.TrimSpace(name) == "" {
		return FallbackCustomerName
	}
	return name
}

// PremiumOrZero accepts numbers or numeric strings. Anything unparseable, negative or
// non-finite becomes 0.
func PremiumOrZero(raw any) float64 {
	var premium float64

	switch value := raw.(type) {
	case float64:
		premium = value
	case float32:
		premium = float64(value)
	case int:
		premium = float64(value)
	case int64:
		premium = float64(value)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		premium = parsed
	default:
		return 0
	}

	if math.IsNaN(premium) || math.IsInf(premium, 0) || premium < 0 {
		return 0
	}
	return premium
}

func StatusOrDefault(status string) PolicyStatus {
	candidate := PolicyStatus(strings.ToLower(strings.TrimSpace(status)))
	if candidate.Valid() {
		return candidate
	}
	return PolicyStatusActive
}

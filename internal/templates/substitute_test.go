package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		values   map[string]string
		expected string
	}{
		{
			name:     "unresolved token is left untouched",
			text:     "Hello {name}, premium ${amount}",
			values:   map[string]string{"name": "Ana"},
			expected: "Hello Ana, premium ${amount}",
		},
		{
			name:     "all occurrences are replaced",
			text:     "{name} / {name}",
			values:   map[string]string{"name": "Ana"},
			expected: "Ana / Ana",
		},
		{
			name:     "empty value keeps the token",
			text:     "Due {dueDate}",
			values:   map[string]string{"dueDate": ""},
			expected: "Due {dueDate}",
		},
		{
			name:     "no values",
			text:     "Due {dueDate}",
			values:   nil,
			expected: "Due {dueDate}",
		},
		{
			name:     "values are not expanded recursively",
			text:     "{a} and {b}",
			values:   map[string]string{"a": "{b}", "b": "B"},
			expected: "{b} and B",
		},
		{
			name:     "non-token braces are ignored",
			text:     "{ spaced } {1bad} {ok}",
			values:   map[string]string{"ok": "fine", "1bad": "x"},
			expected: "{ spaced } {1bad} fine",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Substitute(tt.text, tt.values))
		})
	}
}

func TestSubstitute_IdempotentOnceResolved(t *testing.T) {
	text := "Dear {customerName}, your {policyType} premium is ${premium}."
	v1 := map[string]string{"customerName": "Ana Cruz", "policyType": "Auto", "premium": "1200"}
	v2 := map[string]string{"customerName": "Someone Else", "premium": "1"}

	once := Substitute(text, v1)
	assert.Equal(t, once, Substitute(once, v2))
	assert.Equal(t, "Dear Ana Cruz, your Auto premium is $1200.", once)
}

func TestTokens(t *testing.T) {
	assert.Equal(t,
		[]string{"policyType", "customerName", "premium"},
		Tokens("Your {policyType} renewal {customerName} {policyType} ${premium}"),
	)
	assert.Empty(t, Tokens("no tokens here"))
}

func TestRender(t *testing.T) {
	registry := newRegistry(t)
	template, found := registry.FindCommunicationTemplate("payment-reminder-sms")
	require.True(t, found)

	message := Render(template, map[string]string{
		"customerName": "Ana",
		"policyType":   "Auto",
		"amount":       "125.00",
		"dueDate":      "2024-03-01",
	})

	assert.Equal(t, "Payment Reminder", message.Subject)
	assert.Equal(t,
		"Hi Ana, your Auto premium of $125.00 is due on 2024-03-01. Pay online or call us at {phoneNumber}. - {companyName}",
		message.Content,
	)
	assert.Equal(t, []string{"phoneNumber", "companyName"}, message.Unresolved)
	assert.Equal(t, ChannelSMS, message.Type)
}

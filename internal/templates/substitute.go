package templates

import (
	"regexp"
)

var tokenPattern = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Substitute replaces every {name} token that has a non-empty value. Unknown or empty
// tokens are left as written. The text is scanned once, so braces inside inserted values
// are never expanded.
func Substitute(text string, values map[string]string) string {
	if len(values) == 0 {
		return text
	}

	return tokenPattern.ReplaceAllStringFunc(text, func(token string) string {
		name := token[1 : len(token)-1]
		if value, ok := values[name]; ok && value != "" {
			return value
		}
		return token
	})
}

// Tokens lists the distinct token names in text in order of first appearance.
func Tokens(text string) []string {
	tokens := []string{}
	seen := map[string]bool{}
	for _, match := range tokenPattern.FindAllStringSubmatch(text, -1) {
		if !seen[match[1]] {
			seen[match[1]] = true
			tokens = append(tokens, match[1])
		}
	}
	return tokens
}

type RenderedMessage struct {
	TemplateID string   `json:"templateId"`
	Type       Channel  `json:"type"`
	Subject    string   `json:"subject"`
	Content    string   `json:"content"`
	Unresolved []string `json:"unresolved"`
}

// Render substitutes subject and content and reports the declared variables that are
// still unresolved.
func Render(template CommunicationTemplate, values map[string]string) RenderedMessage {
	message := RenderedMessage{
		TemplateID: template.ID,
		Type:       template.Type,
		Subject:    Substitute(template.Subject, values),
		Content:    Substitute(template.Content, values),
		Unresolved: []string{},
	}

	for _, token := range Tokens(template.Subject + "\n" + template.Content) {
		if values[token] == "" {
			message.Unresolved = append(message.Unresolved, token)
		}
	}

	return message
}

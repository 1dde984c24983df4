package formfill

import (
	"agency/internal/logger"
	"agency/internal/models"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Resolve evaluates a customerDataPath against the customer. It never fails: a missing key,
// a non-object intermediate or a non-scalar result all resolve to "".
func Resolve(customer models.Customer, path string) string {
	raw, err := json.Marshal(customer)
	if err != nil {
		logger.New("formfill").Function("Resolve").Er("failed to encode customer", err, "customerID", customer.ID)
		return ""
	}
	return ResolveJSON(raw, path)
}

// ResolveJSON applies the same rules to an arbitrary JSON document. Comma separated paths
// resolve each part independently and join the non-empty results with one space.
func ResolveJSON(raw []byte, path string) string {
	if strings.TrimSpace(path) == "" || !gjson.ValidBytes(raw) {
		return ""
	}

	if !strings.Contains(path, ",") {
		return resolveSingle(raw, strings.TrimSpace(path))
	}

	var parts []string
	for _, part := range strings.Split(path, ",") {
		if value := resolveSingle(raw, strings.TrimSpace(part)); value != "" {
			parts = append(parts, value)
		}
	}
	return strings.Join(parts, " ")
}

func resolveSingle(raw []byte, path string) string {
	if path == "" {
		return ""
	}

	current := gjson.ParseBytes(raw)
	for _, key := range strings.Split(path, ".") {
		if key == "" || !current.IsObject() {
			return ""
		}
		current = current.Get(escapeKey(key))
		if !current.Exists() {
			return ""
		}
	}

	switch current.Type {
	case gjson.String, gjson.Number, gjson.True, gjson.False:
		return current.String()
	default:
		// null, objects and arrays
		return ""
	}
}

// escapeKey makes gjson treat a single object key literally.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\', '.':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

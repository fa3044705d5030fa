package utils

import (
	"html"
	"strings"
)

// Sanitize trims and HTML-escapes a model- or user-supplied value before it is
// echoed into any rendered surface. Non-string input yields "".
// Escaping is NOT idempotent; sanitize exactly once at the output boundary.
func Sanitize(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return html.EscapeString(strings.TrimSpace(s))
}

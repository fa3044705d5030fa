package utils

import (
	"strconv"
	"strings"
)

// SafeFloat coerces a loosely-formatted value into a float64.
// Strings are stripped of everything except digits and the decimal point
// before parsing, so currency formatting like "$45,230.10" parses to 45230.10.
// Anything unparseable yields 0.0; this function never fails.
func SafeFloat(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0.0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		cleaned := stripNonNumeric(v)
		if cleaned == "" {
			return 0.0
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0.0
		}
		return parsed
	default:
		return 0.0
	}
}

// stripNonNumeric drops every rune that is not an ASCII digit or a decimal point
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

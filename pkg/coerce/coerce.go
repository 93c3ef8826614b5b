package coerce

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

var numericPattern = regexp.MustCompile(`[\d.]+`)

// Float converts a loosely-typed JSON value into a float64. Numbers pass
// through, numeric strings are parsed after stripping currency symbols and
// thousands separators ("$1,199.00" -> 1199). Anything else yields 0.
func Float(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		return parseNumericString(val)
	default:
		return 0
	}
}

// Int converts a loosely-typed JSON value into an int, truncating fractions.
func Int(v interface{}) int {
	return int(Float(v))
}

// String returns the value if it is a non-empty string, otherwise fallback.
func String(v interface{}, fallback string) string {
	if s, ok := v.(string); ok {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

// Bool returns the value if it is a bool, otherwise fallback. Catalogs that
// send stock flags as strings ("true"/"false") are tolerated too.
func Bool(v interface{}, fallback bool) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

// Strings converts a JSON array value into a string slice, skipping
// non-string elements. Always returns a non-nil slice.
func Strings(v interface{}) []string {
	out := make([]string, 0)
	items, ok := v.([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ID renders a raw identifier (string or number) as a string. Numeric ids
// are formatted without a fractional part.
func ID(v interface{}) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}

func parseNumericString(s string) float64 {
	clean := strings.ReplaceAll(s, ",", "")
	clean = strings.TrimSpace(clean)

	match := numericPattern.FindString(clean)
	if match == "" {
		return 0
	}

	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return f
}

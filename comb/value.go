package comb

import (
	"fmt"
	"strconv"
)

// formatToken renders a primitive value as a single command-line token.
func formatToken(v any) string {
	switch val := v.(type) {
	case nil:
		return ""

	case string:
		return val

	case bool:
		return strconv.FormatBool(val)

	case int:
		return strconv.Itoa(val)

	case int64:
		return strconv.FormatInt(val, 10)

	case uint64:
		return strconv.FormatUint(val, 10)

	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)

	default:
		return fmt.Sprintf("%v", val)
	}
}

// parseScalar attempts to parse a string into an appropriate primitive type.
// The fallback chain is integer, float, bool, then the string itself.
// Numbers are tried first so "1" stays numeric rather than becoming true.
func parseScalar(s string) any {
	if i, err := strconv.ParseInt(s, 0, 64); err == nil {
		return i
	}

	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}

	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}

	return s
}

package calculator

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// values holds the parsed required fields of one calculation.
type values map[string]float64

// requireFields parses every field in names from in. A field that is
// missing, blank, non-numeric, non-finite or not strictly positive fails.
func requireFields(t ProductType, names []string, in Input) (values, error) {
	out := make(values, len(names))
	for _, name := range names {
		raw, ok := in[name]
		if !ok || isBlank(raw) {
			return nil, invalid(t, name, "is required")
		}
		value, ok := parseNumber(raw)
		if !ok {
			return nil, invalid(t, name, "must be numeric")
		}
		if value <= 0 {
			return nil, invalid(t, name, "must be greater than zero")
		}
		out[name] = value
	}
	return out, nil
}

func parseNumber(raw any) (float64, bool) {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int32:
		value = float64(v)
	case int64:
		value = float64(v)
	case uint:
		value = float64(v)
	case uint32:
		value = float64(v)
	case uint64:
		value = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		value = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		value = f
	default:
		return 0, false
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func isBlank(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case json.Number:
		return strings.TrimSpace(string(v)) == ""
	}
	return false
}

func textField(in Input, name string) string {
	s, _ := in[name].(string)
	return strings.TrimSpace(s)
}

// num formats a value for display with at most 14 significant digits and no
// trailing zeros (10, 1.67, 0.3 for 0.1+0.2).
func num(v float64) string {
	return strconv.FormatFloat(v, 'g', 14, 64)
}

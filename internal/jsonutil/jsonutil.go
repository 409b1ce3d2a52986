// Package jsonutil holds the JSON helpers shared by the engine client and the
// layout state codec.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalWithContext unmarshals data into v and wraps any error with the
// provided context message.
func UnmarshalWithContext(data []byte, v interface{}, context string) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	return nil
}

// UnmarshalArrayAllowEmpty unmarshals data into a slice. Blank input (the
// engine prints nothing when a listing is empty) yields an empty slice.
func UnmarshalArrayAllowEmpty[T any](data []byte, context string) ([]T, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var entries []T
	if err := UnmarshalWithContext(data, &entries, context); err != nil {
		return nil, err
	}
	return entries, nil
}

// Valid reports whether data is a single well-formed JSON value after trimming
// surrounding whitespace.
func Valid(data []byte) bool {
	return json.Valid(bytes.TrimSpace(data))
}

// ToString converts a decoded JSON value to display text. Whole numbers print
// without a decimal point.
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%.0f", val)
		}
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// GetString extracts a string field from a decoded object, or "".
func GetString(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}

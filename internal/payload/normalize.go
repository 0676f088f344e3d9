// Package payload coerces response data into the shape the envelope expects.
package payload

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Normalize returns data unchanged unless it is null. A null payload becomes
// an empty object when alwaysObject is set and stays null otherwise.
func Normalize(data any, alwaysObject bool) any {
	if !IsNull(data) {
		return data
	}
	if alwaysObject {
		return map[string]any{}
	}
	return nil
}

// IsNull reports whether data would serialize as JSON null.
func IsNull(data any) bool {
	if data == nil {
		return true
	}
	if raw, ok := data.(json.RawMessage); ok {
		trimmed := bytes.TrimSpace(raw)
		return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}

package model

import (
	"fmt"
	"reflect"
	"strings"
)

// ReprField is one attribute surfaced in a node's textual representation.
type ReprField struct {
	Name string
	// Value is formatted with quoting for strings and %v for everything else.
	Value any
	// OmitEmpty drops the field when the value is empty or zero.
	OmitEmpty bool
}

// Repr builds the textual representation of a node from an ordered field
// list, e.g. `result.Keyword(name="Log", args=[hello])`.
func Repr(typeName string, fields []ReprField) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.OmitEmpty && isEmptyValue(f.Value) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", f.Name, formatReprValue(f.Value)))
	}
	return fmt.Sprintf("%s(%s)", typeName, strings.Join(parts, ", "))
}

func formatReprValue(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []string:
		return "[" + strings.Join(v, ", ") + "]"
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

func isEmptyValue(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return v.IsZero()
}

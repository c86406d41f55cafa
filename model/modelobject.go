// Package model provides the shared vocabulary and the generic object
// contract for result tree nodes: construction from a map, serialization to
// a map, attribute configuration and copy semantics that every node type in
// the result package implements with explicit, hand-written setters.
package model

import (
	"fmt"
	"reflect"
)

// BodyItemType discriminates node kinds in serialized body sequences and in
// runtime type checks. The string values are part of the persisted format.
type BodyItemType string

const (
	SuiteType     BodyItemType = "SUITE"
	TestType      BodyItemType = "TEST"
	KeywordType   BodyItemType = "KEYWORD"
	SetupType     BodyItemType = "SETUP"
	TeardownType  BodyItemType = "TEARDOWN"
	ForType       BodyItemType = "FOR"
	WhileType     BodyItemType = "WHILE"
	IterationType BodyItemType = "ITERATION"
	GroupType     BodyItemType = "GROUP"
	IfElseType    BodyItemType = "IF/ELSE ROOT"
	IfBranchType  BodyItemType = "IF"
	ElseIfType    BodyItemType = "ELSE IF"
	ElseType      BodyItemType = "ELSE"
	TryExceptType BodyItemType = "TRY/EXCEPT ROOT"
	TryBranchType BodyItemType = "TRY"
	ExceptType    BodyItemType = "EXCEPT"
	FinallyType   BodyItemType = "FINALLY"
	VarType       BodyItemType = "VAR"
	ReturnType    BodyItemType = "RETURN"
	ContinueType  BodyItemType = "CONTINUE"
	BreakType     BodyItemType = "BREAK"
	ErrorType     BodyItemType = "ERROR"
	MessageType   BodyItemType = "MESSAGE"
)

// ModelObject is the contract every result tree node fulfills. ToMap output
// round-trips through the node's FromMap constructor so that a tree, or any
// subtree, can be exported and reconstructed without re-parsing the source
// document.
type ModelObject interface {
	// Type returns the node kind discriminant.
	Type() BodyItemType
	// ToMap serializes the node into a plain map.
	ToMap() map[string]any
	// Configure applies the given attributes to the node. Unknown attribute
	// names and uncoercible values fail with a DataError. Assigning a fixed
	// attribute is tolerated only when the value equals the current one.
	Configure(attrs map[string]any) error
}

// UnknownAttributeError reports a Configure or FromMap call that names an
// attribute the target type does not have.
func UnknownAttributeError(obj any, name string) *DataError {
	return NewDataError("'%s' object does not have attribute '%s'", TypeName(obj), name)
}

// FixedAttributeError reports an attempt to overwrite a structurally fixed
// attribute with a different value.
func FixedAttributeError(obj any, name string) *DataError {
	return NewDataError("setting attribute '%s' of '%s' object failed: attribute is read-only", name, TypeName(obj))
}

// TypeName returns a short name for an object, used in error messages.
func TypeName(obj any) string {
	t := reflect.TypeOf(obj)
	if t == nil {
		return "nil"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// AsString coerces a configuration value to a string.
func AsString(obj any, name string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case nil:
		return "", nil
	}
	return "", NewDataError("'%s' object attribute '%s' is 'string', got '%T'", TypeName(obj), name, value)
}

// AsStringSlice coerces a configuration value to a string slice. The main
// motivation is accepting []any produced by JSON decoding while keeping the
// stored attribute an ordered sequence of strings.
func AsStringSlice(obj any, name string, value any) ([]string, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []string:
		return append([]string(nil), v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, NewDataError("'%s' object attribute '%s' is 'tuple', got '%T' item", TypeName(obj), name, item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, NewDataError("'%s' object attribute '%s' is 'tuple', got '%T'", TypeName(obj), name, value)
}

// AsBool coerces a configuration value to a bool.
func AsBool(obj any, name string, value any) (bool, error) {
	if b, ok := value.(bool); ok {
		return b, nil
	}
	return false, NewDataError("'%s' object attribute '%s' is 'bool', got '%T'", TypeName(obj), name, value)
}

// AsInt coerces a configuration value to an int. JSON decoding yields
// float64 for every number, so whole floats are accepted.
func AsInt(obj any, name string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, NewDataError("'%s' object attribute '%s' is 'int', got '%T'", TypeName(obj), name, value)
}

// AsFloat coerces a configuration value to a float64.
func AsFloat(obj any, name string, value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, NewDataError("'%s' object attribute '%s' is 'float', got '%T'", TypeName(obj), name, value)
}

// SameType reports whether a re-supplied type discriminant equals the fixed
// one. Body items carry their discriminant in serialized maps, so Configure
// tolerates assigning it back as long as the value does not change.
func SameType(fixed BodyItemType, value any) bool {
	switch v := value.(type) {
	case string:
		return BodyItemType(v) == fixed
	case BodyItemType:
		return v == fixed
	}
	return false
}

// Package schemautil centralizes type-assertion patterns for OAS
// version-specific schema fields, particularly the difference between OAS
// 3.0 (`type` is a bare string, `nullable: true`) and OAS 3.1 (`type` may be
// an array including `"null"`, per JSON Schema 2020-12).
package schemautil

import "github.com/openapitor/openapitor/spec"

// GetSchemaTypes returns the type(s) from a schema, handling both the OAS
// 3.0 string form and the OAS 3.1 array form.
//
// Examples:
//   - OAS 3.0: {"type": "string"} returns ["string"]
//   - OAS 3.1: {"type": ["string", "null"]} returns ["string", "null"]
func GetSchemaTypes(schema *spec.Schema) []string {
	if schema == nil {
		return nil
	}
	switch t := schema.Type.(type) {
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case []any:
		result := make([]string, 0, len(t))
		for _, v := range t {
			if s, ok := v.(string); ok {
				result = append(result, s)
			}
		}
		return result
	case []string:
		return t
	}
	return nil
}

// GetPrimaryType returns the first non-null type from a schema. Useful for
// OAS 3.1+ where the type array may include "null".
func GetPrimaryType(schema *spec.Schema) string {
	types := GetSchemaTypes(schema)
	for _, t := range types {
		if t != "null" {
			return t
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return ""
}

// IsNullable reports whether the schema allows null, via either the OAS 3.1
// type array or the OAS 3.0 `nullable` keyword.
func IsNullable(schema *spec.Schema) bool {
	if schema == nil {
		return false
	}
	if schema.Nullable {
		return true
	}
	for _, t := range GetSchemaTypes(schema) {
		if t == "null" {
			return true
		}
	}
	return false
}

// HasType reports whether the schema includes the given type.
func HasType(schema *spec.Schema, targetType string) bool {
	for _, t := range GetSchemaTypes(schema) {
		if t == targetType {
			return true
		}
	}
	return false
}

// IsSingleType reports whether the schema has exactly one non-null type.
func IsSingleType(schema *spec.Schema) bool {
	types := GetSchemaTypes(schema)
	nonNullCount := 0
	for _, t := range types {
		if t != "null" {
			nonNullCount++
		}
	}
	return nonNullCount == 1
}

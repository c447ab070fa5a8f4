package pathutil

import "strings"

// OAS 3.x component reference prefixes.
const (
	RefPrefixSchemas         = "#/components/schemas/"
	RefPrefixParameters      = "#/components/parameters/"
	RefPrefixResponses       = "#/components/responses/"
	RefPrefixExamples        = "#/components/examples/"
	RefPrefixRequestBodies   = "#/components/requestBodies/"
	RefPrefixHeaders         = "#/components/headers/"
	RefPrefixSecuritySchemes = "#/components/securitySchemes/"
	RefPrefixLinks           = "#/components/links/"
	RefPrefixCallbacks       = "#/components/callbacks/"
	RefPrefixPathItems       = "#/components/pathItems/"
)

// SchemaRef builds "#/components/schemas/{name}".
func SchemaRef(name string) string { return RefPrefixSchemas + name }

// ParameterRef builds "#/components/parameters/{name}".
func ParameterRef(name string) string { return RefPrefixParameters + name }

// ResponseRef builds "#/components/responses/{name}".
func ResponseRef(name string) string { return RefPrefixResponses + name }

// SecuritySchemeRef builds "#/components/securitySchemes/{name}".
func SecuritySchemeRef(name string) string { return RefPrefixSecuritySchemes + name }

// HeaderRef builds "#/components/headers/{name}".
func HeaderRef(name string) string { return RefPrefixHeaders + name }

// RequestBodyRef builds "#/components/requestBodies/{name}".
func RequestBodyRef(name string) string { return RefPrefixRequestBodies + name }

// ExampleRef builds "#/components/examples/{name}".
func ExampleRef(name string) string { return RefPrefixExamples + name }

// LinkRef builds "#/components/links/{name}".
func LinkRef(name string) string { return RefPrefixLinks + name }

// CallbackRef builds "#/components/callbacks/{name}".
func CallbackRef(name string) string { return RefPrefixCallbacks + name }

// PathItemRef builds "#/components/pathItems/{name}".
func PathItemRef(name string) string { return RefPrefixPathItems + name }

// SchemaName extracts "Widget" from "#/components/schemas/Widget". Returns
// ok=false for anything that isn't a schema-component fragment ref,
// including external refs.
func SchemaName(ref string) (string, bool) {
	if !strings.HasPrefix(ref, RefPrefixSchemas) {
		return "", false
	}
	name := strings.TrimPrefix(ref, RefPrefixSchemas)
	if name == "" {
		return "", false
	}
	return name, true
}

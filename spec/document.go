// Package spec is the openapitor document model: the in-memory OpenAPI 3.0/3.1
// structure produced by the loader (stage A), mutated by the patch layer
// (stage B), and read by the reference resolver (stage C). Types here are
// intentionally close to the wire JSON/YAML shape — the lowering stages
// (typeir, opir) translate this model into the generator's own IR, they do
// not reach back into it once lowering starts.
package spec

// Document is a loaded, patched OpenAPI 3.x document.
type Document struct {
	OpenAPI    string                     `json:"openapi" yaml:"openapi"`
	Info       Info                       `json:"info" yaml:"info"`
	Servers    []Server                   `json:"servers,omitempty" yaml:"servers,omitempty"`
	Paths      *OrderedMap[*PathItem]     `json:"paths,omitempty" yaml:"paths,omitempty"`
	Components Components                 `json:"components,omitempty" yaml:"components,omitempty"`
	Security   []SecurityRequirement      `json:"security,omitempty" yaml:"security,omitempty"`
	Tags       []Tag                      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Extensions map[string]any             `json:"-" yaml:"-"`

	// raw is the decoded-but-unvalidated document, retained so
	// annotatePointers can read vendor extensions the typed model does not
	// decode. It is never cleared; the patch layer works on a fresh
	// re-decode of the typed Document instead.
	raw map[string]any
}

// Info is the OpenAPI `info` object.
type Info struct {
	Title          string  `json:"title" yaml:"title"`
	Description    string  `json:"description,omitempty" yaml:"description,omitempty"`
	Version        string  `json:"version" yaml:"version"`
	TermsOfService string  `json:"termsOfService,omitempty" yaml:"termsOfService,omitempty"`
	Contact        *Contact `json:"contact,omitempty" yaml:"contact,omitempty"`
}

// Contact is the OpenAPI `info.contact` object.
type Contact struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	URL   string `json:"url,omitempty" yaml:"url,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Server is an OpenAPI `servers[]` entry.
type Server struct {
	URL         string                            `json:"url" yaml:"url"`
	Description string                            `json:"description,omitempty" yaml:"description,omitempty"`
	Variables   map[string]ServerVariable         `json:"variables,omitempty" yaml:"variables,omitempty"`
}

// ServerVariable is a `servers[].variables` entry.
type ServerVariable struct {
	Enum    []string `json:"enum,omitempty" yaml:"enum,omitempty"`
	Default string   `json:"default" yaml:"default"`
}

// Tag is a top-level `tags[]` entry, the grouping unit operations are
// rendered under in the emitted client.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Components holds every reusable component collection a $ref can target.
type Components struct {
	Schemas         *OrderedMap[*Schema]         `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Responses       *OrderedMap[*Response]       `json:"responses,omitempty" yaml:"responses,omitempty"`
	Parameters      *OrderedMap[*Parameter]      `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Examples        *OrderedMap[*Example]        `json:"examples,omitempty" yaml:"examples,omitempty"`
	RequestBodies   *OrderedMap[*RequestBody]    `json:"requestBodies,omitempty" yaml:"requestBodies,omitempty"`
	Headers         *OrderedMap[*Header]         `json:"headers,omitempty" yaml:"headers,omitempty"`
	SecuritySchemes *OrderedMap[*SecurityScheme] `json:"securitySchemes,omitempty" yaml:"securitySchemes,omitempty"`
	Links           *OrderedMap[*Link]           `json:"links,omitempty" yaml:"links,omitempty"`
	Callbacks       *OrderedMap[*Callback]       `json:"callbacks,omitempty" yaml:"callbacks,omitempty"`
	PathItems       *OrderedMap[*PathItem]       `json:"pathItems,omitempty" yaml:"pathItems,omitempty"`
}

// Example is a `components.examples` / inline example object.
type Example struct {
	Summary       string `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Value         any    `json:"value,omitempty" yaml:"value,omitempty"`
	ExternalValue string `json:"externalValue,omitempty" yaml:"externalValue,omitempty"`
	Ref           string `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// Link is a `components.links` object; carried through for model
// completeness, not consumed by the core lowering pipeline.
type Link struct {
	OperationRef string         `json:"operationRef,omitempty" yaml:"operationRef,omitempty"`
	OperationID  string         `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Ref          string         `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

// Callback is a `components.callbacks` object, keyed by expression to a
// PathItem describing the callback request.
type Callback struct {
	Expressions *OrderedMap[*PathItem] `json:"-" yaml:"-"`
	Ref         string                 `json:"$ref,omitempty" yaml:"$ref,omitempty"`
}

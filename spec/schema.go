package spec

// Schema is the JSON Schema (2020-12 subset, per OAS 3.1) / OAS 3.0 schema
// object. Type IR lowering (typeir.Lower) consumes this directly; nothing
// downstream of that stage holds a *Schema.
type Schema struct {
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type holds either a string (OAS 3.0, "object") or a []any of strings
	// (OAS 3.1 nullable union, `["string","null"]`). Use
	// internal/schemautil.GetSchemaTypes to normalize.
	Type any `json:"type,omitempty" yaml:"type,omitempty"`

	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`

	// Nullable is the OAS 3.0 nullable marker. OAS 3.1 documents instead add
	// "null" to Type; schemautil.IsNullable checks both forms.
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// object
	Properties           *OrderedMap[*Schema] `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required             []string             `json:"required,omitempty" yaml:"required,omitempty"`
	AdditionalProperties *AdditionalProps     `json:"additionalProperties,omitempty" yaml:"additionalProperties,omitempty"`
	MinProperties        *int                 `json:"minProperties,omitempty" yaml:"minProperties,omitempty"`
	MaxProperties        *int                 `json:"maxProperties,omitempty" yaml:"maxProperties,omitempty"`

	// array
	Items       *Schema `json:"items,omitempty" yaml:"items,omitempty"`
	UniqueItems bool    `json:"uniqueItems,omitempty" yaml:"uniqueItems,omitempty"`
	MinItems    *int    `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems    *int    `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// string
	Enum      []any `json:"enum,omitempty" yaml:"enum,omitempty"`
	MinLength *int  `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	MaxLength *int  `json:"maxLength,omitempty" yaml:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty" yaml:"pattern,omitempty"`

	// number/integer
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum,omitempty"`

	// composition
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`
	Not   *Schema   `json:"not,omitempty" yaml:"not,omitempty"`

	Discriminator *Discriminator `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
	XML           *XML           `json:"xml,omitempty" yaml:"xml,omitempty"`

	// x-dropshot-pagination is a vendor marker hinting that a struct schema
	// is a cursor-paginated response page. annotatePointers decodes it; opir
	// infers pagination from structure alone and does not read it.
	XDropshotPagination bool `json:"-" yaml:"-"`

	Extensions map[string]any `json:"-" yaml:"-"`

	// sourcePointer is the JSON pointer this schema was decoded from,
	// threaded through lowering errors (oaserrors.SchemaLoweringError).
	sourcePointer string
}

// SourcePointer returns the JSON pointer this schema node was decoded from.
func (s *Schema) SourcePointer() string {
	if s == nil {
		return ""
	}
	return s.sourcePointer
}

// IsEmpty reports whether the schema has no constraining keywords at all —
// the bare `{}` case that lowers to typeir.Any.
func (s *Schema) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.Type == nil && s.Ref == "" && s.Properties.Len() == 0 &&
		s.Items == nil && len(s.Enum) == 0 && len(s.OneOf) == 0 &&
		len(s.AnyOf) == 0 && len(s.AllOf) == 0 && s.AdditionalProperties == nil
}

// Discriminator implements OAS discriminator objects, consulted by typeir
// when lowering `oneOf` into a tagged union.
type Discriminator struct {
	PropertyName string            `json:"propertyName" yaml:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// XML carries OAS XML serialization metadata. The generator does not emit
// XML support; this is retained for document-model completeness only.
type XML struct {
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Prefix    string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Attribute bool   `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Wrapped   bool   `json:"wrapped,omitempty" yaml:"wrapped,omitempty"`
}

// AdditionalProps models `additionalProperties`, which is either a bare
// boolean or a schema.
type AdditionalProps struct {
	Allowed bool
	Schema  *Schema
}

func (a *AdditionalProps) MarshalJSON() ([]byte, error) {
	if a == nil {
		return []byte("null"), nil
	}
	if a.Schema != nil {
		return marshalJSON(a.Schema)
	}
	return marshalJSON(a.Allowed)
}

func (a *AdditionalProps) UnmarshalJSON(data []byte) error {
	if string(data) == "true" {
		a.Allowed = true
		return nil
	}
	if string(data) == "false" {
		a.Allowed = false
		return nil
	}
	var s Schema
	if err := unmarshalJSON(data, &s); err != nil {
		return err
	}
	a.Schema = &s
	a.Allowed = true
	return nil
}

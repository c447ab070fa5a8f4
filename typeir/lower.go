package typeir

import (
	"fmt"

	"github.com/openapitor/openapitor/internal/pathutil"
	"github.com/openapitor/openapitor/internal/schemautil"
	"github.com/openapitor/openapitor/mint"
	"github.com/openapitor/openapitor/spec"
)

// Context carries the state shared across one generator run's lowering
// pass: the type table being built, the resolver for following $refs, and
// the mint scope for the "global types" naming scope.
type Context struct {
	Table     *Table
	Resolver  *spec.Resolver
	TypeScope *mint.Scope
}

// NewContext returns a fresh lowering context over an already-resolved
// document.
func NewContext(resolver *spec.Resolver) *Context {
	return &Context{
		Table:     NewTable(),
		Resolver:  resolver,
		TypeScope: mint.NewScope(),
	}
}

// Lower lowers schema into the type table and returns its TypeID. hint
// names the position schema was found at (a property name, a method name
// plus "_body", a component name) and seeds the synthesized type name when
// one is needed.
func Lower(ctx *Context, schema *spec.Schema, hint string) (TypeID, error) {
	return ctx.lowerSchema(schema, hint)
}

func (ctx *Context) lowerSchema(schema *spec.Schema, hint string) (TypeID, error) {
	if schema == nil {
		return ctx.Table.InternInline(Node{Kind: KindEmpty}), nil
	}
	if schema.Ref != "" {
		targetID, err := ctx.lowerRef(schema.Ref, hint)
		if err != nil {
			return 0, err
		}
		id := ctx.Table.InternInline(Node{Kind: KindNamed, Named: targetID})
		if schemautil.IsNullable(schema) {
			id = ctx.Table.InternInline(Node{Kind: KindOptional, Optional: &OptionalNode{Inner: id}})
		}
		return id, nil
	}

	node, err := ctx.lowerBody(schema, hint)
	if err != nil {
		return 0, err
	}
	id := ctx.Table.InternInline(node)
	if schemautil.IsNullable(schema) && node.Kind != KindOptional {
		id = ctx.Table.InternInline(Node{Kind: KindOptional, Optional: &OptionalNode{Inner: id}})
	}
	return id, nil
}

// lowerRef resolves a $ref, allocating its TypeID before descending into
// the referent so a self- or mutually-referential schema resolves to that
// same ID instead of recursing without end.
func (ctx *Context) lowerRef(ref string, hint string) (TypeID, error) {
	name, ok := pathutil.SchemaName(ref)
	if !ok {
		name = hint
	}
	if id, ok := ctx.Table.NamedID(ref); ok {
		return id, nil
	}
	id := ctx.Table.ReserveNamed(ref)

	target, err := ctx.Resolver.ResolveSchema(ref)
	if err != nil {
		return 0, err
	}
	node, err := ctx.lowerBody(target, name)
	if err != nil {
		return 0, err
	}
	ctx.Table.Set(id, node)
	return id, nil
}

func (ctx *Context) lowerBody(schema *spec.Schema, hint string) (Node, error) {
	switch {
	case schema.IsEmpty():
		return Node{Kind: KindAny}, nil
	case len(schema.OneOf) > 0:
		return ctx.lowerOneOf(schema, hint)
	case len(schema.AnyOf) > 0:
		return ctx.lowerOneOfAny(schema.AnyOf, hint)
	case len(schema.AllOf) > 0:
		return ctx.lowerAllOf(schema, hint)
	}

	primary := schemautil.GetPrimaryType(schema)
	switch primary {
	case "object":
		return ctx.lowerObject(schema, hint)
	case "array":
		return ctx.lowerArray(schema, hint)
	case "string":
		if len(schema.Enum) > 0 {
			return ctx.lowerEnum(schema, hint)
		}
		return ctx.lowerStringPrimitive(schema, hint)
	case "integer", "number":
		return ctx.lowerNumericPrimitive(schema, hint)
	case "boolean":
		return Node{Kind: KindPrimitive, Primitive: Bool}, nil
	case "":
		if schema.Properties != nil && schema.Properties.Len() > 0 {
			return ctx.lowerObject(schema, hint)
		}
		return Node{Kind: KindAny}, nil
	default:
		return Node{Kind: KindAny}, nil
	}
}

func (ctx *Context) lowerObject(schema *spec.Schema, hint string) (Node, error) {
	hasProps := schema.Properties != nil && schema.Properties.Len() > 0

	if !hasProps && schema.AdditionalProperties != nil && schema.AdditionalProperties.Allowed {
		valueID := ctx.Table.InternInline(Node{Kind: KindAny})
		if schema.AdditionalProperties.Schema != nil {
			var err error
			valueID, err = ctx.lowerSchema(schema.AdditionalProperties.Schema, hint+"Value")
			if err != nil {
				return Node{}, err
			}
		}
		return Node{Kind: KindMap, Map: &MapNode{Value: valueID}}, nil
	}

	name := mint.Mint(hint, mint.CasePascal, mint.PlaceholderType, ctx.TypeScope)
	fieldScope := mint.NewScope()
	required := make(map[string]bool, len(schema.Required))
	for _, r := range schema.Required {
		required[r] = true
	}

	var fields []Field
	if schema.Properties != nil {
		var rangeErr error
		schema.Properties.Range(func(propName string, propSchema *spec.Schema) bool {
			fieldID, err := ctx.lowerSchema(propSchema, hint+"_"+propName)
			if err != nil {
				rangeErr = err
				return false
			}
			if !required[propName] {
				existing := ctx.Table.Get(fieldID)
				if existing.Kind != KindOptional {
					fieldID = ctx.Table.InternInline(Node{Kind: KindOptional, Optional: &OptionalNode{Inner: fieldID}})
				}
			}
			ident := mint.Mint(propName, mint.CaseSnake, mint.PlaceholderField, fieldScope)
			docs := ""
			if propSchema != nil {
				docs = propSchema.Description
			}
			fields = append(fields, Field{
				WireName: propName,
				Ident:    ident,
				Ty:       fieldID,
				Docs:     docs,
			})
			return true
		})
		if rangeErr != nil {
			return Node{}, rangeErr
		}
	}

	extensible := hasProps && schema.AdditionalProperties != nil && schema.AdditionalProperties.Allowed

	return Node{Kind: KindStruct, Struct: &StructNode{
		Name:       name,
		Fields:     fields,
		Docs:       schema.Description,
		Required:   required,
		Extensible: extensible,
	}}, nil
}

func (ctx *Context) lowerArray(schema *spec.Schema, hint string) (Node, error) {
	innerID, err := ctx.lowerSchema(schema.Items, hint+"Item")
	if err != nil {
		return Node{}, err
	}
	return Node{Kind: KindSequence, Sequence: &SequenceNode{
		Inner:  innerID,
		Unique: schema.UniqueItems,
		Min:    schema.MinItems,
		Max:    schema.MaxItems,
	}}, nil
}

func (ctx *Context) lowerEnum(schema *spec.Schema, hint string) (Node, error) {
	name := mint.Mint(hint, mint.CasePascal, mint.PlaceholderType, ctx.TypeScope)
	variantScope := mint.NewScope()
	variants := make([]EnumVariant, 0, len(schema.Enum))
	for _, raw := range schema.Enum {
		wire, ok := raw.(string)
		if !ok {
			wire = fmt.Sprintf("%v", raw)
		}
		ident := mint.Mint(wire, mint.CasePascal, mint.PlaceholderType, variantScope)
		variants = append(variants, EnumVariant{WireValue: wire, Ident: ident})
	}
	return Node{Kind: KindEnum, Enum: &EnumNode{
		Name:     name,
		Variants: variants,
		Docs:     schema.Description,
	}}, nil
}

// formatPrimitives maps a JSON Schema string format to its Type IR
// primitive.
var formatPrimitives = map[string]PrimitiveKind{
	"uuid":      Uuid,
	"date-time": DateTime,
	"date":      Date,
	"byte":      Bytes,
	"binary":    Bytes,
	"ipv4":      IpAddr,
	"ipv6":      IpAddr,
	"ip":        IpAddr,
	"cidr":      IpNet,
	"phone":     PhoneNumber,
	"uri":       Url,
	"url":       Url,
	"email":     Email,
}

func (ctx *Context) lowerStringPrimitive(schema *spec.Schema, hint string) (Node, error) {
	if k, ok := formatPrimitives[schema.Format]; ok {
		if needsNewtype(schema) {
			return ctx.wrapNewtype(k, schema, hint)
		}
		return Node{Kind: KindPrimitive, Primitive: k}, nil
	}
	if needsNewtype(schema) {
		return ctx.wrapNewtype(Str, schema, hint)
	}
	return Node{Kind: KindPrimitive, Primitive: Str}, nil
}

func (ctx *Context) lowerNumericPrimitive(schema *spec.Schema, hint string) (Node, error) {
	var k PrimitiveKind
	switch schema.Format {
	case "int32":
		k = I32
	case "int64":
		k = I64
	case "uint32":
		k = U32
	case "uint64":
		k = U64
	case "float":
		k = F32
	case "double":
		k = F64
	default:
		if schemautil.GetPrimaryType(schema) == "integer" {
			k = I64
		} else {
			k = F64
		}
	}
	if needsNewtype(schema) {
		return ctx.wrapNewtype(k, schema, hint)
	}
	return Node{Kind: KindPrimitive, Primitive: k}, nil
}

// needsNewtype reports whether a primitive carries enough extra
// constraints (pattern, length/range bounds) that it deserves its own named
// alias rather than appearing as a bare Primitive everywhere it's used.
func needsNewtype(schema *spec.Schema) bool {
	return schema.Pattern != "" ||
		schema.MinLength != nil || schema.MaxLength != nil ||
		schema.Minimum != nil || schema.Maximum != nil
}

func (ctx *Context) wrapNewtype(k PrimitiveKind, schema *spec.Schema, hint string) (Node, error) {
	innerID := ctx.Table.InternInline(Node{Kind: KindPrimitive, Primitive: k})
	name := mint.Mint(hint, mint.CasePascal, mint.PlaceholderType, ctx.TypeScope)
	return Node{Kind: KindNewtype, Newtype: &NewtypeNode{
		Name:  name,
		Inner: innerID,
		Docs:  schema.Description,
	}}, nil
}

func (ctx *Context) lowerOneOf(schema *spec.Schema, hint string) (Node, error) {
	if schema.Discriminator != nil {
		return ctx.lowerTaggedUnion(schema, hint)
	}
	return ctx.lowerOneOfAny(schema.OneOf, hint)
}

func (ctx *Context) lowerOneOfAny(branches []*spec.Schema, hint string) (Node, error) {
	name := mint.Mint(hint, mint.CasePascal, mint.PlaceholderType, ctx.TypeScope)
	ids := make([]TypeID, 0, len(branches))
	for i, branch := range branches {
		id, err := ctx.lowerSchema(branch, fmt.Sprintf("%s_variant_%d", hint, i+1))
		if err != nil {
			return Node{}, err
		}
		ids = append(ids, id)
	}
	return Node{Kind: KindOneOfAny, OneOfAny: &OneOfAnyNode{Name: name, Variants: ids}}, nil
}

// lowerTaggedUnion builds a TaggedUnion from a discriminated oneOf. The
// first branch alone decides the style for the whole union: if it carries
// the discriminator property inline the union is Internal, otherwise the
// tag and payload are a sibling {type, value} pair (Adjacent).
func (ctx *Context) lowerTaggedUnion(schema *spec.Schema, hint string) (Node, error) {
	disc := schema.Discriminator
	name := mint.Mint(hint, mint.CasePascal, mint.PlaceholderType, ctx.TypeScope)
	variantScope := mint.NewScope()

	style := TagAdjacent
	for _, branch := range schema.OneOf {
		resolved := branch
		if branch.Ref != "" {
			target, err := ctx.Resolver.ResolveSchema(branch.Ref)
			if err == nil {
				resolved = target
			}
		}
		if resolved.Properties != nil {
			if _, ok := resolved.Properties.Get(disc.PropertyName); ok {
				style = TagInternal
			}
		}
		break
	}

	variants := make([]UnionVariant, 0, len(schema.OneOf))
	for i, branch := range schema.OneOf {
		wireTag := wireTagFor(branch, disc, i)
		ident := mint.Mint(wireTag, mint.CasePascal, mint.PlaceholderType, variantScope)

		payloadID, err := ctx.lowerSchema(branch, fmt.Sprintf("%s_%s", hint, wireTag))
		if err != nil {
			return Node{}, err
		}
		payloadKind := PayloadStruct
		if ctx.Table.Get(payloadID).Kind != KindNamed && ctx.Table.Get(payloadID).Kind != KindStruct {
			payloadKind = PayloadNewtype
		}
		variants = append(variants, UnionVariant{
			WireTag: wireTag,
			Ident:   ident,
			Payload: payloadKind,
			Ty:      payloadID,
		})
	}

	tagField := disc.PropertyName
	contentField := ""
	if style == TagAdjacent {
		contentField = "value"
	}

	return Node{Kind: KindTaggedUnion, TaggedUnion: &TaggedUnionNode{
		Name:          name,
		Discriminator: style,
		TagField:      tagField,
		ContentField:  contentField,
		Variants:      variants,
		Docs:          schema.Description,
	}}, nil
}

func wireTagFor(branch *spec.Schema, disc *spec.Discriminator, index int) string {
	if branch.Ref != "" {
		for wire, ref := range disc.Mapping {
			if ref == branch.Ref {
				return wire
			}
		}
		if name, ok := pathutil.SchemaName(branch.Ref); ok {
			return name
		}
	}
	if branch.Title != "" {
		return branch.Title
	}
	return fmt.Sprintf("variant_%d", index+1)
}

// lowerAllOf merges compatible object allOf branches into one struct. A
// branch that isn't an object schema, or a field name collision between
// branches, falls back to embedding each branch as its own flattened field
// instead.
func (ctx *Context) lowerAllOf(schema *spec.Schema, hint string) (Node, error) {
	merged := &StructNode{
		Name:     mint.Mint(hint, mint.CasePascal, mint.PlaceholderType, ctx.TypeScope),
		Required: make(map[string]bool),
	}
	fieldScope := mint.NewScope()
	seen := make(map[string]bool)
	conflict := false

	type branchFields struct {
		required map[string]bool
		props    *spec.OrderedMap[*spec.Schema]
	}
	var collected []branchFields

	for _, branch := range schema.AllOf {
		resolved := branch
		if branch.Ref != "" {
			target, err := ctx.Resolver.ResolveSchema(branch.Ref)
			if err != nil {
				return Node{}, err
			}
			resolved = target
		}
		if schemautil.GetPrimaryType(resolved) != "object" && !(resolved.Properties != nil && resolved.Properties.Len() > 0) {
			conflict = true
			break
		}
		req := make(map[string]bool, len(resolved.Required))
		for _, r := range resolved.Required {
			req[r] = true
		}
		collected = append(collected, branchFields{required: req, props: resolved.Properties})
		if resolved.Properties != nil {
			resolved.Properties.Range(func(k string, _ *spec.Schema) bool {
				if seen[k] {
					conflict = true
					return false
				}
				seen[k] = true
				return true
			})
		}
		if conflict {
			break
		}
	}

	if conflict {
		return ctx.lowerAllOfEmbedded(schema, hint)
	}

	for _, bf := range collected {
		for k := range bf.required {
			merged.Required[k] = true
		}
		if bf.props == nil {
			continue
		}
		var rangeErr error
		bf.props.Range(func(propName string, propSchema *spec.Schema) bool {
			fieldID, err := ctx.lowerSchema(propSchema, hint+"_"+propName)
			if err != nil {
				rangeErr = err
				return false
			}
			if !bf.required[propName] {
				existing := ctx.Table.Get(fieldID)
				if existing.Kind != KindOptional {
					fieldID = ctx.Table.InternInline(Node{Kind: KindOptional, Optional: &OptionalNode{Inner: fieldID}})
				}
			}
			ident := mint.Mint(propName, mint.CaseSnake, mint.PlaceholderField, fieldScope)
			docs := ""
			if propSchema != nil {
				docs = propSchema.Description
			}
			merged.Fields = append(merged.Fields, Field{WireName: propName, Ident: ident, Ty: fieldID, Docs: docs})
			return true
		})
		if rangeErr != nil {
			return Node{}, rangeErr
		}
	}
	merged.Docs = schema.Description

	return Node{Kind: KindAllOfMerged, AllOfMerged: &AllOfMergedNode{Name: merged.Name, Struct: merged}}, nil
}

// lowerAllOfEmbedded is the fallback for allOf branches that can't be
// merged cleanly: each branch becomes its own flattened field instead.
func (ctx *Context) lowerAllOfEmbedded(schema *spec.Schema, hint string) (Node, error) {
	name := mint.Mint(hint, mint.CasePascal, mint.PlaceholderType, ctx.TypeScope)
	fieldScope := mint.NewScope()
	required := make(map[string]bool)
	fields := make([]Field, 0, len(schema.AllOf))
	for i, branch := range schema.AllOf {
		branchHint := fmt.Sprintf("%s_branch_%d", hint, i+1)
		id, err := ctx.lowerSchema(branch, branchHint)
		if err != nil {
			return Node{}, err
		}
		wireName := branchHint
		if branch.Ref != "" {
			if n, ok := pathutil.SchemaName(branch.Ref); ok {
				wireName = n
			}
		}
		ident := mint.Mint(wireName, mint.CaseSnake, mint.PlaceholderField, fieldScope)
		required[wireName] = true
		fields = append(fields, Field{WireName: wireName, Ident: ident, Ty: id})
	}
	return Node{Kind: KindAllOfMerged, AllOfMerged: &AllOfMergedNode{
		Name: name,
		Struct: &StructNode{
			Name:     name,
			Fields:   fields,
			Docs:     schema.Description,
			Required: required,
		},
	}}, nil
}

package typeir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openapitor/openapitor/spec"
)

func newCtx(schemas map[string]*spec.Schema) *Context {
	om := spec.NewOrderedMap[*spec.Schema]()
	for name, s := range schemas {
		om.Set(name, s)
	}
	doc := &spec.Document{
		OpenAPI: "3.1.0",
		Components: spec.Components{
			Schemas: om,
		},
	}
	return NewContext(spec.NewResolver(doc))
}

func strType(t string) any { return t }

func TestLowerBoolean(t *testing.T) {
	ctx := newCtx(nil)
	id, err := Lower(ctx, &spec.Schema{Type: strType("boolean")}, "flag")
	require.NoError(t, err)
	assert.Equal(t, KindPrimitive, ctx.Table.Get(id).Kind)
	assert.Equal(t, Bool, ctx.Table.Get(id).Primitive)
}

func TestLowerStringFormatUUID(t *testing.T) {
	ctx := newCtx(nil)
	id, err := Lower(ctx, &spec.Schema{Type: strType("string"), Format: "uuid"}, "id")
	require.NoError(t, err)
	assert.Equal(t, Uuid, ctx.Table.Get(id).Primitive)
}

func TestLowerNullableWrapsOptional(t *testing.T) {
	ctx := newCtx(nil)
	id, err := Lower(ctx, &spec.Schema{Type: strType("string"), Nullable: true}, "name")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindOptional, node.Kind)
	inner := ctx.Table.Get(node.Optional.Inner)
	assert.Equal(t, Str, inner.Primitive)
}

func TestLowerObjectStructFields(t *testing.T) {
	ctx := newCtx(nil)
	props := spec.NewOrderedMap[*spec.Schema]()
	props.Set("name", &spec.Schema{Type: strType("string")})
	props.Set("age", &spec.Schema{Type: strType("integer")})
	schema := &spec.Schema{
		Type:       strType("object"),
		Properties: props,
		Required:   []string{"name"},
	}
	id, err := Lower(ctx, schema, "widget")
	require.NoError(t, err)

	node := ctx.Table.Get(id)
	require.Equal(t, KindStruct, node.Kind)
	require.Len(t, node.Struct.Fields, 2)

	nameField := node.Struct.Fields[0]
	assert.Equal(t, "name", nameField.WireName)
	assert.Equal(t, "name", nameField.Ident)
	assert.Equal(t, KindPrimitive, ctx.Table.Get(nameField.Ty).Kind)

	ageField := node.Struct.Fields[1]
	ageNode := ctx.Table.Get(ageField.Ty)
	assert.Equal(t, KindOptional, ageNode.Kind, "non-required field must be wrapped Optional")
}

func TestLowerArraySequence(t *testing.T) {
	ctx := newCtx(nil)
	schema := &spec.Schema{
		Type:  strType("array"),
		Items: &spec.Schema{Type: strType("string")},
	}
	id, err := Lower(ctx, schema, "tags")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindSequence, node.Kind)
	assert.Equal(t, Str, ctx.Table.Get(node.Sequence.Inner).Primitive)
}

func TestLowerMapFromAdditionalProperties(t *testing.T) {
	ctx := newCtx(nil)
	schema := &spec.Schema{
		Type:                 strType("object"),
		AdditionalProperties: &spec.AdditionalProps{Allowed: true, Schema: &spec.Schema{Type: strType("integer")}},
	}
	id, err := Lower(ctx, schema, "counts")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindMap, node.Kind)
}

func TestLowerEnum(t *testing.T) {
	ctx := newCtx(nil)
	schema := &spec.Schema{
		Type: strType("string"),
		Enum: []any{"active", "inactive", "pending"},
	}
	id, err := Lower(ctx, schema, "status")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindEnum, node.Kind)
	require.Len(t, node.Enum.Variants, 3)
	assert.Equal(t, "active", node.Enum.Variants[0].WireValue)
	assert.Equal(t, "Active", node.Enum.Variants[0].Ident)
}

func TestLowerRefAllocatesNamedEntry(t *testing.T) {
	widget := &spec.Schema{Type: strType("object"), Properties: spec.NewOrderedMap[*spec.Schema]()}
	widget.Properties.Set("id", &spec.Schema{Type: strType("string")})
	ctx := newCtx(map[string]*spec.Schema{"Widget": widget})

	id, err := Lower(ctx, &spec.Schema{Ref: "#/components/schemas/Widget"}, "unused_hint")
	require.NoError(t, err)

	node := ctx.Table.Get(id)
	require.Equal(t, KindNamed, node.Kind)
	target := ctx.Table.Get(node.Named)
	assert.Equal(t, KindStruct, target.Kind)
	assert.Equal(t, "Widget", target.Struct.Name)
}

func TestLowerRefCycleBreaksIntoNamedEdge(t *testing.T) {
	node := &spec.Schema{Type: strType("object"), Properties: spec.NewOrderedMap[*spec.Schema]()}
	node.Properties.Set("value", &spec.Schema{Type: strType("string")})
	node.Properties.Set("next", &spec.Schema{Ref: "#/components/schemas/Node", Nullable: true})

	ctx := newCtx(map[string]*spec.Schema{"Node": node})
	id, err := Lower(ctx, &spec.Schema{Ref: "#/components/schemas/Node"}, "unused_hint")
	require.NoError(t, err)

	top := ctx.Table.Get(id)
	require.Equal(t, KindNamed, top.Kind)
	structNode := ctx.Table.Get(top.Named)
	require.Equal(t, KindStruct, structNode.Kind)

	nextField := structNode.Struct.Fields[1]
	assert.Equal(t, "next", nextField.WireName)
	// The self-reference must resolve without infinite recursion: it
	// addresses the very same TypeID as the outer Named entry.
	nextOptional := ctx.Table.Get(nextField.Ty)
	require.Equal(t, KindOptional, nextOptional.Kind)
	selfRef := ctx.Table.Get(nextOptional.Optional.Inner)
	require.Equal(t, KindNamed, selfRef.Kind)
	assert.Equal(t, top.Named, selfRef.Named)
}

func TestLowerRefIsNotDuplicatedOnSecondUse(t *testing.T) {
	widget := &spec.Schema{Type: strType("object"), Properties: spec.NewOrderedMap[*spec.Schema]()}
	widget.Properties.Set("id", &spec.Schema{Type: strType("string")})
	ctx := newCtx(map[string]*spec.Schema{"Widget": widget})

	id1, err := Lower(ctx, &spec.Schema{Ref: "#/components/schemas/Widget"}, "a")
	require.NoError(t, err)
	id2, err := Lower(ctx, &spec.Schema{Ref: "#/components/schemas/Widget"}, "b")
	require.NoError(t, err)
	assert.Equal(t, id1, id2, "same inline Named(ref) wrapper should dedup")
}

func TestInlineStructuralDedup(t *testing.T) {
	ctx := newCtx(nil)
	a, err := Lower(ctx, &spec.Schema{Type: strType("string"), Format: "email"}, "contact_email")
	require.NoError(t, err)
	b, err := Lower(ctx, &spec.Schema{Type: strType("string"), Format: "email"}, "billing_email")
	require.NoError(t, err)
	assert.Equal(t, a, b, "structurally identical inline primitives share a TypeID")
}

func TestOneOfWithoutDiscriminatorIsOneOfAny(t *testing.T) {
	ctx := newCtx(nil)
	schema := &spec.Schema{
		OneOf: []*spec.Schema{
			{Type: strType("string")},
			{Type: strType("integer")},
		},
	}
	id, err := Lower(ctx, schema, "id_or_name")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindOneOfAny, node.Kind)
	assert.Len(t, node.OneOfAny.Variants, 2)
}

func TestOneOfWithDiscriminatorIsTaggedUnion(t *testing.T) {
	cat := &spec.Schema{Type: strType("object"), Properties: spec.NewOrderedMap[*spec.Schema]()}
	cat.Properties.Set("pet_type", &spec.Schema{Type: strType("string")})
	cat.Properties.Set("meow_volume", &spec.Schema{Type: strType("integer")})
	dog := &spec.Schema{Type: strType("object"), Properties: spec.NewOrderedMap[*spec.Schema]()}
	dog.Properties.Set("pet_type", &spec.Schema{Type: strType("string")})
	dog.Properties.Set("bark_volume", &spec.Schema{Type: strType("integer")})

	ctx := newCtx(map[string]*spec.Schema{"Cat": cat, "Dog": dog})
	schema := &spec.Schema{
		OneOf: []*spec.Schema{
			{Ref: "#/components/schemas/Cat"},
			{Ref: "#/components/schemas/Dog"},
		},
		Discriminator: &spec.Discriminator{
			PropertyName: "pet_type",
			Mapping:      map[string]string{"cat": "#/components/schemas/Cat", "dog": "#/components/schemas/Dog"},
		},
	}
	id, err := Lower(ctx, schema, "pet")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindTaggedUnion, node.Kind)
	require.Equal(t, TagInternal, node.TaggedUnion.Discriminator)
	require.Len(t, node.TaggedUnion.Variants, 2)
	assert.Equal(t, "cat", node.TaggedUnion.Variants[0].WireTag)
	assert.Equal(t, "dog", node.TaggedUnion.Variants[1].WireTag)
}

func TestAllOfMergesCompatibleObjectBranches(t *testing.T) {
	base := &spec.Schema{Type: strType("object"), Properties: spec.NewOrderedMap[*spec.Schema]()}
	base.Properties.Set("id", &spec.Schema{Type: strType("string")})
	base.Required = []string{"id"}

	ext := &spec.Schema{Type: strType("object"), Properties: spec.NewOrderedMap[*spec.Schema]()}
	ext.Properties.Set("name", &spec.Schema{Type: strType("string")})

	ctx := newCtx(map[string]*spec.Schema{"Base": base})
	schema := &spec.Schema{
		AllOf: []*spec.Schema{
			{Ref: "#/components/schemas/Base"},
			ext,
		},
	}
	id, err := Lower(ctx, schema, "extended_widget")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindAllOfMerged, node.Kind)
	require.Len(t, node.AllOfMerged.Struct.Fields, 2)
	assert.True(t, node.AllOfMerged.Struct.Required["id"])
}

func TestNewtypeForConstrainedPrimitive(t *testing.T) {
	ctx := newCtx(nil)
	minLen := 3
	id, err := Lower(ctx, &spec.Schema{Type: strType("string"), MinLength: &minLen, Pattern: "^[a-z]+$"}, "slug")
	require.NoError(t, err)
	node := ctx.Table.Get(id)
	require.Equal(t, KindNewtype, node.Kind)
	assert.Equal(t, Str, ctx.Table.Get(node.Newtype.Inner).Primitive)
}

func TestEmptySchemaIsAny(t *testing.T) {
	ctx := newCtx(nil)
	id, err := Lower(ctx, &spec.Schema{}, "anything")
	require.NoError(t, err)
	assert.Equal(t, KindAny, ctx.Table.Get(id).Kind)
}

func TestNilSchemaIsEmpty(t *testing.T) {
	ctx := newCtx(nil)
	id, err := Lower(ctx, nil, "nothing")
	require.NoError(t, err)
	assert.Equal(t, KindEmpty, ctx.Table.Get(id).Kind)
}

// Package typeir lowers OpenAPI/JSON Schema into a closed, non-recursive
// Type IR: a tagged-variant Node stored in an insertion-ordered Table and
// addressed everywhere else by stable TypeID. Recursion is only ever
// expressed through a Named edge — every other Node variant is a DAG.
package typeir

// TypeID addresses one entry in a Table. The zero value never refers to a
// real entry; valid IDs start at 1.
type TypeID int

// Kind discriminates the Node tagged union.
type Kind int

const (
	KindPrimitive Kind = iota
	KindOptional
	KindSequence
	KindMap
	KindNamed
	KindStruct
	KindEnum
	KindTaggedUnion
	KindNewtype
	KindOneOfAny
	KindAllOfMerged
	KindAny
	KindEmpty
)

// PrimitiveKind enumerates the leaf scalar types.
type PrimitiveKind int

const (
	Str PrimitiveKind = iota
	Bool
	I32
	I64
	U32
	U64
	F32
	F64
	Bytes
	Uuid
	Date
	DateTime
	IpAddr
	IpNet
	PhoneNumber
	Url
	Email
	Decimal
)

// TagStyle describes how a TaggedUnion's discriminator is carried on the
// wire.
type TagStyle int

const (
	// TagInternal carries the tag inline on the payload object itself
	// (the discriminator property name is TagField).
	TagInternal TagStyle = iota
	// TagAdjacent carries {TagField: tag, ContentField: payload} as siblings.
	TagAdjacent
	// TagUntagged has no wire-visible tag; variants are tried in order.
	TagUntagged
)

// Node is one entry of the Type IR. Exactly the fields relevant to Kind are
// populated; the rest are zero.
type Node struct {
	Kind Kind

	Primitive PrimitiveKind

	Optional *OptionalNode
	Sequence *SequenceNode
	Map      *MapNode
	Named    TypeID

	Struct      *StructNode
	Enum        *EnumNode
	TaggedUnion *TaggedUnionNode
	Newtype     *NewtypeNode
	OneOfAny    *OneOfAnyNode
	AllOfMerged *AllOfMergedNode
}

// OptionalNode wraps Inner as present-xor-null.
type OptionalNode struct {
	Inner TypeID
}

// SequenceNode describes an array.
type SequenceNode struct {
	Inner  TypeID
	Unique bool
	Min    *int
	Max    *int
}

// MapNode describes an object whose values are all Value (additionalProperties).
type MapNode struct {
	Value TypeID
}

// Field is one member of a StructNode.
type Field struct {
	WireName       string
	Ident          string
	Ty             TypeID
	Docs           string
	Default        any
	FormatOverride string
}

// StructNode is a named or inline record type.
type StructNode struct {
	Name       string
	Fields     []Field
	Docs       string
	Required   map[string]bool
	Extensible bool // additionalProperties was present alongside declared properties
}

// EnumVariant is one member of an EnumNode.
type EnumVariant struct {
	WireValue string
	Ident     string
	Docs      string
}

// EnumNode is a closed string enumeration.
type EnumNode struct {
	Name     string
	Variants []EnumVariant
	Docs     string
}

// UnionPayloadKind discriminates what shape a tagged-union variant's payload
// takes.
type UnionPayloadKind int

const (
	PayloadStruct UnionPayloadKind = iota
	PayloadNewtype
	PayloadUnit
)

// UnionVariant is one arm of a TaggedUnionNode.
type UnionVariant struct {
	WireTag string
	Ident   string
	Payload UnionPayloadKind
	Ty      TypeID // valid when Payload != PayloadUnit
}

// TaggedUnionNode is an object `oneOf` distinguished by a discriminator.
type TaggedUnionNode struct {
	Name          string
	Discriminator TagStyle
	TagField      string
	ContentField  string // only meaningful for TagAdjacent
	Variants      []UnionVariant
	Docs          string
}

// NewtypeNode wraps a constrained primitive (pattern, length or range bounds) in its
// own named alias so validation lives at the type rather than being
// re-checked ad hoc at every use site.
type NewtypeNode struct {
	Name  string
	Inner TypeID
	Docs  string
}

// OneOfAnyNode is a discriminator-less `oneOf`/`anyOf`: any one of Variants
// may appear, and the emitter must try them in order to decode.
type OneOfAnyNode struct {
	Name     string
	Variants []TypeID
	Docs     string
}

// AllOfMergedNode is the result of merging compatible object `allOf`
// branches into a single struct at lowering time.
type AllOfMergedNode struct {
	Name   string
	Struct *StructNode
}

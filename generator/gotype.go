package generator

import (
	"fmt"

	"github.com/openapitor/openapitor/typeir"
)

// goType renders the Go type expression for id, following wrapper Kinds
// (Optional, Sequence, Map, Named) down to a concrete spelling. Named types
// resolve to the minted exported identifier of their target; every other
// Kind renders inline, via a format-to-Go-type switch over typeir.Node.
func (g *genState) goType(id typeir.TypeID) string {
	node := g.table.Get(id)
	switch node.Kind {
	case typeir.KindPrimitive:
		return primitiveGoType(node.Primitive)
	case typeir.KindOptional:
		inner := g.goType(node.Optional.Inner)
		if needsPointer(g.table, node.Optional.Inner) {
			return "*" + inner
		}
		return inner
	case typeir.KindSequence:
		return "[]" + g.goType(node.Sequence.Inner)
	case typeir.KindMap:
		return "map[string]" + g.goType(node.Map.Value)
	case typeir.KindNamed:
		return g.typeName(node.Named)
	case typeir.KindStruct:
		return g.typeName(id)
	case typeir.KindEnum:
		return g.typeName(id)
	case typeir.KindTaggedUnion:
		return g.typeName(id)
	case typeir.KindNewtype:
		return g.typeName(id)
	case typeir.KindOneOfAny:
		return g.typeName(id)
	case typeir.KindAllOfMerged:
		return g.typeName(id)
	case typeir.KindAny:
		return "any"
	case typeir.KindEmpty:
		return "struct{}"
	default:
		return "any"
	}
}

// needsPointer decides whether Optional's inner type should render as a Go
// pointer (scalars, so "absent" and "zero value" stay distinguishable) or
// rely on its own nil-ability (slices, maps, interfaces already do).
func needsPointer(table *typeir.Table, inner typeir.TypeID) bool {
	switch table.Get(inner).Kind {
	case typeir.KindSequence, typeir.KindMap, typeir.KindAny:
		return false
	default:
		return true
	}
}

func primitiveGoType(p typeir.PrimitiveKind) string {
	switch p {
	case typeir.Str:
		return "string"
	case typeir.Bool:
		return "bool"
	case typeir.I32:
		return "int32"
	case typeir.I64:
		return "int64"
	case typeir.U32:
		return "uint32"
	case typeir.U64:
		return "uint64"
	case typeir.F32:
		return "float32"
	case typeir.F64:
		return "float64"
	case typeir.Bytes:
		return "[]byte"
	case typeir.Uuid:
		return "uuid.UUID"
	case typeir.Date:
		return "string"
	case typeir.DateTime:
		return "time.Time"
	case typeir.IpAddr:
		return "netip.Addr"
	case typeir.IpNet:
		return "netip.Prefix"
	case typeir.PhoneNumber:
		return "string"
	case typeir.Url:
		return "*url.URL"
	case typeir.Email:
		return "string"
	case typeir.Decimal:
		return "float64"
	default:
		return "any"
	}
}

// zeroValueExpr renders a Go expression for id's zero value, valid in a
// `return zero, err` early-exit. Dispatches on Kind rather than the
// rendered type string, since a composite literal ("T{}") is only legal
// for struct/array/map/slice types — a Newtype wrapping a scalar needs a
// conversion instead, and an interface (TaggedUnion) needs nil.
func (g *genState) zeroValueExpr(id typeir.TypeID) string {
	node := g.table.Get(id)
	switch node.Kind {
	case typeir.KindOptional:
		if needsPointer(g.table, node.Optional.Inner) {
			return "nil"
		}
		return g.zeroValueExpr(node.Optional.Inner)
	case typeir.KindSequence, typeir.KindMap, typeir.KindAny, typeir.KindTaggedUnion:
		return "nil"
	case typeir.KindNamed:
		return g.zeroValueExpr(node.Named)
	case typeir.KindPrimitive:
		return primitiveZero(node.Primitive)
	case typeir.KindEnum:
		return `""`
	case typeir.KindNewtype:
		return fmt.Sprintf("%s(%s)", g.typeName(id), g.zeroValueExpr(node.Newtype.Inner))
	case typeir.KindEmpty:
		return "struct{}{}"
	default:
		// Struct, OneOfAny, AllOfMerged: all render as Go struct types, so
		// a composite literal is always legal.
		return g.goType(id) + "{}"
	}
}

func primitiveZero(p typeir.PrimitiveKind) string {
	switch p {
	case typeir.Str, typeir.Date, typeir.PhoneNumber, typeir.Email:
		return `""`
	case typeir.Bool:
		return "false"
	case typeir.I32, typeir.I64, typeir.U32, typeir.U64, typeir.F32, typeir.F64, typeir.Decimal:
		return "0"
	case typeir.Uuid:
		return "uuid.UUID{}"
	case typeir.DateTime:
		return "time.Time{}"
	case typeir.IpAddr:
		return "netip.Addr{}"
	case typeir.IpNet:
		return "netip.Prefix{}"
	default:
		// Bytes, Url: both render as nil-able Go types ([]byte, *url.URL).
		return "nil"
	}
}

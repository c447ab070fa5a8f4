package typeir

import (
	"fmt"
	"strings"

	"github.com/openapitor/openapitor/internal/maputil"
)

// canonicalKey produces a structural fingerprint of an inline Node that is
// stable across runs (no pointer addresses, no map iteration order). Two
// inline schemas producing equal keys are genuinely structurally identical
// Type IR and may share a TypeID; Named nodes are keyed by their TypeID
// alone, since a Named edge by definition cannot be inlined away.
func canonicalKey(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	fmt.Fprintf(b, "K%d{", n.Kind)
	switch n.Kind {
	case KindPrimitive:
		fmt.Fprintf(b, "p=%d", n.Primitive)
	case KindOptional:
		fmt.Fprintf(b, "inner=%d", n.Optional.Inner)
	case KindSequence:
		fmt.Fprintf(b, "inner=%d,unique=%v,min=%s,max=%s",
			n.Sequence.Inner, n.Sequence.Unique, intPtrStr(n.Sequence.Min), intPtrStr(n.Sequence.Max))
	case KindMap:
		fmt.Fprintf(b, "value=%d", n.Map.Value)
	case KindNamed:
		fmt.Fprintf(b, "id=%d", n.Named)
	case KindStruct:
		writeStruct(b, n.Struct)
	case KindEnum:
		writeEnum(b, n.Enum)
	case KindTaggedUnion:
		writeTaggedUnion(b, n.TaggedUnion)
	case KindNewtype:
		fmt.Fprintf(b, "inner=%d", n.Newtype.Inner)
	case KindOneOfAny:
		fmt.Fprintf(b, "variants=%v", n.OneOfAny.Variants)
	case KindAllOfMerged:
		writeStruct(b, n.AllOfMerged.Struct)
	case KindAny, KindEmpty:
		// no fields
	}
	b.WriteByte('}')
}

// writeStruct, writeEnum, and writeTaggedUnion deliberately omit each
// node's synthesized display Name from the key: the Name is derived from
// positional context (a property name, an operation id) and two genuinely
// identical shapes appearing at different call sites would otherwise never
// be recognized as the same structural type. Shape (fields, variants,
// requiredness) is what dedup means here; the first-inserted occurrence's
// Name wins and is reused for every later structural match.
func writeStruct(b *strings.Builder, s *StructNode) {
	fmt.Fprintf(b, "extensible=%v,required=[", s.Extensible)
	for _, k := range maputil.SortedKeys(s.Required) {
		fmt.Fprintf(b, "%s,", k)
	}
	b.WriteString("],fields=[")
	for _, f := range s.Fields {
		fmt.Fprintf(b, "(%s,%d,%s,%v),", f.WireName, f.Ty, f.FormatOverride, f.Default)
	}
	b.WriteString("]")
}

func writeEnum(b *strings.Builder, e *EnumNode) {
	b.WriteString("variants=[")
	for _, v := range e.Variants {
		fmt.Fprintf(b, "(%s),", v.WireValue)
	}
	b.WriteString("]")
}

func writeTaggedUnion(b *strings.Builder, u *TaggedUnionNode) {
	fmt.Fprintf(b, "disc=%d,tagField=%s,contentField=%s,variants=[",
		u.Discriminator, u.TagField, u.ContentField)
	for _, v := range u.Variants {
		fmt.Fprintf(b, "(%s,%d,%d),", v.WireTag, v.Payload, v.Ty)
	}
	b.WriteString("]")
}

func intPtrStr(p *int) string {
	if p == nil {
		return "nil"
	}
	return fmt.Sprintf("%d", *p)
}

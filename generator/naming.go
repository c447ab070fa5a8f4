package generator

import (
	"strings"

	"github.com/openapitor/openapitor/internal/naming"
	"github.com/openapitor/openapitor/typeir"
)

// genState carries the state threaded through one emission pass: the
// populated Type IR table and the run's configuration. Every call site
// agrees on a TypeID's spelling because names are read from the table's
// nodes rather than cached here.
type genState struct {
	table *typeir.Table
	gen   *Generator
}

// typeName returns the exported Go identifier for a named Type IR entry,
// following Named edges to their target. Every Kind that doesn't carry its
// own Name (primitives, Optional/Sequence/Map wrappers, Any, Empty) has no
// meaningful typeName; callers reach those through goType instead.
func (g *genState) typeName(id typeir.TypeID) string {
	node := g.table.Get(id)
	switch node.Kind {
	case typeir.KindStruct:
		return node.Struct.Name
	case typeir.KindEnum:
		return node.Enum.Name
	case typeir.KindTaggedUnion:
		return node.TaggedUnion.Name
	case typeir.KindNewtype:
		return node.Newtype.Name
	case typeir.KindOneOfAny:
		return node.OneOfAny.Name
	case typeir.KindAllOfMerged:
		return node.AllOfMerged.Name
	case typeir.KindNamed:
		return g.typeName(node.Named)
	default:
		return g.goType(id)
	}
}

// tagFileName derives the source file name a tag's operations render into,
// e.g. "widget-admin" -> "widget_admin.go". naming.ToSnakeCase (not mint,
// which is reserved for collision-tracked Go identifiers) is the right
// tool here: a filename is a one-off string conversion with no scope to
// disambiguate against.
func tagFileName(tag string) string {
	return naming.ToSnakeCase(tag) + ".go"
}

// tagPackageDir derives the per-tag subpackage directory name.
func tagPackageDir(tag string) string {
	return naming.ToKebabCase(tag)
}

// tagPackageName derives the Go package clause name for a tag's
// subpackage. Go package names are conventionally one lowercase word, so
// this strips the word separators naming.ToSnakeCase leaves in place
// rather than reusing tagPackageDir's kebab-case form directly (which
// isn't a legal Go identifier).
func tagPackageName(tag string) string {
	return strings.ReplaceAll(naming.ToSnakeCase(tag), "_", "")
}

// sectionHeading renders a README section heading from a raw tag/field
// name.
func sectionHeading(raw string) string {
	return naming.ToTitleCase(raw)
}

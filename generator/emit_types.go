package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/openapitor/openapitor/typeir"
)

// emitTypesFile renders every named entry of table, in insertion order,
// into a single Go source file, one declaration per entry, in the type
// table's insertion order. The majority of emission is raw
// bytes.Buffer/WriteString; the display/schema/tabular trio goes through
// the small text/template pass in templates.go.
func (g *genState) emitTypesFile() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("package types\n\n")
	buf.WriteString("import (\n")
	buf.WriteString("\t\"fmt\"\n")
	buf.WriteString("\t\"reflect\"\n")
	buf.WriteString("\t\"time\"\n")
	buf.WriteString("\n")
	buf.WriteString("\t\"github.com/google/uuid\"\n")
	buf.WriteString("\tjson \"github.com/segmentio/encoding/json\"\n")
	buf.WriteString(")\n\n")

	for _, id := range g.table.IDs() {
		node := g.table.Get(id)
		switch node.Kind {
		case typeir.KindStruct:
			if err := g.writeStruct(&buf, node.Struct); err != nil {
				return nil, err
			}
		case typeir.KindEnum:
			if err := g.writeEnum(&buf, node.Enum); err != nil {
				return nil, err
			}
		case typeir.KindTaggedUnion:
			if err := g.writeTaggedUnion(&buf, node.TaggedUnion); err != nil {
				return nil, err
			}
		case typeir.KindNewtype:
			if err := g.writeNewtype(&buf, node.Newtype); err != nil {
				return nil, err
			}
		case typeir.KindOneOfAny:
			if err := g.writeOneOfAny(&buf, node.OneOfAny); err != nil {
				return nil, err
			}
		case typeir.KindAllOfMerged:
			if err := g.writeStruct(&buf, node.AllOfMerged.Struct); err != nil {
				return nil, err
			}
		default:
			// Primitive, Optional, Sequence, Map, Any, Empty never carry a
			// top-level name and render inline wherever they're referenced.
		}
	}

	return formatAndFixImports("types.go", buf.Bytes())
}

// writeStruct emits a Go struct plus its wire (de)serialization: wire_name
// preserved via the json tag, optional-empty fields omitted on serialize
// (omitempty on every field not listed in Required), default values applied on
// deserialize (a custom UnmarshalJSON when any field declares one).
func (g *genState) writeStruct(buf *bytes.Buffer, s *typeir.StructNode) error {
	if s.Docs != "" {
		fmt.Fprintf(buf, "// %s\n", s.Docs)
	}
	fmt.Fprintf(buf, "type %s struct {\n", s.Name)
	for _, f := range s.Fields {
		goType := g.goType(f.Ty)
		if f.Docs != "" {
			fmt.Fprintf(buf, "\t// %s\n", f.Docs)
		}
		tag := f.WireName
		if !s.Required[f.WireName] {
			tag += ",omitempty"
		}
		fmt.Fprintf(buf, "\t%s %s `json:%s`\n", f.Ident, goType, strconv.Quote(tag))
	}
	if s.Extensible {
		buf.WriteString("\t// Extra is excluded from JSON encoding and decoding: additionalProperties beyond the named fields are dropped.\n")
		buf.WriteString("\tExtra map[string]any `json:\"-\"`\n")
	}
	buf.WriteString("}\n\n")

	hasDefaults := false
	for _, f := range s.Fields {
		if f.Default != nil {
			hasDefaults = true
			break
		}
	}
	if hasDefaults {
		g.writeStructDefaultUnmarshal(buf, s)
	}

	if err := g.writeDisplayMethod(buf, s.Name); err != nil {
		return err
	}
	if err := g.writeSchemaMethod(buf, s.Name, "struct"); err != nil {
		return err
	}
	if g.gen.TabledSupport {
		if err := g.writeTabularMethods(buf, s); err != nil {
			return err
		}
	}
	g.writeEqualMethod(buf, s)
	return nil
}

// writeStructDefaultUnmarshal emits a custom UnmarshalJSON that decodes
// into a field-for-field alias (breaking the recursive UnmarshalJSON call)
// then applies each field's spec default when its wire key was absent.
func (g *genState) writeStructDefaultUnmarshal(buf *bytes.Buffer, s *typeir.StructNode) {
	fmt.Fprintf(buf, "func (v *%s) UnmarshalJSON(data []byte) error {\n", s.Name)
	fmt.Fprintf(buf, "\ttype alias %s\n", s.Name)
	buf.WriteString("\tvar a alias\n")
	buf.WriteString("\tif err := json.Unmarshal(data, &a); err != nil {\n\t\treturn err\n\t}\n")
	fmt.Fprintf(buf, "\t*v = %s(a)\n", s.Name)

	var raw map[string]bool
	_ = raw // presence-of-key detection happens via a second, generic decode
	buf.WriteString("\tvar present map[string]json.RawMessage\n")
	buf.WriteString("\tif err := json.Unmarshal(data, &present); err != nil {\n\t\treturn err\n\t}\n")
	for _, f := range s.Fields {
		if f.Default == nil {
			continue
		}
		fmt.Fprintf(buf, "\tif _, ok := present[%s]; !ok {\n", strconv.Quote(f.WireName))
		fmt.Fprintf(buf, "\t\tv.%s = %s\n", f.Ident, goLiteral(f.Default))
		buf.WriteString("\t}\n")
	}
	buf.WriteString("\treturn nil\n}\n\n")
}

// goLiteral renders a JSON-decoded default value (string, float64, bool,
// nil, or a slice/map of the same) as a Go literal expression.
func goLiteral(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case nil:
		return "nil"
	default:
		return fmt.Sprintf("%#v", val)
	}
}

// writeEnum emits a closed string enumeration with parse-from-string and
// display-to-string, both bijective on wire_value.
func (g *genState) writeEnum(buf *bytes.Buffer, e *typeir.EnumNode) error {
	if e.Docs != "" {
		fmt.Fprintf(buf, "// %s\n", e.Docs)
	}
	fmt.Fprintf(buf, "type %s string\n\n", e.Name)
	buf.WriteString("const (\n")
	for _, v := range e.Variants {
		fmt.Fprintf(buf, "\t%s%s %s = %s\n", e.Name, v.Ident, e.Name, strconv.Quote(v.WireValue))
	}
	buf.WriteString(")\n\n")

	fmt.Fprintf(buf, "// Parse%s parses s against %s's wire values, bijective with String.\n", e.Name, e.Name)
	fmt.Fprintf(buf, "func Parse%s(s string) (%s, error) {\n", e.Name, e.Name)
	buf.WriteString("\tswitch s {\n")
	for _, v := range e.Variants {
		fmt.Fprintf(buf, "\tcase %s:\n\t\treturn %s%s, nil\n", strconv.Quote(v.WireValue), e.Name, v.Ident)
	}
	fmt.Fprintf(buf, "\t}\n\tvar zero %s\n\treturn zero, fmt.Errorf(%s, s)\n}\n\n", e.Name, strconv.Quote("invalid "+e.Name+" value: %q"))

	// String doubles as the bijective display form and the wire value, so
	// no separate noMethod-display stamp is needed here (unlike struct and
	// newtype, which have no natural String of their own).
	fmt.Fprintf(buf, "func (v %s) String() string { return string(v) }\n\n", e.Name)
	fmt.Fprintf(buf, "func (v %s) Equal(other %s) bool { return v == other }\n\n", e.Name, e.Name)

	return g.writeSchemaMethod(buf, e.Name, "enum")
}

// writeTaggedUnion emits an interface plus one concrete type per variant,
// each tagged with the union's discriminator metadata so the emitted
// (de)serializer can dispatch on it.
func (g *genState) writeTaggedUnion(buf *bytes.Buffer, u *typeir.TaggedUnionNode) error {
	if u.Docs != "" {
		fmt.Fprintf(buf, "// %s\n", u.Docs)
	}
	fmt.Fprintf(buf, "type %s interface {\n\tis%s()\n}\n\n", u.Name, u.Name)

	for _, v := range u.Variants {
		variantName := u.Name + v.Ident
		switch v.Payload {
		case typeir.PayloadUnit:
			fmt.Fprintf(buf, "type %s struct{}\n\n", variantName)
		case typeir.PayloadNewtype:
			fmt.Fprintf(buf, "type %s struct {\n\tValue %s\n}\n\n", variantName, g.goType(v.Ty))
		default:
			fmt.Fprintf(buf, "type %s %s\n\n", variantName, g.goType(v.Ty))
		}
		fmt.Fprintf(buf, "func (%s) is%s() {}\n\n", variantName, u.Name)
		// Display/schema-self-description attach to each concrete variant
		// type, not the TaggedUnion's own interface type (Go methods
		// cannot be declared on an interface).
		if err := g.writeDisplayMethod(buf, variantName); err != nil {
			return err
		}
		if err := g.writeSchemaMethod(buf, variantName, "oneOf variant"); err != nil {
			return err
		}
	}

	g.writeTaggedUnionCodec(buf, u)
	return nil
}

// writeTaggedUnionCodec emits Marshal/Unmarshal functions implementing the
// union's tagging style: adjacent unions nest the payload under
// ContentField; every other style carries the tag inline on the payload.
func (g *genState) writeTaggedUnionCodec(buf *bytes.Buffer, u *typeir.TaggedUnionNode) {
	fmt.Fprintf(buf, "func Marshal%s(v %s) ([]byte, error) {\n", u.Name, u.Name)
	buf.WriteString("\tswitch t := v.(type) {\n")
	for _, v := range u.Variants {
		fmt.Fprintf(buf, "\tcase %s%s:\n", u.Name, v.Ident)
		switch u.Discriminator {
		case typeir.TagAdjacent:
			fmt.Fprintf(buf, "\t\treturn json.Marshal(map[string]any{%s: %s, %s: t})\n",
				strconv.Quote(u.TagField), strconv.Quote(v.WireTag), strconv.Quote(u.ContentField))
		default:
			buf.WriteString("\t\tpayload, err := json.Marshal(t)\n")
			buf.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			buf.WriteString("\t\tvar merged map[string]any\n")
			buf.WriteString("\t\tif err := json.Unmarshal(payload, &merged); err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
			fmt.Fprintf(buf, "\t\tmerged[%s] = %s\n", strconv.Quote(u.TagField), strconv.Quote(v.WireTag))
			buf.WriteString("\t\treturn json.Marshal(merged)\n")
		}
	}
	fmt.Fprintf(buf, "\t}\n\treturn nil, fmt.Errorf(%s)\n}\n\n", strconv.Quote("unrecognized "+u.Name+" variant"))

	fmt.Fprintf(buf, "func Unmarshal%s(data []byte) (%s, error) {\n", u.Name, u.Name)
	fmt.Fprintf(buf, "\tvar disc struct {\n\t\tTag string `json:%s`\n\t}\n", strconv.Quote(u.TagField))
	buf.WriteString("\tif err := json.Unmarshal(data, &disc); err != nil {\n\t\treturn nil, err\n\t}\n")
	if u.Discriminator == typeir.TagAdjacent {
		// The payload sits under the content field, beside the tag.
		buf.WriteString("\tvar envelope map[string]json.RawMessage\n")
		buf.WriteString("\tif err := json.Unmarshal(data, &envelope); err != nil {\n\t\treturn nil, err\n\t}\n")
		fmt.Fprintf(buf, "\tdata = envelope[%s]\n", strconv.Quote(u.ContentField))
	}
	buf.WriteString("\tswitch disc.Tag {\n")
	for _, v := range u.Variants {
		fmt.Fprintf(buf, "\tcase %s:\n", strconv.Quote(v.WireTag))
		fmt.Fprintf(buf, "\t\tvar out %s%s\n", u.Name, v.Ident)
		buf.WriteString("\t\tif err := json.Unmarshal(data, &out); err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
		buf.WriteString("\t\treturn out, nil\n")
	}
	fmt.Fprintf(buf, "\t}\n\treturn nil, fmt.Errorf(%s, disc.Tag)\n}\n\n", strconv.Quote("unrecognized "+u.Name+" tag %q"))
}

// writeNewtype emits a single-field wrapper type around a constrained
// primitive.
func (g *genState) writeNewtype(buf *bytes.Buffer, n *typeir.NewtypeNode) error {
	if n.Docs != "" {
		fmt.Fprintf(buf, "// %s\n", n.Docs)
	}
	fmt.Fprintf(buf, "type %s %s\n\n", n.Name, g.goType(n.Inner))
	if err := g.writeDisplayMethod(buf, n.Name); err != nil {
		return err
	}
	// Equality goes through reflect.DeepEqual rather than ==, since the
	// underlying type may be a slice (Bytes) which isn't comparable.
	fmt.Fprintf(buf, "func (v %s) Equal(other %s) bool { return reflect.DeepEqual(v, other) }\n\n", n.Name, n.Name)
	return g.writeSchemaMethod(buf, n.Name, "newtype")
}

// writeOneOfAny emits a discriminator-less union: a wrapper struct over
// any, with an Unmarshal that tries each variant in order.
func (g *genState) writeOneOfAny(buf *bytes.Buffer, o *typeir.OneOfAnyNode) error {
	if o.Docs != "" {
		fmt.Fprintf(buf, "// %s\n", o.Docs)
	}
	fmt.Fprintf(buf, "type %s struct {\n\tValue any\n}\n\n", o.Name)
	fmt.Fprintf(buf, "func (v *%s) UnmarshalJSON(data []byte) error {\n", o.Name)
	for _, id := range o.Variants {
		fmt.Fprintf(buf, "\t{\n\t\tvar candidate %s\n\t\tif err := json.Unmarshal(data, &candidate); err == nil {\n\t\t\tv.Value = candidate\n\t\t\treturn nil\n\t\t}\n\t}\n", g.goType(id))
	}
	fmt.Fprintf(buf, "\treturn fmt.Errorf(%s)\n}\n\n", strconv.Quote("no "+o.Name+" variant matched"))
	fmt.Fprintf(buf, "func (v %s) MarshalJSON() ([]byte, error) { return json.Marshal(v.Value) }\n\n", o.Name)
	if err := g.writeDisplayMethod(buf, o.Name); err != nil {
		return err
	}
	return g.writeSchemaMethod(buf, o.Name, "oneOfAny")
}

// writeTabularMethods emits a header/row projection for CLI table output,
// gated by Generator.TabledSupport, since not every consumer renders a
// terminal table. Every field becomes one column, rendered with %v so
// the method stays valid regardless of the field's concrete Go type.
func (g *genState) writeTabularMethods(buf *bytes.Buffer, s *typeir.StructNode) error {
	fmt.Fprintf(buf, "// TableHeader returns the column names for tabular rendering of %s.\n", s.Name)
	fmt.Fprintf(buf, "func (%s) TableHeader() []string {\n\treturn []string{", s.Name)
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "%s", strconv.Quote(f.WireName))
	}
	buf.WriteString("}\n}\n\n")

	fmt.Fprintf(buf, "// TableRow returns one rendered row for tabular output of v.\n")
	fmt.Fprintf(buf, "func (v %s) TableRow() []string {\n\treturn []string{", s.Name)
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "fmt.Sprintf(\"%%v\", v.%s)", f.Ident)
	}
	buf.WriteString("}\n}\n\n")
	return nil
}

// writeEqualMethod emits a field-by-field Equal method for a struct.
// Enums and newtypes get their own Equal from writeEnum/writeNewtype;
// OneOfAny wrappers and tagged-union variants get none.
func (g *genState) writeEqualMethod(buf *bytes.Buffer, s *typeir.StructNode) {
	fmt.Fprintf(buf, "func (v %s) Equal(other %s) bool {\n", s.Name, s.Name)
	if len(s.Fields) == 0 {
		buf.WriteString("\treturn true\n}\n\n")
		return
	}
	buf.WriteString("\treturn ")
	for i, f := range s.Fields {
		if i > 0 {
			buf.WriteString(" &&\n\t\t")
		}
		if needsDeepEqual(g.table, f.Ty) {
			fmt.Fprintf(buf, "reflect.DeepEqual(v.%s, other.%s)", f.Ident, f.Ident)
		} else {
			fmt.Fprintf(buf, "v.%s == other.%s", f.Ident, f.Ident)
		}
	}
	buf.WriteString("\n}\n\n")
}

func needsDeepEqual(table *typeir.Table, id typeir.TypeID) bool {
	switch table.Get(id).Kind {
	case typeir.KindSequence, typeir.KindMap, typeir.KindStruct, typeir.KindAny, typeir.KindOneOfAny, typeir.KindAllOfMerged:
		return true
	default:
		return false
	}
}

// sortedTypeNames returns every named entry's Go identifier, deduplicated
// and sorted. No emitter currently calls it.
func (g *genState) sortedTypeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, id := range g.table.IDs() {
		node := g.table.Get(id)
		var name string
		switch node.Kind {
		case typeir.KindStruct:
			name = node.Struct.Name
		case typeir.KindEnum:
			name = node.Enum.Name
		case typeir.KindTaggedUnion:
			name = node.TaggedUnion.Name
		case typeir.KindNewtype:
			name = node.Newtype.Name
		case typeir.KindOneOfAny:
			name = node.OneOfAny.Name
		case typeir.KindAllOfMerged:
			name = node.AllOfMerged.Name
		default:
			continue
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

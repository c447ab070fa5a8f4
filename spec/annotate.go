package spec

import (
	"fmt"
	"strings"
)

// annotatePointers stamps every *Schema reachable from doc with the JSON
// pointer it was decoded from (consumed by oaserrors for location-carrying
// failures) and pulls the vendor extensions x-timeout-seconds (read by
// opir) and x-dropshot-pagination out of the raw decode.
func annotatePointers(doc *Document) {
	flat := map[string]any{}
	flattenPointers(doc.raw, "", flat)

	if doc.Components.Schemas != nil {
		doc.Components.Schemas.Range(func(name string, s *Schema) bool {
			walkSchema(s, "/components/schemas/"+escapePointerSegment(name), flat)
			return true
		})
	}

	if doc.Paths != nil {
		doc.Paths.Range(func(tmpl string, item *PathItem) bool {
			base := "/paths/" + escapePointerSegment(tmpl)
			for i, pm := range item.Parameters {
				walkSchema(pm.Schema, fmt.Sprintf("%s/parameters/%d/schema", base, i), flat)
			}
			for _, entry := range item.Operations() {
				opBase := base + "/" + entry.Verb
				annotateOperation(entry.Op, opBase, flat)
			}
			return true
		})
	}
}

func annotateOperation(op *Operation, base string, flat map[string]any) {
	if op == nil {
		return
	}
	if raw, ok := flat[base]; ok {
		if m, ok := raw.(map[string]any); ok {
			if v, ok := m["x-timeout-seconds"]; ok {
				if f, ok := toInt(v); ok {
					op.XTimeoutSeconds = &f
				}
			}
			// "security" is only meaningful to opir's auth defaulting
			// as presence-or-absence, which plain Go
			// unmarshaling into []SecurityRequirement cannot distinguish
			// from a genuinely empty array once decoded, so it's read
			// back off the flattened raw map here instead.
			if _, ok := m["security"]; ok {
				op.SecurityOverridden = true
			}
		}
	}
	for i, p := range op.Parameters {
		walkSchema(p.Schema, fmt.Sprintf("%s/parameters/%d/schema", base, i), flat)
	}
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		op.RequestBody.Content.Range(func(mt string, media *MediaType) bool {
			walkSchema(media.Schema, base+"/requestBody/content/"+escapePointerSegment(mt)+"/schema", flat)
			return true
		})
	}
	if op.Responses != nil {
		op.Responses.Range(func(status string, resp *Response) bool {
			if resp.Content != nil {
				resp.Content.Range(func(mt string, media *MediaType) bool {
					walkSchema(media.Schema, base+"/responses/"+escapePointerSegment(status)+"/content/"+escapePointerSegment(mt)+"/schema", flat)
					return true
				})
			}
			return true
		})
	}
}

func walkSchema(s *Schema, pointer string, flat map[string]any) {
	if s == nil {
		return
	}
	s.sourcePointer = pointer
	if raw, ok := flat[pointer]; ok {
		if m, ok := raw.(map[string]any); ok {
			if v, ok := m["x-dropshot-pagination"]; ok {
				if b, ok := v.(bool); ok {
					s.XDropshotPagination = b
				}
			}
		}
	}
	if s.Properties != nil {
		s.Properties.Range(func(name string, prop *Schema) bool {
			walkSchema(prop, pointer+"/properties/"+escapePointerSegment(name), flat)
			return true
		})
	}
	walkSchema(s.Items, pointer+"/items", flat)
	if s.AdditionalProperties != nil {
		walkSchema(s.AdditionalProperties.Schema, pointer+"/additionalProperties", flat)
	}
	for i, sub := range s.OneOf {
		walkSchema(sub, fmt.Sprintf("%s/oneOf/%d", pointer, i), flat)
	}
	for i, sub := range s.AnyOf {
		walkSchema(sub, fmt.Sprintf("%s/anyOf/%d", pointer, i), flat)
	}
	for i, sub := range s.AllOf {
		walkSchema(sub, fmt.Sprintf("%s/allOf/%d", pointer, i), flat)
	}
}

// flattenPointers indexes every object/array node in raw by its JSON
// pointer, so extension lookups don't need to re-walk the decode tree.
func flattenPointers(node any, pointer string, out map[string]any) {
	switch v := node.(type) {
	case map[string]any:
		out[pointer] = v
		for k, child := range v {
			flattenPointers(child, pointer+"/"+escapePointerSegment(k), out)
		}
	case []any:
		out[pointer] = v
		for i, child := range v {
			flattenPointers(child, fmt.Sprintf("%s/%d", pointer, i), out)
		}
	}
}

// escapePointerSegment escapes a raw key per RFC 6901 (~1 for '/', ~0 for '~').
func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

// unescapePointerSegment reverses escapePointerSegment.
func unescapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

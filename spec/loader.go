package spec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/openapitor/openapitor/oaserrors"
	yaml "go.yaml.in/yaml/v4"
)

// SourceFormat identifies the wire format a document was decoded from.
type SourceFormat int

const (
	FormatUnknown SourceFormat = iota
	FormatJSON
	FormatYAML
)

// Parser loads an OpenAPI 3.x document (stage A). The zero value is ready
// to use; MaxFileSize of 0 means unlimited.
type Parser struct {
	// Logger receives debug tracing. Defaults to NopLogger.
	Logger Logger
	// MaxFileSize bounds the input file size in bytes; 0 means unlimited.
	MaxFileSize int64
	// DefaultBaseURL is used to synthesize a server entry when the document
	// declares none.
	DefaultBaseURL string
}

// Warning is a non-fatal loader observation (e.g. synthesized info fields).
type Warning struct {
	Pointer string
	Message string
}

func (p *Parser) logger() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// Parse loads a document from a filesystem path, sniffing JSON vs. YAML from
// the extension first and document content second.
func (p *Parser) Parse(path string) (*Document, []Warning, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, &oaserrors.SpecLoadError{Source: path, Message: "cannot stat input file", Cause: err}
	}
	if p.MaxFileSize > 0 && info.Size() > p.MaxFileSize {
		return nil, nil, &oaserrors.SpecLoadError{Source: path, Message: fmt.Sprintf("file size %d exceeds limit %d", info.Size(), p.MaxFileSize)}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &oaserrors.SpecLoadError{Source: path, Message: "cannot read input file", Cause: err}
	}
	p.logger().Debugf("spec: loaded %d bytes from %s", len(data), path)
	return p.parseBytes(data, path, detectFormatFromPath(path))
}

// ParseReader loads a document from an io.Reader; format is sniffed from
// content only.
func (p *Parser) ParseReader(r io.Reader) (*Document, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, &oaserrors.SpecLoadError{Source: "<reader>", Message: "cannot read input", Cause: err}
	}
	return p.parseBytes(data, "<reader>", FormatUnknown)
}

// ParseBytes loads a document from an in-memory buffer.
func (p *Parser) ParseBytes(data []byte) (*Document, []Warning, error) {
	return p.parseBytes(data, "<bytes>", FormatUnknown)
}

func (p *Parser) parseBytes(data []byte, source string, hint SourceFormat) (*Document, []Warning, error) {
	format := hint
	if format == FormatUnknown {
		format = detectFormatFromContent(data)
	}

	raw, err := decodeToMap(data, format, source)
	if err != nil {
		return nil, nil, err
	}

	doc, warnings, err := buildDocument(raw, source)
	if err != nil {
		return nil, nil, err
	}
	doc.raw = raw

	if len(doc.Servers) == 0 {
		if p.DefaultBaseURL != "" {
			doc.Servers = []Server{{URL: p.DefaultBaseURL}}
			warnings = append(warnings, Warning{Pointer: "/servers", Message: "no servers declared; using configured default base URL"})
		} else {
			doc.Servers = []Server{{URL: "/"}}
			warnings = append(warnings, Warning{Pointer: "/servers", Message: "no servers declared and no default base URL configured"})
		}
	}

	p.logger().Debugf("spec: parsed document %q version %s (%d paths)", doc.Info.Title, doc.OpenAPI, doc.Paths.Len())
	return doc, warnings, nil
}

// detectFormatFromPath sniffs format from a file extension.
func detectFormatFromPath(path string) SourceFormat {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// detectFormatFromContent sniffs format from the first non-whitespace byte:
// JSON documents always open with '{' (OpenAPI's root is always an object).
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

func decodeToMap(data []byte, format SourceFormat, source string) (map[string]any, error) {
	var raw map[string]any
	switch format {
	case FormatJSON:
		// JSON fast path bypasses the YAML AST entirely.
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &oaserrors.SpecLoadError{Source: source, Message: "invalid JSON", Cause: err}
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &oaserrors.SpecLoadError{Source: source, Message: "invalid YAML", Cause: err}
		}
	}
	if raw == nil {
		return nil, &oaserrors.SpecLoadError{Source: source, Message: "document decoded to an empty object"}
	}
	return raw, nil
}

// buildDocument re-marshals the sniffed raw map through encoding/json into
// the typed Document. This is the same "decode to map[string]any first"
// idiom the patch layer depends on (stage B mutates raw before this step
// runs again during Generate), traded for strict field typing afterward.
func buildDocument(raw map[string]any, source string) (*Document, []Warning, error) {
	var warnings []Warning

	openapiVersion, _ := raw["openapi"].(string)
	if openapiVersion == "" {
		return nil, nil, &oaserrors.SpecLoadError{Source: source, Pointer: "/openapi", Message: "missing or non-3.x \"openapi\" version field"}
	}
	if !strings.HasPrefix(openapiVersion, "3.") {
		return nil, nil, &oaserrors.SpecLoadError{Source: source, Pointer: "/openapi", Message: fmt.Sprintf("unsupported OpenAPI version %q (only 3.x is supported)", openapiVersion)}
	}

	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, nil, &oaserrors.SpecLoadError{Source: source, Message: "document is not representable as JSON", Cause: err}
	}

	doc := &Document{}
	if err := json.Unmarshal(jsonBytes, doc); err != nil {
		return nil, nil, &oaserrors.SpecLoadError{Source: source, Message: "document does not match the OpenAPI 3.x object model", Cause: err}
	}

	if doc.Info.Title == "" {
		warnings = append(warnings, Warning{Pointer: "/info/title", Message: "info.title absent; synthesized empty string"})
	}
	if doc.Info.Version == "" {
		warnings = append(warnings, Warning{Pointer: "/info/version", Message: "info.version absent; synthesized empty string"})
	}

	annotatePointers(doc)

	return doc, warnings, nil
}

// Package generator drives the full Loaded -> Patched -> Resolved -> Named
// -> TypeIR -> OperationIR -> Rendered -> Written pipeline: it loads and
// optionally patches an OpenAPI document, resolves and lowers every schema
// it can reach (including component schemas no operation references) into
// the Type IR, builds the Operation IR, and emits a complete Go workspace.
package generator

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/openapitor/openapitor/internal/issues"
	"github.com/openapitor/openapitor/internal/pathutil"
	"github.com/openapitor/openapitor/internal/severity"
	"github.com/openapitor/openapitor/oaserrors"
	"github.com/openapitor/openapitor/opir"
	"github.com/openapitor/openapitor/spec"
	"github.com/openapitor/openapitor/spec/patch"
	"github.com/openapitor/openapitor/typeir"
)

// GeneratedFile is one file staged for the output workspace, named relative
// to the workspace root (e.g. "types/types.go", "widget-admin/widget_admin.go").
type GeneratedFile struct {
	Name    string
	Content []byte
}

// GenerateResult holds everything produced by a single Generate/GenerateParsed
// call. Files is only populated on a fully successful run: a pipeline stage
// that fails returns a nil result and an error instead of a partial Files
// slice, so a caller never has to guess whether a staged tree is complete.
type GenerateResult struct {
	Files []GeneratedFile

	Issues        []issues.Issue
	InfoCount     int
	WarningCount  int
	CriticalCount int
	Success       bool

	LoadTime     time.Duration
	GenerateTime time.Duration

	GeneratedTypes      int
	GeneratedOperations int
}

// HasCriticalIssues reports whether any issue reached SeverityCritical.
func (r *GenerateResult) HasCriticalIssues() bool { return r.CriticalCount > 0 }

// HasWarnings reports whether any issue reached SeverityWarning or above.
func (r *GenerateResult) HasWarnings() bool { return r.WarningCount > 0 }

// GetFile returns the generated file with the given workspace-relative name,
// or nil if not found.
func (r *GenerateResult) GetFile(name string) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Name == name {
			return &r.Files[i]
		}
	}
	return nil
}

// Generator configures one code-generation run. The zero value is not
// ready to use; call New for defaults.
type Generator struct {
	// ModulePath is the generated workspace's module path, e.g.
	// "github.com/acme/widgetclient". Required.
	ModulePath string

	// PackageName is the Go package name for the root client package.
	// Defaults to "api".
	PackageName string

	// Description seeds the generated README when the source document's
	// info.description is empty.
	Description string

	// RepoName titles the generated README when the source document's
	// info.title is empty. It has no default.
	RepoName string

	// TargetVersion is stamped into VERSION.txt.
	TargetVersion string

	// BaseURL is the generated client's default server: when set it takes
	// precedence over the document's first server URL, and it seeds
	// spec.Parser.DefaultBaseURL when the source document declares no
	// servers.
	BaseURL string

	// SpecURL, when set, is linked from the generated README as the
	// location of the source document.
	SpecURL string

	// RequestTimeoutSeconds is the default per-request timeout stamped into
	// the generated utils.Client. Defaults to 30.
	RequestTimeoutSeconds int

	// TabledSupport gates emission of tabular header/row projection methods
	// on generated structs. Default false.
	TabledSupport bool

	// RetrySupport records the retry feature gate. Default false. No
	// emitted file varies with it: the generated utils.Client has no
	// retrying transport.
	RetrySupport bool

	// JSSupport records the js feature gate. Default false. No emitted file
	// varies with it: no WASM-safe HTTP transport is emitted.
	JSSupport bool
}

// New returns a Generator with the documented defaults. ModulePath must
// still be set before calling Generate.
func New() *Generator {
	return &Generator{
		PackageName:           "api",
		RequestTimeoutSeconds: 30,
	}
}

// Generate loads specPath (a file path understood by spec.Parser.Parse),
// optionally applies an RFC 6902 JSON Patch document, and runs the full
// pipeline. patchJSON may be nil to skip the Patched stage.
func (g *Generator) Generate(specPath string, patchJSON []byte) (*GenerateResult, error) {
	loadStart := time.Now()

	p := &spec.Parser{DefaultBaseURL: g.BaseURL}
	doc, _, err := p.Parse(specPath)
	if err != nil {
		return nil, err
	}

	if len(patchJSON) > 0 {
		doc, err = g.applyPatch(doc, patchJSON, p)
		if err != nil {
			return nil, err
		}
	}

	loadTime := time.Since(loadStart)
	result, err := g.GenerateParsed(doc)
	if err != nil {
		return nil, err
	}
	result.LoadTime = loadTime
	return result, nil
}

// applyPatch re-decodes doc to the map[string]any representation patch.Apply
// expects, applies the patch, and re-parses the patched JSON back through p.
// The document is re-decoded rather than mutated field-by-field because
// patch.Apply's RFC 6902 operations are defined over a raw JSON tree, the
// same representation spec.Parser itself decodes to before building the
// typed Document.
func (g *Generator) applyPatch(doc *spec.Document, patchJSON []byte, p *spec.Parser) (*spec.Document, error) {
	raw, err := marshalRaw(doc)
	if err != nil {
		return nil, &oaserrors.PatchError{OpIndex: -1, Message: "cannot re-decode document for patching", Cause: err}
	}

	result, err := patch.Apply(raw, patchJSON)
	if err != nil {
		return nil, err
	}

	patched, err := json.Marshal(result.Document)
	if err != nil {
		return nil, &oaserrors.PatchError{OpIndex: -1, Message: "patched document is not representable as JSON", Cause: err}
	}

	patchedDoc, _, err := p.ParseBytes(patched)
	if err != nil {
		return nil, err
	}
	return patchedDoc, nil
}

// marshalRaw round-trips doc through encoding/json to recover the
// map[string]any tree patch.Apply operates on.
func marshalRaw(doc *spec.Document) (map[string]any, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GenerateParsed runs the Resolved -> Written stages of the pipeline
// against an already-loaded document.
func (g *Generator) GenerateParsed(doc *spec.Document) (*GenerateResult, error) {
	genStart := time.Now()

	if g.ModulePath == "" {
		return nil, fmt.Errorf("generator: ModulePath must be set")
	}

	resolver := spec.NewResolver(doc)
	ctx := typeir.NewContext(resolver)

	if err := preLowerComponentSchemas(doc, ctx); err != nil {
		return nil, err
	}

	methods, opIssues, err := opir.Build(doc, ctx)
	if err != nil {
		return nil, err
	}

	gs := &genState{table: ctx.Table, gen: g}

	typesFile, err := gs.emitTypesFile()
	if err != nil {
		return nil, &oaserrors.RenderError{File: "types/types.go", Message: "rendering types file", Cause: err}
	}

	byTag := groupMethodsByTag(methods)
	tags := sortedTags(byTag)

	var opFiles []GeneratedFile
	for _, tag := range tags {
		content, err := gs.emitOperationsFile(tag, byTag[tag])
		if err != nil {
			return nil, &oaserrors.RenderError{File: tagFileName(tag), Message: "rendering operations file for tag " + tag, Cause: err}
		}
		opFiles = append(opFiles, GeneratedFile{
			Name:    tagPackageDir(tag) + "/" + tagFileName(tag),
			Content: content,
		})
	}

	files := []GeneratedFile{{Name: "types/types.go", Content: typesFile}}
	files = append(files, opFiles...)

	workspaceFiles, err := g.assembleWorkspace(doc, tags)
	if err != nil {
		return nil, err
	}
	files = append(files, workspaceFiles...)

	result := &GenerateResult{
		Files:               files,
		Issues:              opIssues,
		GeneratedTypes:      ctx.Table.Len(),
		GeneratedOperations: len(methods),
	}
	g.updateCounts(result)
	result.GenerateTime = time.Since(genStart)
	result.Success = result.CriticalCount == 0
	return result, nil
}

// preLowerComponentSchemas lowers every components.schemas entry through
// ctx, even when no operation references it. opir.Build only lowers
// schemas reachable from path/operation walks, so a named schema declared
// purely for reuse or documentation purposes would otherwise never earn a
// TypeID and would silently vanish from the generated types package. Each
// entry is lowered via a synthetic $ref (not the resolved body directly) so
// it goes through the same NamedID/ReserveNamed cycle-safe path a real
// operation reference would, and a second reference to the same schema
// reuses the TypeID instead of emitting a duplicate type.
func preLowerComponentSchemas(doc *spec.Document, ctx *typeir.Context) error {
	if doc.Components.Schemas == nil {
		return nil
	}
	for _, name := range doc.Components.Schemas.Keys() {
		refSchema := &spec.Schema{Ref: pathutil.SchemaRef(name)}
		if _, err := typeir.Lower(ctx, refSchema, name); err != nil {
			return err
		}
	}
	return nil
}

func groupMethodsByTag(methods []opir.Method) map[string][]opir.Method {
	byTag := make(map[string][]opir.Method)
	for _, m := range methods {
		byTag[m.Tag] = append(byTag[m.Tag], m)
	}
	return byTag
}

func sortedTags(byTag map[string][]opir.Method) []string {
	tags := make([]string, 0, len(byTag))
	for tag := range byTag {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (g *Generator) updateCounts(result *GenerateResult) {
	result.InfoCount = 0
	result.WarningCount = 0
	result.CriticalCount = 0
	for _, issue := range result.Issues {
		switch issue.Severity {
		case severity.SeverityInfo:
			result.InfoCount++
		case severity.SeverityWarning:
			result.WarningCount++
		case severity.SeverityCritical:
			result.CriticalCount++
		}
	}
}

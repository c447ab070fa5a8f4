package opir

import (
	"fmt"
	"strings"

	"github.com/openapitor/openapitor/internal/httputil"
	"github.com/openapitor/openapitor/internal/issues"
	"github.com/openapitor/openapitor/internal/severity"
	"github.com/openapitor/openapitor/mint"
	"github.com/openapitor/openapitor/oaserrors"
	"github.com/openapitor/openapitor/spec"
	"github.com/openapitor/openapitor/typeir"
)

// contentTypePreference is the content-type preference order pickContent
// applies when a request or response body declares more than one media type.
var contentTypePreference = []struct {
	mediaType string
	kind      BodyKind
}{
	{"application/json", BodyJSON},
	{"application/x-www-form-urlencoded", BodyFormURLEncoded},
	{"multipart/form-data", BodyMultipart},
	{"application/octet-stream", BodyBytes},
	{"text/plain", BodyBytes},
}

const defaultTag = "default"

// Build walks every (path, verb) pair of doc, lowering parameter, body, and
// response schemas through ctx (the typeir lowering context already seeded
// with doc's resolver) into a Method IR slice. Non-fatal degradations
// (unknown content types, unvalidated status codes, and similar) are
// returned as Issues alongside a successful result; only a structural
// problem that leaves no reasonable IR to emit is a fatal error.
func Build(doc *spec.Document, ctx *typeir.Context) ([]Method, []issues.Issue, error) {
	if doc.Paths == nil {
		return nil, nil, nil
	}

	b := &builder{
		doc:       doc,
		ctx:       ctx,
		tagScopes: make(map[string]*mint.Scope),
	}

	var methods []Method
	for _, path := range doc.Paths.Keys() {
		item, _ := doc.Paths.Get(path)
		for _, pv := range item.Operations() {
			m, err := b.buildMethod(path, pv.Verb, pv.Op, item.Parameters)
			if err != nil {
				return nil, b.issues, err
			}
			methods = append(methods, *m)
		}
	}
	return methods, b.issues, nil
}

type builder struct {
	doc       *spec.Document
	ctx       *typeir.Context
	tagScopes map[string]*mint.Scope
	issues    []issues.Issue
}

func (b *builder) addIssue(path, msg string, sev severity.Severity) {
	b.issues = append(b.issues, issues.Issue{Path: path, Message: msg, Severity: sev})
}

func (b *builder) buildMethod(path, verb string, op *spec.Operation, pathLevelParams []*spec.Parameter) (*Method, error) {
	pointer := fmt.Sprintf("paths.%s.%s", path, verb)
	tag := firstTag(op.Tags)

	scope := b.tagScopes[tag]
	if scope == nil {
		scope = mint.NewScope()
		b.tagScopes[tag] = scope
	}

	opID := op.OperationID
	if opID == "" {
		opID = verb + " " + pathToWords(path)
	}
	methodName := mint.Mint(opID, mint.CasePascal, mint.PlaceholderType, scope)

	m := &Method{
		OpID:        methodName,
		Tag:         tag,
		Path:        path,
		Verb:        verb,
		Summary:     op.Summary,
		Description: op.Description,
		Deprecated:  op.Deprecated,
		Responses:   make(map[string]Response),
	}

	paramScope := mint.NewScope()
	merged := mergeParams(pathLevelParams, op.Parameters)
	for _, p := range merged {
		param, loc, err := b.lowerParam(pointer, p, paramScope)
		if err != nil {
			return nil, err
		}
		switch loc {
		case InPath:
			m.PathParams = append(m.PathParams, *param)
		case InQuery:
			m.QueryParams = append(m.QueryParams, *param)
		case InHeader:
			m.HeaderParams = append(m.HeaderParams, *param)
		}
	}

	body, err := b.lowerRequestBody(pointer, op.RequestBody, methodName)
	if err != nil {
		return nil, err
	}
	m.Body = body

	if op.Responses != nil {
		for _, status := range op.Responses.Keys() {
			resp, _ := op.Responses.Get(status)
			shape, err := b.lowerResponse(pointer, status, resp, methodName)
			if err != nil {
				return nil, err
			}
			if !httputil.ValidateStatusCode(status) {
				b.addIssue(pointer+".responses."+status, "non-standard status code pattern, treating as literal", severity.SeverityWarning)
			}
			m.Responses[status] = shape
		}
	}

	m.Pagination = b.inferPagination(*m)
	m.Auth = resolveAuth(op)

	if op.XTimeoutSeconds != nil {
		m.TimeoutHint = op.XTimeoutSeconds
	}

	return m, nil
}

// firstTag returns the operation's first declared tag, or the default
// group when untagged.
func firstTag(tags []string) string {
	if len(tags) == 0 {
		return defaultTag
	}
	return tags[0]
}

// pathToWords turns "/pets/{petId}/photos" into " pets By petId photos",
// giving mint's own tokenization a readable fallback when an operation
// carries no explicit operationId.
func pathToWords(path string) string {
	words := strings.ReplaceAll(path, "/", " ")
	words = strings.ReplaceAll(words, "{", "By ")
	words = strings.ReplaceAll(words, "}", "")
	return words
}

// mergeParams combines path-item-level parameters with operation-level
// parameters, the latter overriding the former when both declare the same
// (name, in) pair, per OAS3 semantics.
func mergeParams(pathLevel, opLevel []*spec.Parameter) []*spec.Parameter {
	if len(pathLevel) == 0 {
		return opLevel
	}
	out := make([]*spec.Parameter, 0, len(pathLevel)+len(opLevel))
	seen := make(map[string]bool, len(opLevel))
	for _, p := range opLevel {
		seen[p.In+"\x00"+p.Name] = true
	}
	for _, p := range pathLevel {
		if !seen[p.In+"\x00"+p.Name] {
			out = append(out, p)
		}
	}
	out = append(out, opLevel...)
	return out
}

func (b *builder) lowerParam(pointer string, p *spec.Parameter, scope *mint.Scope) (*Param, ParamLocation, error) {
	if p.Ref != "" {
		resolved, err := b.ctx.Resolver.ResolveParameter(p.Ref, map[string]bool{})
		if err != nil {
			return nil, 0, err
		}
		p = resolved
	}

	loc, ok := paramLocation(p.In)
	if !ok {
		return nil, 0, &oaserrors.SchemaLoweringError{Pointer: pointer, Message: "unsupported parameter location: " + p.In}
	}

	ty, err := typeir.Lower(b.ctx, p.Schema, p.Name)
	if err != nil {
		return nil, 0, err
	}

	style := p.Style
	if style == "" {
		style = defaultStyle(loc)
	}
	explode := defaultExplode(style)
	if p.Explode != nil {
		explode = *p.Explode
	}

	return &Param{
		WireName: p.Name,
		Ident:    mint.Mint(p.Name, mint.CaseCamel, mint.PlaceholderField, scope),
		Ty:       ty,
		Required: p.Required || loc == InPath,
		Style:    style,
		Explode:  explode,
	}, loc, nil
}

func paramLocation(in string) (ParamLocation, bool) {
	switch in {
	case "path":
		return InPath, true
	case "query":
		return InQuery, true
	case "header":
		return InHeader, true
	default:
		// "cookie" and anything else: not modeled, caller surfaces as an error.
		return 0, false
	}
}

// defaultStyle is the OAS3 default serialization style per parameter
// location when the spec author didn't specify one.
func defaultStyle(loc ParamLocation) string {
	switch loc {
	case InQuery:
		return "form"
	default:
		return "simple"
	}
}

// defaultExplode is the OAS3 default explode value for a given style.
func defaultExplode(style string) bool {
	return style == "form"
}

func (b *builder) lowerRequestBody(pointer string, rb *spec.RequestBody, methodName string) (Body, error) {
	if rb == nil {
		return Body{Kind: BodyNone}, nil
	}
	if rb.Ref != "" {
		resolved, err := b.ctx.Resolver.ResolveRequestBody(rb.Ref)
		if err != nil {
			return Body{}, err
		}
		rb = resolved
	}
	if rb.Content == nil {
		return Body{Kind: BodyNone}, nil
	}

	mediaType, mt, kind, ok := pickContent(rb.Content)
	if !ok {
		b.addIssue(pointer+".requestBody", "no recognized request content type, no body will be encoded", severity.SeverityWarning)
		return Body{Kind: BodyNone}, nil
	}

	if kind == BodyMultipart {
		return b.lowerMultipart(mt, methodName)
	}

	if mt.Schema == nil {
		return Body{Kind: kind}, nil
	}
	ty, err := typeir.Lower(b.ctx, mt.Schema, methodName+"_body")
	if err != nil {
		return Body{}, err
	}

	if kind == BodyBytes && mediaType != "application/octet-stream" && mediaType != "text/plain" {
		b.addIssue(pointer+".requestBody", "unrecognized content type "+mediaType+", degrading to raw bytes", severity.SeverityWarning)
	}

	return Body{Kind: kind, Ty: ty}, nil
}

func (b *builder) lowerMultipart(mt *spec.MediaType, methodName string) (Body, error) {
	if mt.Schema == nil || mt.Schema.Properties == nil {
		return Body{Kind: BodyMultipart}, nil
	}
	var parts []Part
	for _, name := range mt.Schema.Properties.Keys() {
		propSchema, _ := mt.Schema.Properties.Get(name)
		ty, err := typeir.Lower(b.ctx, propSchema, methodName+"_"+name)
		if err != nil {
			return Body{}, err
		}
		isFile := propSchema != nil && (propSchema.Format == "binary" || propSchema.Format == "byte")
		parts = append(parts, Part{Name: name, Ty: ty, Filename: isFile})
	}
	return Body{Kind: BodyMultipart, Parts: parts}, nil
}

// pickContent selects the first content entry matching contentTypePreference
// order, falling back to the first declared entry (degraded to Bytes) when
// none of the known media types are present.
func pickContent(content *spec.OrderedMap[*spec.MediaType]) (string, *spec.MediaType, BodyKind, bool) {
	for _, pref := range contentTypePreference {
		if mt, ok := content.Get(pref.mediaType); ok {
			return pref.mediaType, mt, pref.kind, true
		}
	}
	keys := content.Keys()
	if len(keys) == 0 {
		return "", nil, BodyNone, false
	}
	mt, _ := content.Get(keys[0])
	return keys[0], mt, BodyBytes, true
}

func (b *builder) lowerResponse(pointer, status string, resp *spec.Response, methodName string) (Response, error) {
	if resp == nil {
		return Response{Kind: RespUnit}, nil
	}
	if resp.Ref != "" {
		resolved, err := b.ctx.Resolver.ResolveResponse(resp.Ref, map[string]bool{})
		if err != nil {
			return Response{}, err
		}
		resp = resolved
	}

	if status == "101" {
		return Response{Kind: RespWebsocketUpgrade}, nil
	}

	if resp.Content == nil {
		return Response{Kind: RespUnit}, nil
	}

	// A newline-delimited or server-sent-event body is a Stream of the
	// declared schema's element type, checked ahead of the content-type
	// preference order pickContent applies below.
	for _, streamMediaType := range []string{"application/x-ndjson", "application/jsonlines", "text/event-stream"} {
		if mt, ok := resp.Content.Get(streamMediaType); ok {
			if mt.Schema == nil {
				return Response{Kind: RespStream}, nil
			}
			ty, err := typeir.Lower(b.ctx, mt.Schema, methodName+"_"+status+"_item")
			if err != nil {
				return Response{}, err
			}
			return Response{Kind: RespStream, Ty: ty}, nil
		}
	}

	mediaType, mt, _, ok := pickContent(resp.Content)
	if !ok {
		return Response{Kind: RespUnit}, nil
	}

	switch {
	case mediaType == "application/octet-stream":
		return Response{Kind: RespBytes}, nil
	case mediaType == "text/plain":
		return Response{Kind: RespText}, nil
	case mt.Schema == nil:
		return Response{Kind: RespUnit}, nil
	default:
		ty, err := typeir.Lower(b.ctx, mt.Schema, methodName+"_"+status+"_response")
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: RespJSON, Ty: ty}, nil
	}
}

// inferPagination detects cursor pagination: a query parameter named
// page_token (or next_page) paired with a success body struct carrying an
// "items" field plus a "next_page"/"next_page_token" field marks the
// method Cursor-paginated.
func (b *builder) inferPagination(m Method) Pagination {
	var pageParam string
	for _, p := range m.QueryParams {
		if p.WireName == "page_token" || p.WireName == "next_page" {
			pageParam = p.WireName
			break
		}
	}
	if pageParam == "" {
		return Pagination{Kind: PaginationNone}
	}

	success, ok := m.Responses["200"]
	if !ok {
		success, ok = m.Responses["201"]
	}
	if !ok || success.Kind != RespJSON {
		return Pagination{Kind: PaginationNone}
	}

	structNode := unwrapStruct(b.ctx.Table, success.Ty)
	if structNode == nil {
		return Pagination{Kind: PaginationNone}
	}

	var itemsField, nextField string
	for _, f := range structNode.Fields {
		switch f.WireName {
		case "items":
			itemsField = f.WireName
		case "next_page", "next_page_token":
			nextField = f.WireName
		}
	}
	if itemsField == "" || nextField == "" {
		return Pagination{Kind: PaginationNone}
	}

	return Pagination{
		Kind:            PaginationCursor,
		PageParam:       pageParam,
		ItemsField:      itemsField,
		NextCursorField: nextField,
	}
}

// unwrapStruct follows Named/Optional wrapper nodes down to the underlying
// StructNode, if any, so pagination-shape detection works whether the
// success body was a direct inline object or a $ref to a named schema.
func unwrapStruct(table *typeir.Table, id typeir.TypeID) *typeir.StructNode {
	for range [8]struct{}{} { // generous bound against any wrapper chain
		node := table.Get(id)
		switch node.Kind {
		case typeir.KindStruct:
			return node.Struct
		case typeir.KindNamed:
			id = node.Named
		case typeir.KindOptional:
			id = node.Optional.Inner
		default:
			return nil
		}
	}
	return nil
}

// resolveAuth decides whether an operation requires bearer auth: it is the
// default, overridden per-operation by an explicit (possibly empty) security
// array.
func resolveAuth(op *spec.Operation) bool {
	if op.SecurityOverridden {
		return len(op.Security) > 0
	}
	return true
}

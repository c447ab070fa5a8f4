package generator

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/openapitor/openapitor/internal/naming"
	"github.com/openapitor/openapitor/opir"
	"github.com/openapitor/openapitor/typeir"
)

// emitOperationsFile renders every Method belonging to one tag into that
// tag's subpackage: a Service type wrapping the shared utils.Client, one
// method per (path, verb), plus a companion *Seq iterator for every
// cursor-paginated method. Grounded on generateClientMethod's per-operation
// bytes.Buffer walk, generalized to consume opir.Method instead of
// *parser.Operation directly.
func (g *genState) emitOperationsFile(tag string, methods []opir.Method) ([]byte, error) {
	pkg := tagPackageName(tag)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Package %s groups the %s operations of the generated client.\n", pkg, tag)
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	buf.WriteString("import (\n")
	buf.WriteString("\t\"bytes\"\n")
	buf.WriteString("\t\"context\"\n")
	buf.WriteString("\t\"fmt\"\n")
	buf.WriteString("\t\"io\"\n")
	buf.WriteString("\t\"iter\"\n")
	buf.WriteString("\t\"net/http\"\n")
	buf.WriteString("\t\"net/url\"\n")
	buf.WriteString("\t\"strings\"\n")
	buf.WriteString("\t\"time\"\n")
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "\tjson \"github.com/segmentio/encoding/json\"\n")
	fmt.Fprintf(&buf, "\t%q\n", g.gen.ModulePath+"/types")
	fmt.Fprintf(&buf, "\t%q\n", g.gen.ModulePath+"/internal/utils")
	buf.WriteString(")\n\n")

	fmt.Fprintf(&buf, "// Service groups every %s operation behind the shared client.\n", tag)
	buf.WriteString("type Service struct {\n\tClient *utils.Client\n}\n\n")
	buf.WriteString("// New wraps an already-constructed utils.Client for this tag's operations.\n")
	buf.WriteString("func New(client *utils.Client) *Service { return &Service{Client: client} }\n\n")
	buf.WriteString("// stringifyAll renders each element of items via fmt.Sprintf(\"%v\", ...), for\n")
	buf.WriteString("// comma-joining array-valued query/header parameters.\n")
	buf.WriteString("func stringifyAll[T any](items []T) []string {\n")
	buf.WriteString("\tout := make([]string, len(items))\n")
	buf.WriteString("\tfor i, v := range items {\n\t\tout[i] = fmt.Sprintf(\"%v\", v)\n\t}\n")
	buf.WriteString("\treturn out\n}\n\n")

	for _, m := range methods {
		if err := g.writeOperation(&buf, m); err != nil {
			return nil, err
		}
		if m.Pagination.Kind == opir.PaginationCursor {
			if err := g.writePaginationSeq(&buf, m); err != nil {
				return nil, err
			}
		}
	}

	return formatAndFixImports(tagFileName(tag), buf.Bytes())
}

// opGoType renders id's Go type as referenced from an operation subpackage:
// identical to genState.goType, except every named type carries the types.
// package qualifier, since operations live in their own per-tag subpackage
// rather than alongside the generated type declarations.
func (g *genState) opGoType(id typeir.TypeID) string {
	node := g.table.Get(id)
	switch node.Kind {
	case typeir.KindOptional:
		inner := g.opGoType(node.Optional.Inner)
		if needsPointer(g.table, node.Optional.Inner) {
			return "*" + inner
		}
		return inner
	case typeir.KindSequence:
		return "[]" + g.opGoType(node.Sequence.Inner)
	case typeir.KindMap:
		return "map[string]" + g.opGoType(node.Map.Value)
	case typeir.KindNamed:
		return g.opGoType(node.Named)
	case typeir.KindStruct, typeir.KindEnum, typeir.KindTaggedUnion, typeir.KindNewtype, typeir.KindOneOfAny, typeir.KindAllOfMerged:
		return "types." + g.typeName(id)
	default:
		return g.goType(id)
	}
}

// opZeroValueExpr is zeroValueExpr's cross-package counterpart, qualifying
// Newtype conversions with the types. package prefix.
func (g *genState) opZeroValueExpr(id typeir.TypeID) string {
	node := g.table.Get(id)
	switch node.Kind {
	case typeir.KindOptional:
		if needsPointer(g.table, node.Optional.Inner) {
			return "nil"
		}
		return g.opZeroValueExpr(node.Optional.Inner)
	case typeir.KindNamed:
		return g.opZeroValueExpr(node.Named)
	case typeir.KindNewtype:
		return fmt.Sprintf("types.%s(%s)", g.typeName(id), g.opZeroValueExpr(node.Newtype.Inner))
	case typeir.KindStruct, typeir.KindOneOfAny, typeir.KindAllOfMerged:
		return g.opGoType(id) + "{}"
	default:
		return g.zeroValueExpr(id)
	}
}

// successResponse picks the canonical 2xx shape that governs a method's Go
// return type: the first of the conventional success codes present, else
// the first status sorted whose pattern starts with "2", else "default",
// else the first declared status in sorted order.
func successResponse(m opir.Method) (string, opir.Response, bool) {
	for _, status := range []string{"200", "201", "202", "204"} {
		if r, ok := m.Responses[status]; ok {
			return status, r, true
		}
	}
	var statuses []string
	for status := range m.Responses {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		if strings.HasPrefix(status, "2") {
			return status, m.Responses[status], true
		}
	}
	if r, ok := m.Responses["default"]; ok {
		return "default", r, true
	}
	if len(statuses) > 0 {
		return statuses[0], m.Responses[statuses[0]], true
	}
	return "", opir.Response{}, false
}

// orderedParam is one signature parameter, carrying enough to both declare
// it and reference it later in the method body.
type orderedParam struct {
	p        opir.Param
	loc      opir.ParamLocation
	required bool
}

// paramIsPointer decides whether an optional parameter renders as a Go
// pointer. A slice/map-typed parameter is already nil-able, so it stays
// unwrapped even when optional; only scalar types need the pointer to
// distinguish "absent" from "zero value".
func (g *genState) paramIsPointer(op orderedParam) bool {
	return !op.required && needsPointer(g.table, op.p.Ty)
}

// signatureParams returns m's parameters in the fixed order: required path,
// required query, required header, then optional query, optional header.
// Path parameters are always required in OAS and always precede everything
// else, keeping signatures stable across schema revisions that add an
// optional parameter later.
func signatureParams(m opir.Method) []orderedParam {
	var out []orderedParam
	for _, p := range m.PathParams {
		out = append(out, orderedParam{p, opir.InPath, true})
	}
	for _, p := range m.QueryParams {
		if p.Required {
			out = append(out, orderedParam{p, opir.InQuery, true})
		}
	}
	for _, p := range m.HeaderParams {
		if p.Required {
			out = append(out, orderedParam{p, opir.InHeader, true})
		}
	}
	for _, p := range m.QueryParams {
		if !p.Required {
			out = append(out, orderedParam{p, opir.InQuery, false})
		}
	}
	for _, p := range m.HeaderParams {
		if !p.Required {
			out = append(out, orderedParam{p, opir.InHeader, false})
		}
	}
	return out
}

// writeOperation emits one Service method for m.
func (g *genState) writeOperation(buf *bytes.Buffer, m opir.Method) error {
	_, success, hasSuccess := successResponse(m)
	websocket := hasSuccess && success.Kind == opir.RespWebsocketUpgrade

	params := signatureParams(m)
	hasBody := m.Body.Kind != opir.BodyNone

	var sig []string
	sig = append(sig, "ctx context.Context")
	for _, op := range params {
		goType := g.opGoType(op.p.Ty)
		if g.paramIsPointer(op) {
			goType = "*" + goType
		}
		sig = append(sig, fmt.Sprintf("%s %s", op.p.Ident, goType))
	}
	if hasBody {
		sig = append(sig, fmt.Sprintf("body %s", g.bodyGoType(m.Body)))
	}

	if m.Summary != "" {
		fmt.Fprintf(buf, "// %s %s\n", m.OpID, m.Summary)
	} else if m.Description != "" {
		fmt.Fprintf(buf, "// %s %s\n", m.OpID, firstLine(m.Description))
	} else {
		fmt.Fprintf(buf, "// %s calls %s %s.\n", m.OpID, strings.ToUpper(m.Verb), m.Path)
	}
	if m.Deprecated {
		buf.WriteString("// Deprecated: this operation is marked deprecated by the source document.\n")
	}

	if websocket {
		fmt.Fprintf(buf, "func (s *Service) %s(%s) (*utils.UpgradedConn, http.Header, error) {\n",
			m.OpID, strings.Join(sig, ", "))
		g.writeRequestURL(buf, m, params)
		buf.WriteString("\tu := s.Client.BaseURL + path\n")
		buf.WriteString("\treturn s.Client.Upgrade(ctx, u)\n")
		buf.WriteString("}\n\n")
		return nil
	}

	returnType, zero := g.operationReturnType(m, success, hasSuccess)
	if returnType == "" {
		fmt.Fprintf(buf, "func (s *Service) %s(%s) error {\n", m.OpID, strings.Join(sig, ", "))
	} else {
		fmt.Fprintf(buf, "func (s *Service) %s(%s) (%s, error) {\n", m.OpID, strings.Join(sig, ", "), returnType)
	}

	ret := func(errExpr string) string {
		if returnType == "" {
			return fmt.Sprintf("\t\treturn %s\n", errExpr)
		}
		return fmt.Sprintf("\t\treturn %s, %s\n", zero, errExpr)
	}

	g.writeRequestURL(buf, m, params)
	g.writeQueryString(buf, params)

	contentType, bodyExpr := g.writeRequestBody(buf, m, returnType, zero)

	fmt.Fprintf(buf, "\treq, err := http.NewRequestWithContext(ctx, %q, s.Client.BaseURL+path, %s)\n",
		strings.ToUpper(m.Verb), bodyExpr)
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString(ret(`fmt.Errorf("create request: %w", err)`))
	buf.WriteString("\t}\n")
	if contentType != "" {
		fmt.Fprintf(buf, "\treq.Header.Set(\"Content-Type\", %s)\n", contentType)
	}

	g.writeHeaderParams(buf, params)

	timeoutExpr := "0"
	if m.TimeoutHint != nil {
		timeoutExpr = fmt.Sprintf("%d*time.Second", *m.TimeoutHint)
	}
	fmt.Fprintf(buf, "\tresp, err := s.Client.Do(ctx, req, %t, %s)\n", m.Auth, timeoutExpr)
	buf.WriteString("\tif err != nil {\n")
	buf.WriteString(ret(`fmt.Errorf("execute request: %w", err)`))
	buf.WriteString("\t}\n")

	if hasSuccess && success.Kind == opir.RespStream {
		buf.WriteString("\tif resp.StatusCode >= 400 {\n")
		buf.WriteString("\t\tdefer resp.Body.Close()\n")
		buf.WriteString("\t\tbodyBytes, _ := io.ReadAll(resp.Body)\n")
		buf.WriteString(ret("utils.NewApiError(resp.StatusCode, bodyBytes)"))
		buf.WriteString("\t}\n")
		buf.WriteString("\treturn resp.Body, nil\n}\n\n")
		return nil
	}

	buf.WriteString("\tif resp.StatusCode >= 400 {\n")
	buf.WriteString("\t\tbodyBytes, _ := utils.ReadAll(resp)\n")
	buf.WriteString(ret("utils.NewApiError(resp.StatusCode, bodyBytes)"))
	buf.WriteString("\t}\n")

	g.writeSuccessDecode(buf, success, hasSuccess, returnType)
	buf.WriteString("}\n\n")
	return nil
}

// operationReturnType decides the method's success-path return type: ""
// means the method returns only error (a Unit response).
func (g *genState) operationReturnType(m opir.Method, success opir.Response, hasSuccess bool) (returnType, zero string) {
	if !hasSuccess {
		return "", ""
	}
	switch success.Kind {
	case opir.RespUnit:
		return "", ""
	case opir.RespJSON:
		return g.opGoType(success.Ty), g.opZeroValueExpr(success.Ty)
	case opir.RespBytes:
		return "[]byte", "nil"
	case opir.RespText:
		return "string", `""`
	case opir.RespStream:
		return "io.ReadCloser", "nil"
	default:
		return "", ""
	}
}

// writeRequestURL emits the `path := ...` statement, substituting each path
// parameter's RFC 3986-escaped value into its `{wireName}` slot. Tokens are
// matched left to right in the template itself, rather than assumed to
// appear in the same order as PathParams, since nothing guarantees a
// document declares its path parameters in path order.
func (g *genState) writeRequestURL(buf *bytes.Buffer, m opir.Method, params []orderedParam) {
	byWireName := make(map[string]string)
	for _, op := range params {
		if op.loc == opir.InPath {
			byWireName[op.p.WireName] = op.p.Ident
		}
	}

	template := strings.Builder{}
	var pathIdents []string
	rest := m.Path
	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			template.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			template.WriteString(rest)
			break
		}
		end += start
		name := rest[start+1 : end]
		template.WriteString(rest[:start])
		if ident, ok := byWireName[name]; ok {
			template.WriteString("%s")
			pathIdents = append(pathIdents, fmt.Sprintf("url.PathEscape(fmt.Sprintf(\"%%v\", %s))", ident))
		} else {
			template.WriteString(rest[start : end+1])
		}
		rest = rest[end+1:]
	}

	if len(pathIdents) == 0 {
		fmt.Fprintf(buf, "\tpath := %s\n", strconv.Quote(template.String()))
		return
	}
	fmt.Fprintf(buf, "\tpath := fmt.Sprintf(%s, %s)\n", strconv.Quote(template.String()), strings.Join(pathIdents, ", "))
}

// writeQueryString emits query-parameter encoding, skipping nil optionals
// entirely rather than encoding them as empty values.
func (g *genState) writeQueryString(buf *bytes.Buffer, params []orderedParam) {
	var query []orderedParam
	for _, op := range params {
		if op.loc == opir.InQuery {
			query = append(query, op)
		}
	}
	if len(query) == 0 {
		return
	}
	buf.WriteString("\tq := url.Values{}\n")
	for _, op := range query {
		valueExpr := g.paramWireExpr(op)
		if op.required {
			fmt.Fprintf(buf, "\tq.Set(%s, %s)\n", strconv.Quote(op.p.WireName), valueExpr)
		} else {
			fmt.Fprintf(buf, "\tif %s != nil {\n", op.p.Ident)
			fmt.Fprintf(buf, "\t\tq.Set(%s, %s)\n", strconv.Quote(op.p.WireName), valueExpr)
			buf.WriteString("\t}\n")
		}
	}
	buf.WriteString("\tif len(q) > 0 {\n\t\tpath += \"?\" + q.Encode()\n\t}\n")
}

// writeHeaderParams emits header-parameter attachment onto req, skipping
// nil optionals.
func (g *genState) writeHeaderParams(buf *bytes.Buffer, params []orderedParam) {
	for _, op := range params {
		if op.loc != opir.InHeader {
			continue
		}
		valueExpr := g.paramWireExpr(op)
		if op.required {
			fmt.Fprintf(buf, "\treq.Header.Set(%s, %s)\n", strconv.Quote(op.p.WireName), valueExpr)
		} else {
			fmt.Fprintf(buf, "\tif %s != nil {\n", op.p.Ident)
			fmt.Fprintf(buf, "\t\treq.Header.Set(%s, %s)\n", strconv.Quote(op.p.WireName), valueExpr)
			buf.WriteString("\t}\n")
		}
	}
}

// paramWireExpr renders the Go expression for a parameter's wire-string
// form. Sequence-typed parameters join their elements with a comma; the
// emitter doesn't support repeated-key explode for query/header params, so
// it comma-joins either way and documents the simplification here.
func (g *genState) paramWireExpr(op orderedParam) string {
	ref := op.p.Ident
	if g.paramIsPointer(op) {
		ref = "*" + op.p.Ident
	}
	if g.table.Get(op.p.Ty).Kind == typeir.KindSequence {
		return fmt.Sprintf("strings.Join(stringifyAll(%s), \",\")", ref)
	}
	return fmt.Sprintf("fmt.Sprintf(\"%%v\", %s)", ref)
}

// bodyGoType renders the Go type of a method's body parameter. A multipart
// body's parameter is an anonymous struct with one field per Part, typed
// from that part's own Type IR entry, rather than a separately-declared
// named type.
func (g *genState) bodyGoType(b opir.Body) string {
	switch b.Kind {
	case opir.BodyMultipart:
		var fields []string
		for _, part := range b.Parts {
			fields = append(fields, fmt.Sprintf("%s %s", exportedFieldName(part.Name), g.opGoType(part.Ty)))
		}
		return fmt.Sprintf("struct {\n\t\t%s\n\t}", strings.Join(fields, "\n\t\t"))
	case opir.BodyBytes:
		return "[]byte"
	default:
		return g.opGoType(b.Ty)
	}
}

// writeRequestBody emits the body-encoding statements ahead of request
// construction, returning the Go expression for the Content-Type header
// value (empty string literal means no body, so no header is set) and the
// Go expression to pass as http.NewRequestWithContext's body argument.
func (g *genState) writeRequestBody(buf *bytes.Buffer, m opir.Method, returnType, zero string) (contentType, bodyExpr string) {
	ret := func(errExpr string) string {
		if returnType == "" {
			return fmt.Sprintf("\t\treturn %s\n", errExpr)
		}
		return fmt.Sprintf("\t\treturn %s, %s\n", zero, errExpr)
	}
	switch m.Body.Kind {
	case opir.BodyNone:
		return "", "nil"
	case opir.BodyJSON:
		buf.WriteString("\tbodyBytes, err := json.Marshal(body)\n")
		buf.WriteString("\tif err != nil {\n")
		buf.WriteString(ret(`fmt.Errorf("marshal request body: %w", err)`))
		buf.WriteString("\t}\n")
		return strconv.Quote("application/json"), "bytes.NewReader(bodyBytes)"
	case opir.BodyFormURLEncoded:
		buf.WriteString("\tpayload, err := json.Marshal(body)\n")
		buf.WriteString("\tif err != nil {\n")
		buf.WriteString(ret(`fmt.Errorf("marshal request body: %w", err)`))
		buf.WriteString("\t}\n")
		buf.WriteString("\tvar fields map[string]any\n")
		buf.WriteString("\tif err := json.Unmarshal(payload, &fields); err != nil {\n")
		buf.WriteString(ret(`fmt.Errorf("encode form body: %w", err)`))
		buf.WriteString("\t}\n")
		buf.WriteString("\tform := url.Values{}\n")
		buf.WriteString("\tfor k, v := range fields {\n\t\tform.Set(k, fmt.Sprintf(\"%v\", v))\n\t}\n")
		return strconv.Quote("application/x-www-form-urlencoded"), "strings.NewReader(form.Encode())"
	case opir.BodyMultipart:
		buf.WriteString("\tvar parts []utils.Part\n")
		for _, part := range m.Body.Parts {
			field := fmt.Sprintf("body.%s", exportedFieldName(part.Name))
			switch {
			case part.Filename:
				fmt.Fprintf(buf, "\tparts = append(parts, utils.Part{Name: %s, Filename: true, Value: %s})\n",
					strconv.Quote(part.Name), field)
			case g.table.Get(part.Ty).Kind == typeir.KindPrimitive:
				fmt.Fprintf(buf, "\tparts = append(parts, utils.Part{Name: %s, Value: []byte(fmt.Sprintf(\"%%v\", %s))})\n",
					strconv.Quote(part.Name), field)
			default:
				varName := "part" + exportedFieldName(part.Name) + "Bytes"
				fmt.Fprintf(buf, "\t%s, err := json.Marshal(%s)\n", varName, field)
				buf.WriteString("\tif err != nil {\n")
				buf.WriteString(ret(fmt.Sprintf(`fmt.Errorf("marshal %s part: %%w", err)`, part.Name)))
				buf.WriteString("\t}\n")
				fmt.Fprintf(buf, "\tparts = append(parts, utils.Part{Name: %s, Value: %s})\n", strconv.Quote(part.Name), varName)
			}
		}
		buf.WriteString("\tmultipartBody, multipartContentType, err := utils.BuildMultipart(parts)\n")
		buf.WriteString("\tif err != nil {\n")
		buf.WriteString(ret(`fmt.Errorf("build multipart body: %w", err)`))
		buf.WriteString("\t}\n")
		return "multipartContentType", "multipartBody"
	case opir.BodyBytes:
		return strconv.Quote("application/octet-stream"), "bytes.NewReader(body)"
	default:
		return "", "nil"
	}
}

// writeSuccessDecode emits the 2xx decode path matching the method's
// chosen return type.
func (g *genState) writeSuccessDecode(buf *bytes.Buffer, success opir.Response, hasSuccess bool, returnType string) {
	if !hasSuccess || success.Kind == opir.RespUnit {
		// operationReturnType always pairs RespUnit/no-success with "" here.
		buf.WriteString("\treturn nil\n")
		return
	}
	switch success.Kind {
	case opir.RespJSON:
		buf.WriteString("\tbodyBytes, err := utils.ReadAll(resp)\n")
		buf.WriteString("\tif err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn %s, fmt.Errorf(\"read response: %%w\", err)\n", g.opZeroValueExpr(success.Ty))
		buf.WriteString("\t}\n")
		fmt.Fprintf(buf, "\tvar result %s\n", g.opGoType(success.Ty))
		buf.WriteString("\tif err := json.Unmarshal(bodyBytes, &result); err != nil {\n")
		fmt.Fprintf(buf, "\t\treturn %s, fmt.Errorf(\"decode response: %%w\", err)\n", g.opZeroValueExpr(success.Ty))
		buf.WriteString("\t}\n")
		buf.WriteString("\treturn result, nil\n")
	case opir.RespBytes:
		buf.WriteString("\tbodyBytes, err := utils.ReadAll(resp)\n")
		buf.WriteString("\tif err != nil {\n\t\treturn nil, fmt.Errorf(\"read response: %w\", err)\n\t}\n")
		buf.WriteString("\treturn bodyBytes, nil\n")
	case opir.RespText:
		buf.WriteString("\tbodyBytes, err := utils.ReadAll(resp)\n")
		buf.WriteString("\tif err != nil {\n\t\treturn \"\", fmt.Errorf(\"read response: %w\", err)\n\t}\n")
		buf.WriteString("\treturn string(bodyBytes), nil\n")
	default:
		// Stream and WebsocketUpgrade are handled before writeSuccessDecode
		// is ever called; nothing else currently reaches here.
		buf.WriteString("\treturn nil\n")
	}
}

// writePaginationSeq emits a companion <OpID>Seq method returning a lazy,
// restartable iterator over every page of a cursor-paginated listing.
func (g *genState) writePaginationSeq(buf *bytes.Buffer, m opir.Method) error {
	_, success, ok := successResponse(m)
	if !ok {
		return nil
	}
	itemsField, nextField, itemType, ok := g.paginationFields(m, success)
	if !ok {
		return nil
	}

	var fwdSig, callArgs []string
	fwdSig = append(fwdSig, "ctx context.Context")
	callArgs = append(callArgs, "ctx")
	for _, op := range signatureParams(m) {
		if op.loc == opir.InQuery && op.p.WireName == m.Pagination.PageParam {
			if op.required {
				callArgs = append(callArgs, "pageToken")
			} else {
				callArgs = append(callArgs, "&pageToken")
			}
			continue
		}
		goType := g.opGoType(op.p.Ty)
		if g.paramIsPointer(op) {
			goType = "*" + goType
		}
		fwdSig = append(fwdSig, fmt.Sprintf("%s %s", op.p.Ident, goType))
		callArgs = append(callArgs, op.p.Ident)
	}
	if m.Body.Kind != opir.BodyNone {
		fwdSig = append(fwdSig, fmt.Sprintf("body %s", g.bodyGoType(m.Body)))
		callArgs = append(callArgs, "body")
	}

	fmt.Fprintf(buf, "// %sSeq returns a lazy, restartable sequence over every page of %s,\n", m.OpID, m.OpID)
	buf.WriteString("// following the cursor until the source reports no further page.\n")
	fmt.Fprintf(buf, "func (s *Service) %sSeq(%s) iter.Seq2[%s, error] {\n", m.OpID, strings.Join(fwdSig, ", "), itemType)
	buf.WriteString("\treturn utils.Paginate(func(pageToken string) (utils.Page[" + itemType + "], error) {\n")
	fmt.Fprintf(buf, "\t\tresult, err := s.%s(%s)\n", m.OpID, strings.Join(callArgs, ", "))
	buf.WriteString("\t\tif err != nil {\n\t\t\treturn utils.Page[" + itemType + "]{}, err\n\t\t}\n")
	fmt.Fprintf(buf, "\t\treturn utils.Page[%s]{Items: result.%s, NextToken: result.%s}, nil\n", itemType, itemsField, nextField)
	buf.WriteString("\t})\n}\n\n")
	return nil
}

// paginationFields resolves the Go field identifiers and element type
// backing a cursor-paginated method's items/next-cursor fields, looked up
// by wire name against the success response's struct shape.
func (g *genState) paginationFields(m opir.Method, success opir.Response) (itemsField, nextField, itemType string, ok bool) {
	if success.Kind != opir.RespJSON {
		return "", "", "", false
	}
	structNode := g.unwrapStruct(success.Ty)
	if structNode == nil {
		return "", "", "", false
	}
	var itemsTy typeir.TypeID
	foundItems, foundNext := false, false
	for _, f := range structNode.Fields {
		switch f.WireName {
		case m.Pagination.ItemsField:
			itemsField = f.Ident
			itemsTy = f.Ty
			foundItems = true
		case m.Pagination.NextCursorField:
			nextField = f.Ident
			foundNext = true
		}
	}
	if !foundItems || !foundNext {
		return "", "", "", false
	}
	if g.table.Get(itemsTy).Kind == typeir.KindSequence {
		itemType = g.opGoType(g.table.Get(itemsTy).Sequence.Inner)
	} else {
		itemType = g.opGoType(itemsTy)
	}
	return itemsField, nextField, itemType, true
}

// unwrapStruct follows Named/Optional wrapper Kinds down to the underlying
// StructNode, so pagination-shape lookup works whether the success body was
// a direct inline object or a $ref to a named schema.
func (g *genState) unwrapStruct(id typeir.TypeID) *typeir.StructNode {
	for range [8]struct{}{} {
		node := g.table.Get(id)
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

// exportedFieldName mints the Go field name a multipart part is stored
// under on its synthesized anonymous body struct (see bodyGoType).
func exportedFieldName(wireName string) string {
	return naming.ToPascalCase(wireName)
}

// firstLine truncates a possibly multi-paragraph description to its first
// line, keeping generated doc comments single-line like the rest of the
// emitter's output.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

package spec

import (
	"strings"

	"github.com/openapitor/openapitor/internal/pathutil"
	"github.com/openapitor/openapitor/oaserrors"
)

// Resolver resolves `$ref` strings against a Document's components (stage
// C). It never copies: every Resolve* method returns a pointer into the
// Document it was built from.
type Resolver struct {
	doc *Document
}

// NewResolver builds a Resolver over doc.
func NewResolver(doc *Document) *Resolver {
	return &Resolver{doc: doc}
}

// ResolveSchema resolves a schema $ref. Cycles are legal here — the caller
// (typeir.Lower) breaks them into Named edges by pre-allocating a TypeId
// before descending, so this method does no cycle bookkeeping of its own.
func (r *Resolver) ResolveSchema(ref string) (*Schema, error) {
	name, err := r.componentName(ref, pathutil.RefPrefixSchemas)
	if err != nil {
		return nil, err
	}
	s, ok := r.doc.Components.Schemas.Get(name)
	if !ok {
		return nil, &oaserrors.RefResolveError{Ref: ref, Message: "no such schema in components.schemas"}
	}
	return s, nil
}

// ResolveParameter resolves a parameter $ref. Unlike schemas, a cycle here
// (a parameter whose $ref chain returns to itself) is forbidden.
func (r *Resolver) ResolveParameter(ref string, visiting map[string]bool) (*Parameter, error) {
	if visiting[ref] {
		return nil, &oaserrors.RefResolveError{Ref: ref, IsCycle: true, Message: "parameter reference cycle"}
	}
	name, err := r.componentName(ref, pathutil.RefPrefixParameters)
	if err != nil {
		return nil, err
	}
	p, ok := r.doc.Components.Parameters.Get(name)
	if !ok {
		return nil, &oaserrors.RefResolveError{Ref: ref, Message: "no such parameter in components.parameters"}
	}
	if p.Ref != "" {
		visiting[ref] = true
		defer delete(visiting, ref)
		return r.ResolveParameter(p.Ref, visiting)
	}
	return p, nil
}

// ResolveResponse resolves a response $ref, forbidding cycles as for
// parameters.
func (r *Resolver) ResolveResponse(ref string, visiting map[string]bool) (*Response, error) {
	if visiting[ref] {
		return nil, &oaserrors.RefResolveError{Ref: ref, IsCycle: true, Message: "response reference cycle"}
	}
	name, err := r.componentName(ref, pathutil.RefPrefixResponses)
	if err != nil {
		return nil, err
	}
	resp, ok := r.doc.Components.Responses.Get(name)
	if !ok {
		return nil, &oaserrors.RefResolveError{Ref: ref, Message: "no such response in components.responses"}
	}
	if resp.Ref != "" {
		visiting[ref] = true
		defer delete(visiting, ref)
		return r.ResolveResponse(resp.Ref, visiting)
	}
	return resp, nil
}

// ResolveRequestBody resolves a requestBody $ref.
func (r *Resolver) ResolveRequestBody(ref string) (*RequestBody, error) {
	name, err := r.componentName(ref, pathutil.RefPrefixRequestBodies)
	if err != nil {
		return nil, err
	}
	rb, ok := r.doc.Components.RequestBodies.Get(name)
	if !ok {
		return nil, &oaserrors.RefResolveError{Ref: ref, Message: "no such requestBody in components.requestBodies"}
	}
	return rb, nil
}

// ResolveHeader resolves a header $ref.
func (r *Resolver) ResolveHeader(ref string) (*Header, error) {
	name, err := r.componentName(ref, pathutil.RefPrefixHeaders)
	if err != nil {
		return nil, err
	}
	h, ok := r.doc.Components.Headers.Get(name)
	if !ok {
		return nil, &oaserrors.RefResolveError{Ref: ref, Message: "no such header in components.headers"}
	}
	return h, nil
}

// componentName validates ref is an in-document fragment under prefix and
// returns the trailing component name.
func (r *Resolver) componentName(ref, prefix string) (string, error) {
	if !strings.HasPrefix(ref, "#/") {
		return "", &oaserrors.RefResolveError{Ref: ref, IsExternal: true, Message: "only in-document fragment references (#/...) are supported"}
	}
	if !strings.HasPrefix(ref, prefix) {
		return "", &oaserrors.RefResolveError{Ref: ref, Message: "reference does not target the expected component collection " + prefix}
	}
	return unescapePointerSegment(strings.TrimPrefix(ref, prefix)), nil
}

package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	ErrSpecLoad       = errors.New("spec load error")
	ErrPatch          = errors.New("patch error")
	ErrRefResolve     = errors.New("reference resolve error")
	ErrRefCycle       = errors.New("reference cycle")
	ErrExternalRef    = errors.New("external reference unsupported")
	ErrSchemaLowering = errors.New("schema lowering error")
	ErrNameMint       = errors.New("name mint error")
	ErrRender         = errors.New("render error")
	ErrIO             = errors.New("io error")
)

// SpecLoadError represents a failure to read, decode, or structurally
// validate the input OpenAPI document.
type SpecLoadError struct {
	// Pointer is the JSON pointer into the document where the failure was
	// detected. Empty when the failure precedes any successful decode
	// (e.g. the file could not be read at all).
	Pointer string
	// Source identifies the input (file path or "<reader>").
	Source string
	Message string
	Cause   error
}

func (e *SpecLoadError) Error() string {
	msg := "spec load error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SpecLoadError) Unwrap() error { return e.Cause }
func (e *SpecLoadError) Is(target error) bool { return target == ErrSpecLoad }

// PatchError represents a failed RFC 6902 JSON Patch operation.
type PatchError struct {
	// OpIndex is the zero-based index of the failing operation in the patch array.
	OpIndex int
	// Op is the patch operation name (add, remove, replace, move, copy, test).
	Op string
	// Pointer is the JSON pointer target of the failing operation.
	Pointer string
	Message string
	Cause   error
}

func (e *PatchError) Error() string {
	msg := fmt.Sprintf("patch error: op[%d]", e.OpIndex)
	if e.Op != "" {
		msg += fmt.Sprintf(" %q", e.Op)
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *PatchError) Unwrap() error { return e.Cause }
func (e *PatchError) Is(target error) bool { return target == ErrPatch }

// RefResolveError represents a failure to resolve a $ref.
type RefResolveError struct {
	// Ref is the raw $ref string that failed to resolve.
	Ref string
	// Pointer is the JSON pointer of the node holding the failing $ref.
	Pointer string
	// IsCycle is true when resolution failed because a forbidden cycle was
	// detected (parameter or response level — schema-level cycles are legal
	// and become Named type-IR edges instead of errors).
	IsCycle bool
	// IsExternal is true when the $ref points outside the document (a file
	// or URL reference), which this generator does not support.
	IsExternal bool
	Message    string
	Cause      error
}

func (e *RefResolveError) Error() string {
	msg := "reference error"
	switch {
	case e.IsCycle:
		msg = "reference cycle"
	case e.IsExternal:
		msg = "external reference unsupported"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Pointer != "" {
		msg += " (at " + e.Pointer + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RefResolveError) Unwrap() error { return e.Cause }

func (e *RefResolveError) Is(target error) bool {
	switch target {
	case ErrRefResolve:
		return true
	case ErrRefCycle:
		return e.IsCycle
	case ErrExternalRef:
		return e.IsExternal
	}
	return false
}

// SchemaLoweringError represents a schema that could not be lowered to a
// Type IR node.
type SchemaLoweringError struct {
	Pointer string
	Message string
	Cause   error
}

func (e *SchemaLoweringError) Error() string {
	msg := "schema lowering error"
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *SchemaLoweringError) Unwrap() error { return e.Cause }
func (e *SchemaLoweringError) Is(target error) bool { return target == ErrSchemaLowering }

// NameMintError represents a failure to mint a valid, unique identifier.
type NameMintError struct {
	Pointer string
	Raw     string
	Scope   string
	Message string
}

func (e *NameMintError) Error() string {
	msg := "name mint error"
	if e.Raw != "" {
		msg += fmt.Sprintf(" for %q", e.Raw)
	}
	if e.Scope != "" {
		msg += " in scope " + e.Scope
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *NameMintError) Is(target error) bool { return target == ErrNameMint }

// RenderError represents a failure to render a Type IR or Method IR value
// to source text.
type RenderError struct {
	Pointer string
	File    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	msg := "render error"
	if e.File != "" {
		msg += " for " + e.File
	}
	if e.Pointer != "" {
		msg += " at " + e.Pointer
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *RenderError) Unwrap() error { return e.Cause }
func (e *RenderError) Is(target error) bool { return target == ErrRender }

// IOError represents a failure writing the generated workspace to disk.
type IOError struct {
	Path    string
	Message string
	Cause   error
}

func (e *IOError) Error() string {
	msg := "io error"
	if e.Path != "" {
		msg += " writing " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *IOError) Unwrap() error { return e.Cause }
func (e *IOError) Is(target error) bool { return target == ErrIO }

// Package opir builds the Method IR: one value per (path, verb), carrying
// everything the emitter (generator) needs to render a typed client method
// without reaching back into the source document. It is built once per
// generator run, after the Type IR table is populated, and consumed only by
// the emitter.
package opir

import "github.com/openapitor/openapitor/typeir"

// ParamLocation is where a parameter travels on the wire.
type ParamLocation int

const (
	InPath ParamLocation = iota
	InQuery
	InHeader
)

// Param is one lowered path/query/header parameter.
type Param struct {
	WireName string
	Ident    string
	Ty       typeir.TypeID
	Required bool
	Style    string // OAS serialization style (e.g. "simple", "form", "deepObject")
	Explode  bool
}

// BodyKind discriminates a request body's wire encoding.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyFormURLEncoded
	BodyMultipart
	// BodyBytes is the fallback for a content type the generator doesn't
	// model, which degrades to a raw byte slice.
	BodyBytes
)

// Part is one named field of a multipart/form-data body.
type Part struct {
	Name     string
	Ty       typeir.TypeID
	Filename bool // true when this part's type is Bytes, so the wire form needs a filename parameter
}

// Body describes a request body.
type Body struct {
	Kind  BodyKind
	Ty    typeir.TypeID // valid for BodyJSON, BodyFormURLEncoded, BodyBytes
	Parts []Part        // valid for BodyMultipart
}

// ResponseKind discriminates how one status's response is decoded.
type ResponseKind int

const (
	RespUnit ResponseKind = iota
	RespJSON
	RespBytes
	RespText
	RespWebsocketUpgrade
	RespStream
)

// Response is one entry of a Method's status -> shape map.
type Response struct {
	Kind ResponseKind
	Ty   typeir.TypeID // valid for RespJSON, RespStream
}

// PaginationKind discriminates a Method's pagination descriptor.
type PaginationKind int

const (
	PaginationNone PaginationKind = iota
	PaginationCursor
)

// Pagination describes cursor-style pagination inferred for a Method;
// Kind is PaginationNone when no cursor shape was detected.
type Pagination struct {
	Kind            PaginationKind
	PageParam       string
	ItemsField      string
	NextCursorField string
}

// Method is the Method IR entity for one (path, verb) pair.
type Method struct {
	OpID string
	Tag  string
	Path string
	Verb string

	PathParams   []Param
	QueryParams  []Param
	HeaderParams []Param

	Body Body

	// Responses is keyed by status code/pattern string ("200", "4XX",
	// "default", ...) exactly as it appeared in the spec.
	Responses map[string]Response

	Pagination Pagination
	Auth       bool
	TimeoutHint *int

	Summary     string
	Description string
	Deprecated  bool
}

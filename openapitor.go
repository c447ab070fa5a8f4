// Package openapitor lowers an OpenAPI 3.0/3.1 document into a typed Go
// client library: a loader and patch layer (package spec), a reference
// resolver (spec.Resolver), a name mint (package mint), a Type IR and
// Operation IR (packages typeir, opir), and an emitter plus workspace
// writer (package generator) that stages the generated source in memory
// and flushes it atomically.
//
// The CLI front-end lives at cmd/openapitor.
package openapitor

import "fmt"

// version is set via ldflags at build time; "dev" for source builds.
var version = "dev"

// Version returns the compiled version, or "dev" when run from source.
func Version() string {
	return version
}

// UserAgent returns the User-Agent string identifying this build of
// openapitor, "openapitor/<version>". openapitor itself makes no outbound
// requests, and nothing in this module calls UserAgent. It is distinct from
// the User-Agent the *generated* client sends, which is empty unless the
// caller sets one with WithUserAgent.
func UserAgent() string {
	return fmt.Sprintf("openapitor/%s", version)
}

package oaserrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecLoadError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := &SpecLoadError{Source: "petstore.yaml", Pointer: "/paths", Message: "invalid document", Cause: cause}

	assert.ErrorIs(t, err, ErrSpecLoad)
	assert.Contains(t, err.Error(), "petstore.yaml")
	assert.Contains(t, err.Error(), "/paths")
	assert.Equal(t, cause, err.Unwrap())
}

func TestPatchError(t *testing.T) {
	err := &PatchError{OpIndex: 2, Op: "replace", Pointer: "/info/title", Message: "target does not exist"}

	require.ErrorIs(t, err, ErrPatch)
	assert.Contains(t, err.Error(), "op[2]")
	assert.Contains(t, err.Error(), `"replace"`)
}

func TestRefResolveErrorCycle(t *testing.T) {
	err := &RefResolveError{Ref: "#/components/parameters/Self", Pointer: "/paths/~1x/get/parameters/0", IsCycle: true}

	assert.ErrorIs(t, err, ErrRefResolve)
	assert.ErrorIs(t, err, ErrRefCycle)
	assert.False(t, errors.Is(err, ErrExternalRef))
	assert.Contains(t, err.Error(), "cycle")
}

func TestRefResolveErrorExternal(t *testing.T) {
	err := &RefResolveError{Ref: "other.yaml#/components/schemas/Pet", IsExternal: true}

	assert.ErrorIs(t, err, ErrExternalRef)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestSchemaLoweringError(t *testing.T) {
	err := &SchemaLoweringError{Pointer: "/components/schemas/Pet/properties/tag", Message: "unsupported combination of oneOf and additionalProperties"}
	assert.ErrorIs(t, err, ErrSchemaLowering)
	assert.Contains(t, err.Error(), "/components/schemas/Pet")
}

func TestNameMintError(t *testing.T) {
	err := &NameMintError{Raw: "", Scope: "components.schemas", Pointer: "/components/schemas/"}
	assert.ErrorIs(t, err, ErrNameMint)
	assert.Contains(t, err.Error(), "components.schemas")
}

func TestRenderError(t *testing.T) {
	cause := errors.New("unexpected token")
	err := &RenderError{File: "types.go", Pointer: "/components/schemas/Pet", Cause: cause}
	assert.ErrorIs(t, err, ErrRender)
	assert.Equal(t, cause, err.Unwrap())
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &IOError{Path: "./out/client.go", Cause: cause}
	assert.ErrorIs(t, err, ErrIO)
	assert.Contains(t, err.Error(), "./out/client.go")
}

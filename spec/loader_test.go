package spec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const petstoreJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Petstore", "version": "1.0.0"},
  "servers": [{"url": "https://api.example.com"}],
  "paths": {
    "/pets/{id}": {
      "get": {
        "operationId": "getPet",
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}}}
      }
    }
  },
  "components": {
    "schemas": {
      "Pet": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "name": {"type": "string"}}, "required": ["id", "name"]}
    }
  }
}`

func TestParseBytesJSON(t *testing.T) {
	p := &Parser{}
	doc, warnings, err := p.ParseBytes([]byte(petstoreJSON))
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, "Petstore", doc.Info.Title)
	require.Equal(t, 1, doc.Paths.Len())

	pet, ok := doc.Components.Schemas.Get("Pet")
	require.True(t, ok)
	require.Equal(t, "/components/schemas/Pet", pet.SourcePointer())
}

func TestParseBytesYAML(t *testing.T) {
	yamlDoc := `
openapi: "3.1.0"
info:
  title: Petstore
  version: "1.0.0"
paths: {}
`
	p := &Parser{}
	doc, _, err := p.ParseReader(strings.NewReader(yamlDoc))
	require.NoError(t, err)
	require.Equal(t, "3.1.0", doc.OpenAPI)
	require.Len(t, doc.Servers, 1, "missing servers falls back to a synthesized default")
}

func TestParseBytesMissingInfoWarns(t *testing.T) {
	p := &Parser{}
	_, warnings, err := p.ParseBytes([]byte(`{"openapi":"3.0.3","info":{},"paths":{},"servers":[{"url":"https://api.example.com"}]}`))
	require.NoError(t, err)
	require.Len(t, warnings, 2)
}

func TestParseBytesRejectsOAS2(t *testing.T) {
	p := &Parser{}
	_, _, err := p.ParseBytes([]byte(`{"swagger":"2.0"}`))
	require.Error(t, err)
}

func TestResolverResolveSchema(t *testing.T) {
	p := &Parser{}
	doc, _, err := p.ParseBytes([]byte(petstoreJSON))
	require.NoError(t, err)

	r := NewResolver(doc)
	s, err := r.ResolveSchema("#/components/schemas/Pet")
	require.NoError(t, err)
	require.Equal(t, 2, s.Properties.Len())
}

func TestResolverRejectsExternalRef(t *testing.T) {
	p := &Parser{}
	doc, _, err := p.ParseBytes([]byte(petstoreJSON))
	require.NoError(t, err)

	r := NewResolver(doc)
	_, err = r.ResolveSchema("other.yaml#/components/schemas/Pet")
	require.Error(t, err)
}

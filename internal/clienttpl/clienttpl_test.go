package clienttpl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesEveryRuntimeFile(t *testing.T) {
	files, err := Render(Data{ModulePath: "github.com/example/widgetclient"})
	require.NoError(t, err)
	require.NotEmpty(t, files)

	names := make(map[string]bool, len(files))
	for _, f := range files {
		names[f.Name] = true
		assert.False(t, strings.HasSuffix(f.Name, ".tmpl"), "output name must have .tmpl stripped: %s", f.Name)
		assert.Contains(t, string(f.Content), "package utils")
	}
	assert.True(t, names["client.go"])
	assert.True(t, names["websocket.go"])
	assert.True(t, names["pagination.go"])
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := Render(Data{ModulePath: "github.com/example/widgetclient"})
	require.NoError(t, err)
	b, err := Render(Data{ModulePath: "github.com/example/widgetclient"})
	require.NoError(t, err)
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Name, b[i].Name)
		assert.Equal(t, string(a[i].Content), string(b[i].Content))
	}
}

func TestClientDocCommentStampsModulePath(t *testing.T) {
	files, err := Render(Data{ModulePath: "github.com/example/widgetclient"})
	require.NoError(t, err)
	for _, f := range files {
		if f.Name == "client.go" {
			assert.Contains(t, string(f.Content), "github.com/example/widgetclient")
			return
		}
	}
	t.Fatal("client.go not rendered")
}

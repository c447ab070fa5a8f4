package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() map[string]any {
	return map[string]any{
		"openapi": "3.1.0",
		"info": map[string]any{
			"title":   "Widgets",
			"version": "1.0.0",
		},
		"tags": []any{
			map[string]any{"name": "widgets"},
			map[string]any{"name": "gadgets"},
		},
	}
}

func TestApplyAddMember(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"add","path":"/info/description","value":"widget API"}]`))
	require.NoError(t, err)
	require.Equal(t, 1, result.Applied)

	out := result.Document.(map[string]any)
	info := out["info"].(map[string]any)
	assert.Equal(t, "widget API", info["description"])

	// original untouched
	origInfo := doc["info"].(map[string]any)
	_, present := origInfo["description"]
	assert.False(t, present)
}

func TestApplyRemoveMember(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"remove","path":"/info/title"}]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	info := out["info"].(map[string]any)
	_, present := info["title"]
	assert.False(t, present)
}

func TestApplyReplaceMember(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"replace","path":"/info/version","value":"2.0.0"}]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	info := out["info"].(map[string]any)
	assert.Equal(t, "2.0.0", info["version"])
}

func TestApplyReplaceMissingMemberFails(t *testing.T) {
	doc := sampleDoc()
	_, err := Apply(doc, []byte(`[{"op":"replace","path":"/info/nonexistent","value":"x"}]`))
	require.Error(t, err)
}

func TestApplyAddArrayAppend(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"add","path":"/tags/-","value":{"name":"sprockets"}}]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	tags := out["tags"].([]any)
	require.Len(t, tags, 3)
	last := tags[2].(map[string]any)
	assert.Equal(t, "sprockets", last["name"])
}

func TestApplyAddArrayIndexShiftsRemainder(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"add","path":"/tags/0","value":{"name":"first"}}]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	tags := out["tags"].([]any)
	require.Len(t, tags, 3)
	assert.Equal(t, "first", tags[0].(map[string]any)["name"])
	assert.Equal(t, "widgets", tags[1].(map[string]any)["name"])
	assert.Equal(t, "gadgets", tags[2].(map[string]any)["name"])
}

func TestApplyRemoveArrayElementUpdatesLength(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"remove","path":"/tags/0"}]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	tags := out["tags"].([]any)
	require.Len(t, tags, 1)
	assert.Equal(t, "gadgets", tags[0].(map[string]any)["name"])
}

func TestApplyMove(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"move","from":"/info/title","path":"/info/name"}]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	info := out["info"].(map[string]any)
	_, titlePresent := info["title"]
	assert.False(t, titlePresent)
	assert.Equal(t, "Widgets", info["name"])
}

func TestApplyCopy(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"copy","from":"/info/title","path":"/info/name"}]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	info := out["info"].(map[string]any)
	assert.Equal(t, "Widgets", info["title"])
	assert.Equal(t, "Widgets", info["name"])
}

func TestApplyTestPasses(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[{"op":"test","path":"/info/title","value":"Widgets"},{"op":"replace","path":"/info/title","value":"Gizmos"}]`))
	require.NoError(t, err)
	require.Equal(t, 2, result.Applied)
}

func TestApplyTestFailsAbortsPatch(t *testing.T) {
	doc := sampleDoc()
	_, err := Apply(doc, []byte(`[{"op":"test","path":"/info/title","value":"WrongValue"},{"op":"replace","path":"/info/title","value":"Gizmos"}]`))
	require.Error(t, err)

	var patchErr interface{ Error() string }
	require.ErrorAs(t, err, &patchErr)
}

func TestApplySequentialOpsChainAgainstPriorResult(t *testing.T) {
	doc := sampleDoc()
	result, err := Apply(doc, []byte(`[
		{"op":"add","path":"/info/description","value":"v1"},
		{"op":"replace","path":"/info/description","value":"v2"}
	]`))
	require.NoError(t, err)

	out := result.Document.(map[string]any)
	info := out["info"].(map[string]any)
	assert.Equal(t, "v2", info["description"])
	require.Len(t, result.Changes, 2)
	assert.Equal(t, 0, result.Changes[0].OpIndex)
	assert.Equal(t, 1, result.Changes[1].OpIndex)
}

func TestApplyInvalidOpIncludesIndex(t *testing.T) {
	doc := sampleDoc()
	_, err := Apply(doc, []byte(`[
		{"op":"replace","path":"/info/version","value":"2.0.0"},
		{"op":"remove","path":"/info/nonexistent"}
	]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "op[1]")
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestApplyNotJSONPatchArray(t *testing.T) {
	doc := sampleDoc()
	_, err := Apply(doc, []byte(`{"not":"an array"}`))
	require.Error(t, err)
}

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
)

const petsDoc = `{
	"openapi": "3.0.0",
	"info": {"title": "pets", "version": "1"},
	"paths": {
		"/pets/{id}": {
			"get": {
				"parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
				"responses": {"200": {"description": "ok", "content": {"application/json": {"schema": {"type": "boolean"}}}}}
			}
		}
	}
}`

func writeDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pets.json")
	require.NoError(t, os.WriteFile(path, []byte(petsDoc), 0o644))
	return path
}

func TestRunInspectHandler(t *testing.T) {
	var out bytes.Buffer
	err := RunInspect(context.Background(), InspectParams{
		Input:  writeDoc(t),
		Path:   "/pets/{id}",
		Method: "GET",
		Out:    &out,
	})
	require.NoError(t, err)

	var dump map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &dump))
	params := dump["parameters"].([]any)
	require.Len(t, params, 1)
	assert.Equal(t, "id", params[0].(map[string]any)["name"])
	assert.Equal(t, "path", params[0].(map[string]any)["in"])

	responses := dump["responses"].(map[string]any)
	assert.Equal(t, "boolean", responses["200"].(map[string]any)["kind"])
}

func TestRunInspectAllPaths(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunInspect(context.Background(), InspectParams{Input: writeDoc(t), Out: &out}))
	assert.Contains(t, out.String(), "/pets/{id}:")
	assert.Contains(t, out.String(), "get:")
}

func TestRunInspectUnknownMethod(t *testing.T) {
	err := RunInspect(context.Background(), InspectParams{
		Input:  writeDoc(t),
		Path:   "/pets/{id}",
		Method: "delete",
		Out:    &bytes.Buffer{},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no method in the specification /pets/{id} DELETE")
}

func TestRunValidate(t *testing.T) {
	require.NoError(t, RunValidate(context.Background(), writeDoc(t), 0))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"openapi": "3.0.0", "paths": {}}`), 0o644))
	assert.Error(t, RunValidate(context.Background(), bad, 0))
}

func TestRunGenerateRequiresDirectories(t *testing.T) {
	err := RunGenerate(context.Background(), config.Options{SpecDir: "specs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--spec-dir and --out must be provided")
}

package openapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
)

const petstore = `{
	"openapi": "3.0.3",
	"info": {"title": "pets", "version": "1.0.0"},
	"paths": {}
}`

func fastRetry(retries int) FetchOptions {
	return FetchOptions{Timeout: time.Second, Retries: retries, InitialInterval: time.Millisecond}
}

func TestParseJSONAndYAML(t *testing.T) {
	doc, err := Parse([]byte(`{"a": {"b": null}}`), "x.json")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": nil}}, doc)

	doc, err = Parse([]byte("paths:\n  /pets:\n    get:\n      responses:\n        200:\n          description: ok\n"), "x.yaml")
	require.NoError(t, err)
	responses, err := Lookup(doc, "#/paths/~1pets/get/responses")
	require.NoError(t, err)
	assert.Contains(t, responses, "200", "integer keys become strings")
}

func TestParseRejectsNonDocuments(t *testing.T) {
	for _, input := range []string{"just a string", "[1, 2]", "a: [unclosed"} {
		_, err := Parse([]byte(input), "bad.txt")
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, generrors.ErrFormat), input)
		assert.Contains(t, err.Error(), "bad.txt")
	}
}

func TestFetchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "spec.json")
	require.NoError(t, os.WriteFile(path, []byte(petstore), 0o644))

	doc, err := LoadDocument(context.Background(), path, FetchOptions{})
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc["openapi"])

	_, err = Fetch(context.Background(), filepath.Join(dir, "missing.json"), FetchOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrIO))
	assert.Contains(t, err.Error(), "missing.json")
}

func TestFetchURLRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(petstore))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.URL+"/openapi.json", fastRetry(3))
	require.NoError(t, err)
	assert.JSONEq(t, petstore, string(data))
	assert.EqualValues(t, 3, calls.Load())
}

func TestFetchURLClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL+"/missing", fastRetry(5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, generrors.ErrIO))
	assert.Contains(t, err.Error(), "404")
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchURLGivesUp(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, fastRetry(2))
	require.Error(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://example.com/openapi.json"))
	assert.True(t, IsURL("http://localhost:8080/x"))
	assert.False(t, IsURL("./specs/wallet.json"))
	assert.False(t, IsURL("/abs/path.yaml"))
}

func TestValidateData(t *testing.T) {
	require.NoError(t, ValidateData(context.Background(), []byte(petstore)))

	err := ValidateData(context.Background(), []byte(`{"openapi": "3.0.3", "paths": {}}`))
	assert.Error(t, err)
}

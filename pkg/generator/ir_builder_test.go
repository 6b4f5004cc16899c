package generator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
)

const ordersDoc = `
openapi: 3.0.3
info: {title: orders, version: "1"}
paths:
  /v1/{accountId}/orders:
    summary: Orders of an account
    x-owner: payments
    parameters:
      - {name: accountId, in: path, required: true, schema: {type: string}}
      - {name: limit, in: query, schema: {type: integer}}
    get:
      parameters:
        - {name: limit, in: query, required: true, schema: {type: number}}
        - {name: X-Trace, in: header, schema: {type: string}}
      responses:
        200:
          description: ok
          content:
            application/json:
              schema:
                type: array
                items: {$ref: '#/components/schemas/Order'}
        "404":
          description: not found
    post:
      requestBody:
        required: true
        content:
          application/json:
            schema: {$ref: '#/components/schemas/Order'}
      responses:
        "201":
          description: created
components:
  schemas:
    Order:
      type: object
      properties:
        id: {type: string}
        total: {type: number}
      required: [id]
`

func TestBuildSpec(t *testing.T) {
	spec, err := BuildSpec(normalizedDoc(t, ordersDoc))
	require.NoError(t, err)

	assert.Equal(t, []string{"/v1/{accountId}/orders"}, spec.Paths.Keys())
	methods, _ := spec.Paths.Get("/v1/{accountId}/orders")
	assert.Equal(t, []ir.Method{ir.MethodGet, ir.MethodPost}, methods.Keys())

	order := object(map[string]ir.Type{
		"id":    ir.String{Required: true},
		"total": ir.Number{Required: false},
	})

	get, err := spec.Handler("/v1/{accountId}/orders", ir.MethodGet)
	require.NoError(t, err)
	assert.Equal(t, []ir.Param{
		{In: ir.InPath, Name: "accountId", Type: ir.String{Required: true}},
		{In: ir.InQuery, Name: "limit", Type: ir.Number{Required: true}},
		{In: ir.InHeader, Name: "X-Trace", Type: ir.String{Required: false}},
	}, get.Parameters)
	assert.Equal(t, []int{200, 404}, get.Responses.Keys())
	ok, _ := get.Responses.Get(200)
	assert.Equal(t, ir.Array{Items: order, Required: true}, ok)
	notFound, _ := get.Responses.Get(404)
	assert.Equal(t, ir.Unknown{Required: true}, notFound)

	post, err := spec.Handler("/v1/{accountId}/orders", ir.MethodPost)
	require.NoError(t, err)
	body, found := post.Body()
	require.True(t, found)
	assert.Equal(t, ir.RequestBodyName, body.Name)
	assert.Equal(t, order, body.Type)
	// path level parameters apply to every method
	assert.Len(t, post.ParamsIn(ir.InQuery), 1)
}

func TestBuildSpecLookupErrors(t *testing.T) {
	spec, err := BuildSpec(normalizedDoc(t, ordersDoc))
	require.NoError(t, err)

	_, err = spec.Handler("/v1/orders", ir.MethodGet)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no path in the specification /v1/orders")

	_, err = spec.Handler("/v1/{accountId}/orders", ir.MethodDelete)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no method in the specification /v1/{accountId}/orders DELETE")
}

func TestBuildSpecFailures(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		path    string
		message string
	}{
		{
			name:    "no paths",
			doc:     `{"openapi": "3.0.0"}`,
			path:    "#",
			message: "document has no paths",
		},
		{
			name:    "unknown method",
			doc:     `{"paths": {"/a": {"trace": {"responses": {}}}}}`,
			path:    "#/paths/~1a/trace",
			message: `unknown http method "trace"`,
		},
		{
			name:    "unknown parameter location",
			doc:     `{"paths": {"/a": {"get": {"parameters": [{"name": "s", "in": "cookie", "schema": {"type": "string"}}]}}}}`,
			path:    "#/paths/~1a/get/parameters/0/in",
			message: `unknown parameter location "cookie"`,
		},
		{
			name:    "duplicate parameter",
			doc:     `{"paths": {"/a": {"get": {"parameters": [{"name": "s", "in": "query", "schema": {"type": "string"}}, {"name": "s", "in": "header", "schema": {"type": "string"}}]}}}}`,
			path:    "#/paths/~1a/get/parameters/1",
			message: `duplicate parameter "s"`,
		},
		{
			name:    "default response",
			doc:     `{"paths": {"/a": {"get": {"responses": {"default": {"description": "error"}}}}}}`,
			path:    "#/paths/~1a/get/responses/default",
			message: `unsupported response code "default"`,
		},
		{
			name:    "parameter without name",
			doc:     `{"paths": {"/a": {"get": {"parameters": [{"in": "query", "schema": {"type": "string"}}]}}}}`,
			path:    "#/paths/~1a/get/parameters/0",
			message: "parameter has no name",
		},
		{
			name:    "required is not a boolean",
			doc:     `{"paths": {"/a": {"get": {"parameters": [{"name": "s", "in": "query", "required": "maybe", "schema": {"type": "string"}}]}}}}`,
			path:    "#/paths/~1a/get/parameters/0/required",
			message: "required must be a boolean",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := BuildSpec(normalizedDoc(t, tt.doc))
			assert.Nil(t, spec)
			require.Error(t, err)

			var verr *generrors.ValidationError
			require.True(t, errors.As(err, &verr), "got %T", err)
			assert.Equal(t, tt.path, verr.Path)
			assert.Contains(t, verr.Message, tt.message)
		})
	}
}

func TestMergeParameters(t *testing.T) {
	shared := []paramRef{{name: "id", in: "path"}, {name: "limit", in: "query"}}
	own := []paramRef{{name: "limit", in: "QUERY"}, {name: "limit", in: "header"}}

	merged := mergeParameters(shared, own)
	require.Len(t, merged, 3)
	assert.Equal(t, "path", merged[0].in)
	assert.Equal(t, "QUERY", merged[1].in)
	assert.Equal(t, "header", merged[2].in)
}

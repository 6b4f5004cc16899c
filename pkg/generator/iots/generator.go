// Package iots renders TypeScript client modules whose response types are
// checked at runtime with io-ts codecs. One module is rendered per
// operation; its static types and its codecs come from the same Type IR.
package iots

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/utils"
)

//go:embed templates/*
var templatesFS embed.FS

var moduleTemplate = template.Must(
	template.New("module.ts.gotmpl").
		Funcs(sprig.TxtFuncMap()).
		Funcs(template.FuncMap{"tsString": quote}).
		ParseFS(templatesFS, "templates/module.ts.gotmpl"),
)

// Type is the generator type identifier
const Type = "io-ts"

// Generator implements the generator interface for io-ts modules
type Generator struct{}

// NewGenerator creates a new io-ts generator
func NewGenerator() *Generator {
	return &Generator{}
}

// GetType returns the generator type identifier
func (g *Generator) GetType() string {
	return Type
}

// FileExtension returns the extension of the rendered files
func (g *Generator) FileExtension() string {
	return ".ts"
}

// Generate renders the module of one operation.
func (g *Generator) Generate(opts config.Options, op ir.Operation) ([]byte, error) {
	if op.Handler == nil {
		return nil, fmt.Errorf("operation %s has no handler", op.Name)
	}
	h := op.Handler

	name := utils.Identifier(op.Name)
	params, paramsName := paramsType(h)
	headersDecl, headersArg := extraHeaders(h)

	data := map[string]any{
		"Name":             name,
		"Pascal":           utils.ToBigCamelCase(name),
		"Camel":            utils.ToSmallCamelCase(name),
		"FetchModule":      opts.FetchModule,
		"HasQuery":         len(h.ParamsIn(ir.InQuery)) > 0,
		"ParamsType":       params,
		"ParamsName":       paramsName,
		"Responses":        responses(h),
		"ResponseUnion":    responseUnion(h),
		"Has200":           h.Responses.Has(200),
		"EmptyBodyCodes":   emptyBodyCodes(h),
		"URL":              op.URL,
		"Method":           op.Method.Upper(),
		"URLExpression":    URLExpression(op.URL, h),
		"Body":             bodyExpression(h),
		"ExtraHeadersType": headersDecl,
		"ExtraHeadersArg":  headersArg,
	}

	var buf bytes.Buffer
	if err := moduleTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", moduleTemplate.Name(), err)
	}
	return buf.Bytes(), nil
}

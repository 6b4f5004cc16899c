package cli

import (
	"context"
	"io"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
	"github.com/blimu-dev/openapi-iots-gen/pkg/generator"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/openapi"
)

// RunGenerate generates the operations of the control files in opts.SpecDir.
func RunGenerate(ctx context.Context, opts config.Options) error {
	if opts.SpecDir == "" || opts.TargetDir == "" {
		return errors.New("--spec-dir and --out must be provided")
	}
	opts.SpecDir = absPath(opts.SpecDir)
	opts.TargetDir = absPath(opts.TargetDir)
	return generator.NewService().Run(ctx, opts)
}

// RunValidate validates one OpenAPI document.
func RunValidate(ctx context.Context, input string, timeout time.Duration) error {
	if err := openapi.ValidateDocument(ctx, input, openapi.FetchOptions{Timeout: timeout}); err != nil {
		return errors.Wrapf(err, "validating %s", input)
	}
	return nil
}

// InspectParams selects what RunInspect prints
type InspectParams struct {
	Input   string
	Path    string
	Method  string
	Timeout time.Duration
	Out     io.Writer
}

// RunInspect prints the handler model assembled from a document as YAML:
// every path and method, or only the handler selected by Path and Method.
func RunInspect(ctx context.Context, p InspectParams) error {
	model, err := generator.LoadSpec(ctx, p.Input, openapi.FetchOptions{Timeout: p.Timeout})
	if err != nil {
		return err
	}

	var dump any
	if p.Path != "" {
		method, err := ir.ParseMethod(p.Method)
		if err != nil {
			return err
		}
		h, err := model.Handler(p.Path, method)
		if err != nil {
			return err
		}
		dump = h.Describe()
	} else {
		paths := map[string]any{}
		for url, methods := range model.Paths.All() {
			byMethod := map[string]any{}
			for method, h := range methods.All() {
				byMethod[string(method)] = h.Describe()
			}
			paths[url] = byMethod
		}
		dump = map[string]any{"paths": paths}
	}

	enc := yaml.NewEncoder(p.Out)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return err
	}
	return enc.Close()
}

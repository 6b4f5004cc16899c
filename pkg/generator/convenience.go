package generator

import (
	"context"
	"path/filepath"

	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
	"github.com/blimu-dev/openapi-iots-gen/pkg/openapi"
)

// Generate is a convenience function that runs the default service
func Generate(ctx context.Context, opts config.Options) error {
	return NewService().Run(ctx, opts)
}

// GenerateDir generates every control file of specDir into targetDir with
// default options
func GenerateDir(ctx context.Context, specDir, targetDir, baseURL string) error {
	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return err
	}
	return Generate(ctx, config.Options{
		SpecDir:   specDir,
		TargetDir: absTarget,
		BaseURL:   baseURL,
	})
}

// ValidateSpec validates an OpenAPI specification
func ValidateSpec(ctx context.Context, input string) error {
	return openapi.ValidateDocument(ctx, input, openapi.FetchOptions{})
}

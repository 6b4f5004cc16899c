// Package openapigen generates TypeScript client modules with io-ts runtime
// validation from OpenAPI 3 specifications.
//
// A spec directory holds one control file per API, <name>.spec.json (or
// .yaml/.yml), naming the document to read and the operations to generate:
//
//	{
//	    "source": {"type": "url", "url": "/wallet/open-api"},
//	    "fixUrlParam": [{"from": "fixed", "to": "universe"}],
//	    "methods": {
//	        "getBalance": {"url": "/wallet/{universe}/balance", "method": "get"}
//	    }
//	}
//
// Every listed operation becomes one file, <prefix>_<name>_<operation>.ts.
//
// Quick Start:
//
//	import "github.com/blimu-dev/openapi-iots-gen"
//
//	err := openapigen.GenerateDir(ctx, "./specs", "./src/api", "https://api.example.com")
//
// For more control, see the generator package.
package openapigen

import (
	"context"

	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
	"github.com/blimu-dev/openapi-iots-gen/pkg/generator"
)

// Options controls a generation run. Zero fields take the values of
// config.DefaultOptions.
type Options = config.Options

// Generate runs generation with full options.
//
// Example:
//
//	err := openapigen.Generate(ctx, openapigen.Options{
//		SpecDir:   "./specs",
//		TargetDir: "./src/api",
//		BaseURL:   "https://api.example.com",
//		Target:    "wallet",
//		KeepGoing: true,
//	})
func Generate(ctx context.Context, opts Options) error {
	return generator.Generate(ctx, opts)
}

// GenerateDir generates every control file of specDir into targetDir,
// resolving url sources against baseURL.
func GenerateDir(ctx context.Context, specDir, targetDir, baseURL string) error {
	return generator.GenerateDir(ctx, specDir, targetDir, baseURL)
}

// ValidateSpec validates an OpenAPI specification file or URL.
// This is useful for checking if a spec is valid before generating from it.
//
// Example:
//
//	if err := openapigen.ValidateSpec(ctx, "./openapi.yaml"); err != nil {
//		log.Fatalf("Invalid OpenAPI spec: %v", err)
//	}
func ValidateSpec(ctx context.Context, specPath string) error {
	return generator.ValidateSpec(ctx, specPath)
}

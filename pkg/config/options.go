package config

import (
	"time"

	"github.com/imdario/mergo"
)

// TargetAll selects every control file of the spec directory
const TargetAll = "all"

// Options controls a generation run
type Options struct {
	// SpecDir holds the control files and file sources
	SpecDir string
	// TargetDir receives the generated files
	TargetDir string
	// BaseURL is prepended to url sources
	BaseURL string
	// Target is a spec name, or "all"
	Target string
	// Type selects the generator
	Type string
	// Prefix starts every generated file name: <prefix>_<spec>_<operation>
	Prefix string
	// FetchModule is the import path of fetchGeneralRaw in generated code
	FetchModule string
	// Timeout bounds each HTTP attempt when fetching url sources
	Timeout time.Duration
	// Retries is the number of extra fetch attempts. Negative disables retrying.
	Retries int
	// Concurrency bounds how many specs are generated at once
	Concurrency int
	// KeepGoing reports failed specs at the end instead of stopping at the first
	KeepGoing bool
	// Validate runs the OpenAPI validator over every document before generating
	Validate bool
}

// DefaultOptions returns the values used for unset options.
func DefaultOptions() Options {
	return Options{
		Target:      TargetAll,
		Type:        "io-ts",
		Prefix:      "openapi",
		FetchModule: "src_common/common/fetch",
		Timeout:     30 * time.Second,
		Retries:     3,
		Concurrency: 4,
	}
}

// WithDefaults returns a copy of o with every zero field taken from
// DefaultOptions.
func (o Options) WithDefaults() (Options, error) {
	if err := mergo.Merge(&o, DefaultOptions()); err != nil {
		return Options{}, err
	}
	return o, nil
}

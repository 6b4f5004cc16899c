package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
)

// Source types
const (
	SourceURL  = "url"
	SourceFile = "file"
)

// controlSuffixes are the file name endings of control files. The part of
// the name before the suffix is the spec name.
var controlSuffixes = []string{".spec.json", ".spec.yaml", ".spec.yml"}

// Spec is one control file: where to read an OpenAPI document from and
// which of its operations to generate
type Spec struct {
	// Name is derived from the control file name, e.g. wallet for wallet.spec.json
	Name string `yaml:"-"`
	// Path is the control file the spec was read from
	Path string `yaml:"-"`

	Source      Source            `yaml:"source"`
	FixURLParam []FixURLParam     `yaml:"fixUrlParam"`
	Methods     map[string]Method `yaml:"methods"`
	// PostCommand is an optional command to run after the spec's files are written.
	// Uses Docker Compose array format: ["npx", "prettier", "--write", "."]
	// The command will be executed in the target directory.
	PostCommand []string `yaml:"postCommand"`
}

// Source locates the OpenAPI document
type Source struct {
	Type string `yaml:"type"`
	// URL is appended to the base URL when Type is url
	URL string `yaml:"url"`
	// File is relative to the spec directory when Type is file
	File        string        `yaml:"file"`
	FixURLParam []FixURLParam `yaml:"fixUrlParam"`
}

// FixURLParam turns the literal path segment From into the path parameter To
type FixURLParam struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Method selects one operation of the document
type Method struct {
	URL    string    `yaml:"url"`
	Method ir.Method `yaml:"method"`
}

// FixURLParams returns the rewrites to apply, the source level ones first.
func (s *Spec) FixURLParams() []FixURLParam {
	out := make([]FixURLParam, 0, len(s.Source.FixURLParam)+len(s.FixURLParam))
	out = append(out, s.Source.FixURLParam...)
	return append(out, s.FixURLParam...)
}

// MethodNames returns the operation names in sorted order.
func (s *Spec) MethodNames() []string {
	names := make([]string, 0, len(s.Methods))
	for name := range s.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Location returns the file path or URL of the document.
func (s *Spec) Location(specDir, baseURL string) string {
	if s.Source.Type == SourceURL {
		return baseURL + s.Source.URL
	}
	return filepath.Join(specDir, s.Source.File)
}

// SpecName returns the spec name encoded in a control file name.
func SpecName(fileName string) (string, bool) {
	for _, suffix := range controlSuffixes {
		if name, ok := strings.CutSuffix(fileName, suffix); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

// Load loads one control file
func Load(path string) (*Spec, error) {
	name, ok := SpecName(filepath.Base(path))
	if !ok {
		return nil, fmt.Errorf("%s is not a control file (expected <name>%s)", path, strings.Join(controlSuffixes, ", <name>"))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &generrors.IOError{Op: "read", Target: path, Cause: err}
	}
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, &generrors.FormatError{Source: path, Cause: err}
	}
	spec.Name = name
	spec.Path = path
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *Spec) validate() error {
	switch s.Source.Type {
	case SourceURL:
		if s.Source.URL == "" {
			return generrors.Validationf(s.Path+"#/source", nil, "url source without url")
		}
	case SourceFile:
		if s.Source.File == "" {
			return generrors.Validationf(s.Path+"#/source", nil, "file source without file")
		}
	default:
		return generrors.Validationf(s.Path+"#/source/type", nil, "unknown source type %q", s.Source.Type)
	}

	for _, fix := range s.FixURLParams() {
		if fix.From == "" || fix.To == "" {
			return generrors.Validationf(s.Path+"#/fixUrlParam", nil, "fixUrlParam entries need both from and to")
		}
	}

	for _, name := range s.MethodNames() {
		m := s.Methods[name]
		at := s.Path + "#/methods/" + name
		if m.URL == "" {
			return generrors.Validationf(at, nil, "method %s has no url", name)
		}
		if m.Method == "" {
			return generrors.Validationf(at, nil, "method %s has no http method", name)
		}
	}
	return nil
}

// LoadDir loads every control file of a directory, sorted by spec name.
// Entries that are not control files are ignored.
func LoadDir(dir string) ([]*Spec, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &generrors.IOError{Op: "read", Target: dir, Cause: err}
	}

	var specs []*Spec
	seen := map[string]string{}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name, ok := SpecName(entry.Name())
		if !ok {
			continue
		}
		if prev, dup := seen[name]; dup {
			return nil, generrors.Validationf(filepath.Join(dir, entry.Name()), nil, "spec %s is also defined by %s", name, prev)
		}
		spec, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		seen[name] = entry.Name()
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs, nil
}

package generator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
	"github.com/blimu-dev/openapi-iots-gen/pkg/generator/iots"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
)

// Generator renders the client module of one operation
type Generator interface {
	// Generate renders the module text of op
	Generate(opts config.Options, op ir.Operation) ([]byte, error)
	// GetType returns the type identifier for this generator (e.g., "io-ts")
	GetType() string
	// FileExtension returns the extension of rendered files, including the dot
	FileExtension() string
}

// Registry manages available generators
type Registry struct {
	generators map[string]Generator
}

// NewRegistry creates a new generator registry
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
	}
}

// Register adds a generator to the registry
func (r *Registry) Register(gen Generator) {
	r.generators[gen.GetType()] = gen
}

// Get retrieves a generator by type
func (r *Registry) Get(genType string) (Generator, bool) {
	gen, exists := r.generators[genType]
	return gen, exists
}

// GetAvailableTypes returns all registered generator types, sorted
func (r *Registry) GetAvailableTypes() []string {
	types := make([]string, 0, len(r.generators))
	for t := range r.generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Service runs generation for the control files of a spec directory
type Service struct {
	registry *Registry
}

// NewService creates a new generator service with default generators
func NewService() *Service {
	registry := NewRegistry()
	registry.Register(iots.NewGenerator())
	return &Service{
		registry: registry,
	}
}

// NewServiceWithRegistry creates a new generator service with a custom registry
func NewServiceWithRegistry(registry *Registry) *Service {
	return &Service{
		registry: registry,
	}
}

// GetRegistry returns the generator registry
func (s *Service) GetRegistry() *Registry {
	return s.registry
}

// generatorFor returns the generator selected by opts.
func (s *Service) generatorFor(opts config.Options) (Generator, error) {
	gen, ok := s.registry.Get(opts.Type)
	if !ok {
		return nil, fmt.Errorf("unsupported generator type: %s (available: %s)", opts.Type, strings.Join(s.registry.GetAvailableTypes(), ", "))
	}
	return gen, nil
}

// executeCommand executes a single command in Docker Compose array format
func (s *Service) executeCommand(ctx context.Context, command []string, workDir, commandLabel string) error {
	if len(command) == 0 {
		return nil
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmdDescription := strings.Join(command, " ")
	zerolog.Ctx(ctx).Info().Str("command", cmdDescription).Msgf("running %s", commandLabel)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s (%s) failed: %w", commandLabel, cmdDescription, err)
	}

	return nil
}

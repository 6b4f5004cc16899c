package generator

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/blimu-dev/openapi-iots-gen/pkg/config"
	"github.com/blimu-dev/openapi-iots-gen/pkg/generrors"
	"github.com/blimu-dev/openapi-iots-gen/pkg/ir"
	"github.com/blimu-dev/openapi-iots-gen/pkg/openapi"
)

// Run generates the operations of every control file selected by
// opts.Target. Specs are processed concurrently; the work for one spec is
// sequential. Without KeepGoing the first failing spec cancels the others.
func (s *Service) Run(ctx context.Context, opts config.Options) error {
	opts, err := opts.WithDefaults()
	if err != nil {
		return err
	}
	if opts.SpecDir == "" || opts.TargetDir == "" {
		return stderrors.New("spec dir and target dir are required")
	}
	gen, err := s.generatorFor(opts)
	if err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx).With().Str("run", uuid.New().String()).Logger()
	ctx = logger.WithContext(ctx)

	all, err := config.LoadDir(opts.SpecDir)
	if err != nil {
		return err
	}
	specs, err := selectSpecs(all, opts.Target)
	if err != nil {
		return err
	}
	plan, err := PlanOutputs(all, opts.Prefix, gen.FileExtension())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.TargetDir, 0o755); err != nil {
		return &generrors.IOError{Op: "mkdir", Target: opts.TargetDir, Cause: err}
	}

	logger.Info().Int("specs", len(specs)).Str("target", opts.Target).Msg("generating")

	failures := make([]error, len(specs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, spec := range specs {
		g.Go(func() error {
			err := s.GenerateSpec(gctx, opts, gen, spec, plan)
			if err == nil {
				return nil
			}
			err = errors.Wrapf(err, "spec %s", spec.Name)
			if !opts.KeepGoing {
				return err
			}
			logger.Error().Err(err).Str("spec", spec.Name).Msg("spec failed")
			failures[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return stderrors.Join(failures...)
}

func selectSpecs(specs []*config.Spec, target string) ([]*config.Spec, error) {
	if target == config.TargetAll {
		return specs, nil
	}
	for _, spec := range specs {
		if spec.Name == target {
			return []*config.Spec{spec}, nil
		}
	}
	return nil, fmt.Errorf("no control file for spec %q", target)
}

// GenerateSpec renders every operation of one control file, then replaces
// the spec's previously generated files with the new ones. Nothing is
// deleted or written unless every operation rendered. plan covers every
// spec sharing the target directory.
func (s *Service) GenerateSpec(ctx context.Context, opts config.Options, gen Generator, spec *config.Spec, plan *OutputPlan) error {
	logger := zerolog.Ctx(ctx).With().Str("spec", spec.Name).Logger()
	ctx = logger.WithContext(ctx)

	location := spec.Location(opts.SpecDir, opts.BaseURL)
	logger.Info().Str("source", location).Msg("reading spec")

	model, err := LoadSpec(ctx, location, openapi.FetchOptions{
		Timeout:  opts.Timeout,
		Retries:  opts.Retries,
		Validate: opts.Validate,
	})
	if err != nil {
		return err
	}

	ops, err := SelectOperations(model, spec, opts.Prefix)
	if err != nil {
		return err
	}

	rendered := make(map[string][]byte, len(ops))
	for _, op := range ops {
		content, err := gen.Generate(opts, op)
		if err != nil {
			return errors.Wrapf(err, "operation %s", op.Name)
		}
		rendered[op.Name+gen.FileExtension()] = content
	}

	if err := removeOldFiles(ctx, opts.TargetDir, opts.Prefix, spec.Name, plan); err != nil {
		return err
	}
	for _, op := range ops {
		fileName := op.Name + gen.FileExtension()
		target := filepath.Join(opts.TargetDir, fileName)
		if err := os.WriteFile(target, rendered[fileName], 0o644); err != nil {
			return &generrors.IOError{Op: "write", Target: target, Cause: err}
		}
		logger.Info().Str("file", target).Str("operation", op.Name).Msg("generated")
	}

	return s.executeCommand(ctx, spec.PostCommand, opts.TargetDir, "post-command")
}

// LoadSpec loads, normalizes and assembles the document at location.
func LoadSpec(ctx context.Context, location string, fetch openapi.FetchOptions) (*ir.Spec, error) {
	raw, err := openapi.LoadDocument(ctx, location, fetch)
	if err != nil {
		return nil, err
	}
	doc, err := openapi.Normalize(raw)
	if err != nil {
		return nil, err
	}
	model, err := BuildSpec(doc)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Int("paths", model.Paths.Len()).Msg("assembled spec")
	return model, nil
}

// SelectOperations applies the control file's url rewrites and picks the
// handler of every listed method. Operations are named
// <prefix>_<spec>_<method name> and returned in method name order.
func SelectOperations(model *ir.Spec, spec *config.Spec, prefix string) ([]ir.Operation, error) {
	urls := make(map[string]string, len(spec.Methods))
	for name, m := range spec.Methods {
		urls[name] = m.URL
	}

	for _, fix := range spec.FixURLParams() {
		var err error
		if model, err = FixURLParam(model, fix.From, fix.To); err != nil {
			return nil, err
		}
		for name, url := range urls {
			urls[name] = FixURL(url, fix.From, fix.To)
		}
	}

	ops := make([]ir.Operation, 0, len(spec.Methods))
	for _, name := range spec.MethodNames() {
		m := spec.Methods[name]
		h, err := model.Handler(urls[name], m.Method)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %s", name)
		}
		ops = append(ops, ir.Operation{
			Name:    operationName(prefix, spec.Name, name),
			URL:     urls[name],
			Method:  m.Method,
			Handler: h,
		})
	}
	return ops, nil
}

func operationName(prefix, spec, method string) string {
	return fmt.Sprintf("%s_%s_%s", prefix, spec, method)
}

// OutputPlan records the files the control files of a spec directory
// generate and the spec names sharing the target directory.
type OutputPlan struct {
	Names []string
	// Files maps a generated file name to the spec producing it
	Files map[string]string
}

// PlanOutputs computes the file names of every operation of specs. Two specs
// producing the same file, or a file that the cleanup of another spec would
// claim, fail the plan.
func PlanOutputs(specs []*config.Spec, prefix, ext string) (*OutputPlan, error) {
	plan := &OutputPlan{Files: map[string]string{}}
	for _, spec := range specs {
		plan.Names = append(plan.Names, spec.Name)
	}

	for _, spec := range specs {
		for _, method := range spec.MethodNames() {
			file := operationName(prefix, spec.Name, method) + ext
			if other, dup := plan.Files[file]; dup {
				return nil, generrors.Validationf(spec.Path+"#/methods/"+method, nil,
					"specs %s and %s both generate %s", other, spec.Name, file)
			}
			if owner := ownerOf(file, prefix, plan.Names); owner != spec.Name {
				return nil, generrors.Validationf(spec.Path+"#/methods/"+method, nil,
					"file %s of spec %s would be removed by the cleanup of spec %s", file, spec.Name, owner)
			}
			plan.Files[file] = spec.Name
		}
	}
	return plan, nil
}

// removeOldFiles deletes the files previously generated for a spec: every
// entry of dir named <prefix>_<spec>_... that does not belong to another
// spec with a longer name or to another spec's planned output. A matching
// entry that is not a regular file is an error.
func removeOldFiles(ctx context.Context, dir, prefix, spec string, plan *OutputPlan) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &generrors.IOError{Op: "read", Target: dir, Cause: err}
	}

	for _, entry := range entries {
		if ownerOf(entry.Name(), prefix, plan.Names) != spec {
			continue
		}
		if owner, ok := plan.Files[entry.Name()]; ok && owner != spec {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if !entry.Type().IsRegular() {
			return &generrors.IOError{Op: "remove", Target: path, Cause: stderrors.New("a regular file was expected")}
		}
		zerolog.Ctx(ctx).Info().Str("file", path).Msg("deleting old file")
		if err := os.Remove(path); err != nil {
			return &generrors.IOError{Op: "remove", Target: path, Cause: err}
		}
	}
	return nil
}

// ownerOf returns the spec whose generated files match fileName. When the
// names of several specs match, the longest one owns the file.
func ownerOf(fileName, prefix string, names []string) string {
	owner := ""
	for _, name := range names {
		if strings.HasPrefix(fileName, prefix+"_"+name+"_") && len(name) > len(owner) {
			owner = name
		}
	}
	return owner
}

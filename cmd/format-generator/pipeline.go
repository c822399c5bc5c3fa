package main

import (
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"format-generator/internal/analyze"
	"format-generator/internal/callsite"
	"format-generator/internal/diagnostic"
	"format-generator/internal/gen"
	"format-generator/internal/plan"
)

// result is one call-site file carried through the pipeline.
type result struct {
	source    string
	outputDir string
	plan      *plan.Plan
	file      *gen.GeneratedFile
}

// resolve loads a call-site file, loads the packages it names and resolves
// its calls. The plan is returned alongside a resolution error so its
// diagnostics can be printed.
func (a *app) resolve(path string) (*plan.Plan, error) {
	f, err := callsite.LoadFile(path)
	if err != nil {
		return nil, err
	}

	var graph *analyze.TypeGraph

	patterns := append(append([]string(nil), a.cfg.Packages...), f.Packages...)
	if len(patterns) > 0 {
		a.logger.Debug("loading packages", zap.Strings("patterns", patterns))

		graph, err = analyze.NewAnalyzer().WithDir(filepath.Dir(path)).LoadPackages(patterns...)
		if err != nil {
			return nil, err
		}
	}

	resolver := plan.NewResolver(f, graph, plan.ResolutionConfig{StrictMode: a.cfg.Strict}).
		WithLogger(a.logger.With(zap.String("source", path))).
		WithSource(filepath.Base(path))

	return resolver.Resolve()
}

// build runs the full pipeline for one call-site file without writing.
func (a *app) build(path string, stderr io.Writer) (*result, error) {
	p, err := a.resolve(path)
	if p != nil {
		printDiagnostics(stderr, path, &p.Diagnostics)
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	outputDir := a.cfg.OutputDir
	if outputDir == "" {
		outputDir = filepath.Dir(path)
	}

	cfg := gen.DefaultGeneratorConfig()
	cfg.OutputDir = outputDir
	cfg.GenerateComments = a.cfg.Comments

	file, err := gen.NewGenerator(cfg).Generate(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &result{source: path, outputDir: outputDir, plan: p, file: file}, nil
}

// buildAll builds every path, reporting all failures before giving up.
func (a *app) buildAll(paths []string, stderr io.Writer) ([]*result, error) {
	results := make([]*result, 0, len(paths))
	failed := 0

	for _, path := range paths {
		res, err := a.build(path, stderr)
		if err != nil {
			a.logger.Error("generation failed", zap.String("source", path), zap.Error(err))
			failed++

			continue
		}

		results = append(results, res)
	}

	if failed > 0 {
		return nil, fmt.Errorf("%d of %d call-site files failed", failed, len(paths))
	}

	return results, nil
}

func printDiagnostics(w io.Writer, source string, d *diagnostic.Diagnostics) {
	for _, e := range d.Errors {
		fmt.Fprintf(w, "%s: error: %s\n", source, e)
	}

	for _, warn := range d.Warnings {
		fmt.Fprintf(w, "%s: warning: %s\n", source, warn)
	}
}

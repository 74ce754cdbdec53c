package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/errgroup"

	"github.com/qian-o/CodeGenerator/internal/annotations"
	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/generator"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/scanner"
	"github.com/qian-o/CodeGenerator/internal/utils"
	"github.com/qian-o/CodeGenerator/pkg/notify"
)

// GenerationSummary contains information about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	PackagesGenerated int
	Candidates        int
	Written           []string
	Unchanged         []string
	Removed           []string
	Warnings          int
}

// Drift is one on-disk artifact that differs from what generation produces
type Drift struct {
	Path   string
	Reason string // "missing", "modified" or "stale"
}

// Generator coordinates the CLI generation process
type Generator struct {
	config        Config
	scanner       *DirectoryScanner
	modules       *ModuleResolver
	reporter      *DiagnosticReporter
	diagnostics   *utils.DiagnosticSystem
	codeGenerator generator.CodeGenerator
	fileProcessor *utils.FileProcessor
	summary       GenerationSummary
}

// NewGenerator creates a CLI generator for config
func NewGenerator(config Config, diagnostics *utils.DiagnosticSystem) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	markers, err := annotations.NewBuiltinRegistry(config.Aliases...)
	if err != nil {
		return nil, errors.WrapConfigurationError("markers", "load", err)
	}

	reporter := NewDiagnosticReporter(diagnostics)
	return &Generator{
		config:      config,
		scanner:     NewDirectoryScanner(),
		modules:     NewModuleResolver(),
		reporter:    reporter,
		diagnostics: diagnostics,
		codeGenerator: generator.NewGenerator(generator.Options{
			Runtime:  config.Runtime,
			Markers:  markers,
			Reporter: reporter,
		}),
		fileProcessor: utils.NewFileProcessor(),
	}, nil
}

// Reporter returns the reporter used for diagnostics and errors
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GetSummary returns the summary of the last Generate
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Plan runs one pass per package directory, at most Jobs at a time. The
// first failing pass cancels the others and no artifact set is returned.
func (g *Generator) Plan(ctx context.Context) ([]*models.ArtifactSet, error) {
	dirs, err := g.scanner.ScanDirectories(g.config.Directories)
	if err != nil {
		return nil, err
	}
	g.diagnostics.Verbose("Found %d package directories", len(dirs))
	if len(dirs) == 0 {
		return nil, nil
	}

	sets := make([]*models.ArtifactSet, len(dirs))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(min(g.config.Jobs, len(dirs)))

	for i, dir := range dirs {
		i, dir := i, dir
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			pkg, err := scanner.LoadDir(egctx, dir)
			if err != nil {
				return err
			}
			for _, terr := range pkg.TypeErrors {
				g.reporter.Debug("%s: tolerated type error: %v", pkg.Path, terr)
			}

			set, err := g.codeGenerator.Run(egctx, pkg)
			if err != nil {
				return err
			}
			g.reporter.Debug("%s: pass %s produced %d artifacts in %s",
				pkg.Path, set.PassID, len(set.Artifacts), time.Since(start).Round(time.Millisecond))

			sets[i] = set
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if g.config.Runtime == models.RuntimeImport {
		g.checkRuntimeReachable(sets)
	}
	return sets, nil
}

// checkRuntimeReachable warns about modules whose generated code imports a
// runtime package they do not require
func (g *Generator) checkRuntimeReachable(sets []*models.ArtifactSet) {
	warned := make(map[string]bool)
	for _, set := range sets {
		if set.Candidates == 0 {
			continue
		}
		ok, info, err := g.modules.ReachesRuntime(set.Dir)
		if err != nil {
			g.reporter.Debug("%s: %v", set.Dir, err)
			continue
		}
		if !ok && !warned[info.Path] {
			warned[info.Path] = true
			g.reporter.Diagnostic(set.PassID, models.Diagnostic{
				Severity: models.SeverityWarning,
				Pos:      models.SourcePosition{File: filepath.Join(info.Root, "go.mod")},
				Message:  fmt.Sprintf("module %s does not require %s; run go get for it or use --runtime shim", info.Path, notify.ImportPath),
			})
		}
	}
}

// desired returns the artifacts that belong on disk for set. A package
// without markers gets no files, not even the shim.
func desired(set *models.ArtifactSet) []models.Artifact {
	if set.Candidates == 0 {
		return nil
	}
	return set.Artifacts
}

// stale returns the generated files in the package directory that the set
// no longer produces
func (g *Generator) stale(set *models.ArtifactSet) ([]string, error) {
	keep := make(map[string]bool)
	for _, a := range desired(set) {
		keep[a.ID] = true
	}

	existing, err := g.fileProcessor.FindGeneratedFiles(set.Dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, path := range existing {
		if !keep[filepath.Base(path)] {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// Generate plans every package and only then writes artifacts and removes
// stale ones. Files whose content is unchanged are not rewritten.
func (g *Generator) Generate(ctx context.Context) error {
	g.summary = GenerationSummary{}

	sets, err := g.Plan(ctx)
	if err != nil {
		return err
	}

	for _, set := range sets {
		g.summary.PackagesProcessed++
		g.summary.Candidates += set.Candidates
		if set.Candidates > 0 {
			g.summary.PackagesGenerated++
		}

		for _, a := range desired(set) {
			path := filepath.Join(set.Dir, a.ID)
			same, err := utils.FileMatches(path, []byte(a.Content))
			if err != nil {
				return err
			}
			if same {
				g.summary.Unchanged = append(g.summary.Unchanged, path)
				continue
			}
			if err := utils.WriteFileAtomic(path, []byte(a.Content)); err != nil {
				return err
			}
			g.summary.Written = append(g.summary.Written, path)
			g.diagnostics.Verbose("wrote %s", path)
		}

		paths, err := g.stale(set)
		if err != nil {
			return err
		}
		removed, err := g.fileProcessor.CleanFiles(paths)
		g.summary.Removed = append(g.summary.Removed, removed...)
		if err != nil {
			return err
		}
	}

	g.summary.Warnings = g.reporter.Warnings()
	return nil
}

// Check regenerates in memory and reports every on-disk difference
func (g *Generator) Check(ctx context.Context) ([]Drift, error) {
	sets, err := g.Plan(ctx)
	if err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, set := range sets {
		for _, a := range desired(set) {
			path := filepath.Join(set.Dir, a.ID)
			same, err := utils.FileMatches(path, []byte(a.Content))
			if err != nil {
				return nil, err
			}
			if same {
				continue
			}
			reason := "modified"
			if _, err := os.Stat(path); os.IsNotExist(err) {
				reason = "missing"
			}
			drifts = append(drifts, Drift{Path: path, Reason: reason})
		}

		paths, err := g.stale(set)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			drifts = append(drifts, Drift{Path: path, Reason: "stale"})
		}
	}
	return drifts, nil
}

// DryRun plans every package and encodes the artifact sets to w
func (g *Generator) DryRun(ctx context.Context, w io.Writer) error {
	sets, err := g.Plan(ctx)
	if err != nil {
		return err
	}

	var out []*models.ArtifactSet
	for _, set := range sets {
		if set.Candidates > 0 {
			out = append(out, set)
		}
	}
	return EncodeArtifactSets(w, g.config.Format, out)
}

// EncodeArtifactSets writes sets to w in format
func EncodeArtifactSets(w io.Writer, format string, sets []*models.ArtifactSet) error {
	if sets == nil {
		sets = []*models.ArtifactSet{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sets)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(sets)
	case FormatText, "":
		for _, set := range sets {
			for _, a := range set.Artifacts {
				if _, err := fmt.Fprintf(w, "// ==> %s\n%s\n", filepath.Join(set.Dir, a.ID), a.Content); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return errors.Newf(errors.ConfigurationErrorCode, "unknown format %q", format)
	}
}

package generator

import (
	"context"

	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/scanner"
)

// CodeGenerator runs one generation pass over a loaded package
type CodeGenerator interface {
	Run(ctx context.Context, pkg *scanner.Package) (*models.ArtifactSet, error)
}

// Reporter receives the non-fatal findings of a pass
type Reporter interface {
	Diagnostic(passID string, d models.Diagnostic)
	Debug(format string, args ...interface{})
}

// NopReporter discards everything
type NopReporter struct{}

func (NopReporter) Diagnostic(string, models.Diagnostic) {}
func (NopReporter) Debug(string, ...interface{})         {}

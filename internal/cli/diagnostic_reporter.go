package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/utils"
)

// DiagnosticReporter provides user-friendly error reporting. It receives
// the findings of concurrent passes, so output is serialized.
type DiagnosticReporter struct {
	diagnostics *utils.DiagnosticSystem
	verbose     bool

	mu       sync.Mutex
	warnings int
}

// NewDiagnosticReporter creates a new diagnostic reporter
func NewDiagnosticReporter(diagnostics *utils.DiagnosticSystem) *DiagnosticReporter {
	return &DiagnosticReporter{
		diagnostics: diagnostics,
		verbose:     diagnostics.Enabled(utils.DiagnosticVerbose),
	}
}

// Diagnostic implements generator.Reporter
func (r *DiagnosticReporter) Diagnostic(passID string, d models.Diagnostic) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Severity == models.SeverityWarning {
		r.warnings++
	}

	msg := d.String()
	if r.verbose {
		msg = fmt.Sprintf("%s [pass %s]", msg, shortPassID(passID))
	}

	switch d.Severity {
	case models.SeverityWarning:
		r.diagnostics.Warn("%s", msg)
	default:
		r.diagnostics.Info("%s", msg)
	}
}

// Debug implements generator.Reporter
func (r *DiagnosticReporter) Debug(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.diagnostics.Debug(format, args...)
}

// Warnings returns the number of warnings reported so far
func (r *DiagnosticReporter) Warnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

// ReportError prints err with its location, context and suggestions.
// Collected errors are reported one by one.
func (r *DiagnosticReporter) ReportError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.diagnostics.ErrorWriter()
	if r.diagnostics.Level() == utils.DiagnosticSilent {
		return
	}

	var multi *errors.MultipleErrors
	if stderrors.As(err, &multi) {
		fmt.Fprintf(out, "\n%d errors:\n", len(multi.Errors))
		for i, e := range multi.Errors {
			fmt.Fprintf(out, "\n%d. ", i+1)
			r.reportOne(out, e)
		}
		return
	}

	fmt.Fprintln(out)
	r.reportOne(out, err)
}

func (r *DiagnosticReporter) reportOne(out io.Writer, err error) {
	var ne errors.NotifyError
	if !stderrors.As(err, &ne) {
		fmt.Fprintf(out, "%s\n", err.Error())
		return
	}

	header := color.New(color.FgRed, color.Bold)
	if r.diagnostics.UseColors() {
		header.EnableColor()
	} else {
		header.DisableColor()
	}
	header.Fprintf(out, "%s", ne.ErrorCode())
	fmt.Fprintf(out, ": %s\n", errors.Describe(ne))

	if loc := ne.Location(); !loc.IsEmpty() {
		fmt.Fprintf(out, "   at %s\n", loc)
	}

	if r.verbose {
		r.printContext(out, ne.Context())
		if cause := ne.Unwrap(); cause != nil {
			fmt.Fprintf(out, "   cause: %v\n", cause)
		}
	}

	if hints := ne.Suggestions(); len(hints) > 0 {
		fmt.Fprintf(out, "   Suggestions:\n")
		for i, hint := range hints {
			fmt.Fprintf(out, "     %d. %s\n", i+1, hint)
		}
	}
}

// printContext prints context information in key order
func (r *DiagnosticReporter) printContext(out io.Writer, context map[string]interface{}) {
	if len(context) == 0 {
		return
	}

	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(out, "   %s: %v\n", formatContextKey(key), context[key])
	}
}

// formatContextKey converts snake_case keys to Title Case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func shortPassID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/qian-o/CodeGenerator/internal/cli"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <directory-paths...>",
		Short: "Write generated files for the marked types",
		Example: `  notifygen generate ./...
  notifygen generate --runtime import ./internal/views
  notifygen generate --dry-run --format json ./...`,
		Args: cobra.MinimumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().Bool("dry-run", false, "print the artifacts instead of writing them")
	cmd.Flags().String("format", cli.FormatText, "dry-run output format (text|json|msgpack)")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	g, diagnostics, err := setup(cmd, args)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		if err := g.DryRun(cmd.Context(), cmd.OutOrStdout()); err != nil {
			g.Reporter().ReportError(err)
			return err
		}
		return nil
	}

	diagnostics.Header("generating")
	if err := g.Generate(cmd.Context()); err != nil {
		g.Reporter().ReportError(err)
		if written := g.GetSummary().Written; len(written) > 0 {
			diagnostics.Error("Generation stopped after writing %d file(s):", len(written))
			for _, path := range written {
				diagnostics.List("%s", path)
			}
		} else {
			diagnostics.Error("Generation failed, no files were written")
		}
		return err
	}

	summary := g.GetSummary()
	if len(summary.Written) > 0 {
		diagnostics.Subsection("Written")
		for _, path := range summary.Written {
			diagnostics.Progress("%s", path)
		}
	}
	if len(summary.Removed) > 0 {
		diagnostics.Subsection("Removed")
		for _, path := range summary.Removed {
			diagnostics.List("%s", path)
		}
	}

	diagnostics.Summary("Generation complete", map[string]interface{}{
		"Packages processed": summary.PackagesProcessed,
		"Packages generated": summary.PackagesGenerated,
		"Marked members":     summary.Candidates,
		"Files written":      len(summary.Written),
		"Files unchanged":    len(summary.Unchanged),
		"Files removed":      len(summary.Removed),
		"Warnings":           summary.Warnings,
	})
	return nil
}

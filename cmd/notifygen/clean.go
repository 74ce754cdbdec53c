package main

import (
	"github.com/spf13/cobra"

	"github.com/qian-o/CodeGenerator/internal/cli"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <directory-paths...>",
		Short: "Delete generated files",
		Long: `Delete the autogen_*.go files written by notifygen. Files are only removed
when their first line is the notifygen generated-code header.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runClean,
	}
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	diagnostics := newDiagnostics(cmd, cfg)
	reporter := cli.NewDiagnosticReporter(diagnostics)

	removed, err := cli.NewCleaner().CleanGeneratedFiles(args)
	for _, path := range removed {
		diagnostics.List("removed %s", path)
	}
	if err != nil {
		reporter.ReportError(err)
		return err
	}

	diagnostics.Success("Removed %d generated file(s)", len(removed))
	return nil
}

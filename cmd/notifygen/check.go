package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <directory-paths...>",
		Short: "Fail when generated files are missing, modified or stale",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	g, diagnostics, err := setup(cmd, args)
	if err != nil {
		return err
	}

	drifts, err := g.Check(cmd.Context())
	if err != nil {
		g.Reporter().ReportError(err)
		return err
	}

	if len(drifts) == 0 {
		diagnostics.Success("Generated files are up to date")
		return nil
	}

	for _, d := range drifts {
		diagnostics.Error("%s: %s", d.Path, d.Reason)
	}
	diagnostics.Error("Run notifygen generate to update %d file(s)", len(drifts))
	return fmt.Errorf("%d generated file(s) out of date", len(drifts))
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/qian-o/CodeGenerator/internal/cli"
	"github.com/qian-o/CodeGenerator/internal/models"
	"github.com/qian-o/CodeGenerator/internal/utils"
)

// loadConfig layers notifygen.toml, the environment and the flags that were
// set explicitly
func loadConfig(cmd *cobra.Command, args []string) (cli.Config, error) {
	cfg, err := cli.LoadConfig(".", nil)
	if err != nil {
		return cli.Config{}, err
	}
	cfg.Directories = args

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose, _ = flags.GetBool("verbose")
	}
	if flags.Changed("quiet") {
		cfg.Quiet, _ = flags.GetBool("quiet")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("runtime") {
		value, _ := flags.GetString("runtime")
		mode, err := models.ParseRuntimeMode(value)
		if err != nil {
			return cli.Config{}, err
		}
		cfg.Runtime = mode
	}
	if flags.Changed("alias") {
		cfg.Aliases, _ = flags.GetStringSlice("alias")
	}
	if f := flags.Lookup("dry-run"); f != nil && f.Changed {
		cfg.DryRun, _ = flags.GetBool("dry-run")
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		cfg.Format, _ = flags.GetString("format")
	}

	return cfg, nil
}

// newDiagnostics creates the diagnostic system for cfg. Dry runs keep
// stdout for the encoded artifacts.
func newDiagnostics(cmd *cobra.Command, cfg cli.Config) *utils.DiagnosticSystem {
	level := utils.DiagnosticInfo
	switch {
	case cfg.Quiet:
		level = utils.DiagnosticError
	case cfg.Verbose:
		level = utils.DiagnosticDebug
	}

	diagnostics := utils.NewDiagnosticSystem(level)
	if cfg.DryRun {
		diagnostics.SetOutput(cmd.ErrOrStderr(), cmd.ErrOrStderr())
	} else {
		diagnostics.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
	return diagnostics
}

// setup builds the CLI generator for a command. Configuration errors are
// reported before returning.
func setup(cmd *cobra.Command, args []string) (*cli.Generator, *utils.DiagnosticSystem, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		cli.NewDiagnosticReporter(newDiagnostics(cmd, cli.DefaultConfig())).ReportError(err)
		return nil, nil, err
	}

	diagnostics := newDiagnostics(cmd, cfg)
	if cfg.ProjectFile != "" {
		diagnostics.Verbose("Using %s", cfg.ProjectFile)
	}
	diagnostics.Debug("runtime=%s jobs=%d aliases=%v", cfg.Runtime, cfg.Jobs, cfg.Aliases)

	g, err := cli.NewGenerator(cfg, diagnostics)
	if err != nil {
		cli.NewDiagnosticReporter(diagnostics).ReportError(err)
		return nil, nil, err
	}
	return g, diagnostics, nil
}

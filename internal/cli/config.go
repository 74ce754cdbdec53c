package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	notifyerrors "github.com/qian-o/CodeGenerator/internal/errors"
	"github.com/qian-o/CodeGenerator/internal/models"
)

// ProjectFileName is the optional per-project configuration file
const ProjectFileName = "notifygen.toml"

// Dry-run output formats
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatMsgpack = "msgpack"
)

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for marked Go files.
	// Entries ending in /... are scanned recursively.
	Directories []string

	// Runtime selects shim injection or importing the runtime package
	Runtime models.RuntimeMode

	// Aliases are extra marker namespaces accepted next to notify
	Aliases []string

	// Jobs bounds the number of packages processed concurrently
	Jobs int

	// Verbose enables detailed logging and error reporting
	Verbose bool

	// Quiet only shows errors
	Quiet bool

	// DryRun writes artifact sets to stdout in Format instead of the filesystem
	DryRun bool
	Format string

	// ProjectFile is the notifygen.toml that was applied, if any
	ProjectFile string
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() Config {
	return Config{
		Runtime: models.RuntimeShim,
		Jobs:    runtime.GOMAXPROCS(0),
		Format:  FormatText,
	}
}

// ProjectFile mirrors notifygen.toml
type ProjectFile struct {
	Markers markersSection `toml:"markers"`
	Output  outputSection  `toml:"output"`
	Run     runSection     `toml:"run"`
}

type markersSection struct {
	Aliases []string `toml:"aliases"`
}

type outputSection struct {
	Runtime string `toml:"runtime"`
}

type runSection struct {
	Jobs int `toml:"jobs"`
}

// envConfig lists the environment variables. Fields are pre-filled from the
// lower layers; unset variables leave them untouched.
type envConfig struct {
	Jobs    int      `env:"NOTIFYGEN_JOBS"`
	Runtime string   `env:"NOTIFYGEN_RUNTIME"`
	Verbose bool     `env:"NOTIFYGEN_VERBOSE"`
	Aliases []string `env:"NOTIFYGEN_ALIASES" envSeparator:","`
}

// FindProjectFile walks up from startDir looking for notifygen.toml
func FindProjectFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadProjectFile decodes a notifygen.toml. Unknown keys are rejected.
func LoadProjectFile(path string) (ProjectFile, error) {
	var pf ProjectFile
	meta, err := toml.DecodeFile(path, &pf)
	if err != nil {
		return ProjectFile{}, notifyerrors.WrapConfigurationError(path, "parse", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return ProjectFile{}, notifyerrors.WrapConfigurationError(path, "parse",
			fmt.Errorf("unknown keys: %s", strings.Join(keys, ", ")))
	}
	return pf, nil
}

// ApplyProjectFile overlays the values set in pf
func (c *Config) ApplyProjectFile(pf ProjectFile) error {
	if len(pf.Markers.Aliases) > 0 {
		c.Aliases = append([]string(nil), pf.Markers.Aliases...)
	}
	if pf.Output.Runtime != "" {
		mode, err := models.ParseRuntimeMode(pf.Output.Runtime)
		if err != nil {
			return err
		}
		c.Runtime = mode
	}
	if pf.Run.Jobs != 0 {
		c.Jobs = pf.Run.Jobs
	}
	return nil
}

// ApplyEnv overlays the NOTIFYGEN_* variables. A nil environ reads the
// process environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	ec := envConfig{
		Jobs:    c.Jobs,
		Runtime: string(c.Runtime),
		Verbose: c.Verbose,
		Aliases: c.Aliases,
	}
	if err := env.ParseWithOptions(&ec, env.Options{Environment: environ}); err != nil {
		return notifyerrors.WrapConfigurationError("environment", "parse", err)
	}

	mode, err := models.ParseRuntimeMode(ec.Runtime)
	if err != nil {
		return notifyerrors.WrapConfigurationError("environment", "parse", err)
	}

	c.Jobs = ec.Jobs
	c.Runtime = mode
	c.Verbose = ec.Verbose
	c.Aliases = ec.Aliases
	return nil
}

// LoadConfig layers defaults, the nearest notifygen.toml above startDir and
// the environment. Flags are applied by the caller on top.
func LoadConfig(startDir string, environ map[string]string) (Config, error) {
	cfg := DefaultConfig()

	path, ok, err := FindProjectFile(startDir)
	if err != nil {
		return Config{}, err
	}
	if ok {
		pf, err := LoadProjectFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := cfg.ApplyProjectFile(pf); err != nil {
			return Config{}, notifyerrors.WrapConfigurationError(path, "apply", err)
		}
		cfg.ProjectFile = path
	}

	if err := cfg.ApplyEnv(environ); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the final configuration
func (c *Config) Validate() error {
	if len(c.Directories) == 0 {
		return notifyerrors.New(notifyerrors.ConfigurationErrorCode, "at least one directory path is required")
	}
	if c.Jobs < 1 {
		return notifyerrors.Newf(notifyerrors.ConfigurationErrorCode, "jobs must be at least 1, got %d", c.Jobs)
	}
	if _, err := models.ParseRuntimeMode(string(c.Runtime)); err != nil {
		return notifyerrors.WrapConfigurationError("runtime", "validate", err)
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatMsgpack:
	default:
		return notifyerrors.Newf(notifyerrors.ConfigurationErrorCode,
			"unknown format %q (want %s, %s or %s)", c.Format, FormatText, FormatJSON, FormatMsgpack)
	}
	if c.Verbose && c.Quiet {
		return notifyerrors.New(notifyerrors.ConfigurationErrorCode, "--verbose and --quiet are mutually exclusive")
	}
	return nil
}

// Package cli implements the pywrangler command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/workers-py/pywrangler/pkg/buildinfo"
	"github.com/workers-py/pywrangler/pkg/config"
	"github.com/workers-py/pywrangler/pkg/manifest"
	"github.com/workers-py/pywrangler/pkg/proc"
	"github.com/workers-py/pywrangler/pkg/pyruntime"
	pysync "github.com/workers-py/pywrangler/pkg/sync"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "pywrangler"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// runner handles external processes; nil means an os/exec-backed
	// runner is created per command. Tests swap in a fake.
	runner proc.Runner
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Pywrangler manages Python dependencies for Cloudflare Workers",
		Long:         `Pywrangler is a wrangler wrapper for Python Workers. It keeps the local development virtual environment and the deployed package bundle in sync with pyproject.toml, and forwards everything else to wrangler.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.syncCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Project Discovery
// =============================================================================

// project is the resolved state of the Workers project the command was
// invoked in: manifest location, wrangler config, and the Python runtime
// version the config selects.
type project struct {
	manifestPath string
	layout       pysync.Layout
	config       *config.Wrangler
	runtime      pyruntime.Version
}

// loadProject locates pyproject.toml from the working directory and resolves
// the project's configuration and runtime version.
func (c *CLI) loadProject() (*project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	manifestPath, err := manifest.Find(cwd)
	if err != nil {
		return nil, err
	}
	root := manifest.Root(manifestPath)

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	rt, err := pyruntime.Resolve(cfg.CompatibilityDate, cfg.CompatibilityFlags)
	if err != nil {
		return nil, err
	}

	return &project{
		manifestPath: manifestPath,
		layout:       pysync.NewLayout(root),
		config:       cfg,
		runtime:      rt,
	}, nil
}

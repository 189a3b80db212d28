package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/workers-py/pywrangler/pkg/manifest"
	pysync "github.com/workers-py/pywrangler/pkg/sync"
)

// syncCommand creates the sync command for installing Python dependencies.
func (c *CLI) syncCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Install Python dependencies for development and deployment",
		Long: `Install the dependencies declared in pyproject.toml into both targets:
the local development virtual environment (.venv-workers) and the package
bundle deployed with the Worker (python_modules).

The sync is skipped when neither target is older than pyproject.toml;
use --force to run it anyway.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSync(cmd.Context(), force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "sync even if dependencies appear up to date")

	return cmd
}

// runSync runs the full synchronization pipeline: locate the project, check
// staleness, bootstrap the Python environments, and install the declared
// requirements into both targets.
func (c *CLI) runSync(ctx context.Context, force bool) error {
	proj, err := c.loadProject()
	if err != nil {
		return err
	}

	if !force && !pysync.IsSyncNeeded(proj.manifestPath, proj.layout) {
		printInfo("Python dependencies are up to date")
		return nil
	}

	requirements, err := manifest.Dependencies(proj.manifestPath)
	if err != nil {
		return err
	}

	c.Logger.Debugf("Using Python %s (Pyodide %s)", proj.runtime.Patch, proj.runtime.PyodideRelease)
	syncer := pysync.New(proj.layout, proj.runtime, c.runner, c.Logger)

	spinner := newSpinnerWithContext(ctx, "Preparing Python environments...")
	spinner.Start()
	if err := syncer.EnsureEnvironments(ctx); err != nil {
		spinner.StopWithError("Environment setup failed")
		return err
	}
	spinner.StopWithSuccess("Python environments ready")

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := syncer.InstallRequirements(ctx, requirements); err != nil {
		return err
	}

	printSuccess("Python dependencies synced")
	printDetail("%d requirement(s) from %s", len(requirements), manifest.Filename)

	return nil
}

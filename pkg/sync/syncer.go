package sync

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/workers-py/pywrangler/pkg/errors"
	"github.com/workers-py/pywrangler/pkg/proc"
	"github.com/workers-py/pywrangler/pkg/pyruntime"
)

// Syncer runs the dependency synchronization pipeline for one project.
//
// A Syncer is created per invocation with the runtime version already
// resolved; nothing in the pipeline consults global state.
type Syncer struct {
	layout  Layout
	runtime pyruntime.Version
	runner  proc.Runner
	logger  *log.Logger
}

// New creates a Syncer.
// If runner is nil, an os/exec-backed runner is used.
// If logger is nil, the default logger is used.
func New(layout Layout, rt pyruntime.Version, runner proc.Runner, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = proc.NewExecRunner(logger)
	}
	return &Syncer{
		layout:  layout,
		runtime: rt,
		runner:  runner,
		logger:  logger,
	}
}

// run invokes an external tool with captured output.
func (s *Syncer) run(ctx context.Context, argv ...string) (proc.Result, error) {
	return s.runner.Run(ctx, proc.Command{Argv: argv, Capture: true})
}

// runSetup invokes an environment-setup tool and converts a non-zero exit
// into a hard ENV_SETUP_FAILED error. Setup failures are never subject to the
// install precedence policy.
func (s *Syncer) runSetup(ctx context.Context, argv ...string) error {
	res, err := s.run(ctx, argv...)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return errors.New(errors.ErrCodeEnvSetupFailed,
			"%s exited with code %d: %s", argv[0], res.ExitCode, res.Diagnostic())
	}
	return nil
}

// wrapSetup wraps a filesystem error from environment preparation.
func wrapSetup(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeEnvSetupFailed, err, format, args...)
}

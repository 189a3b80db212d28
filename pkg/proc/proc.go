// Package proc provides the process-invocation primitive used by the sync
// pipeline and the wrangler proxy.
//
// All external tools (uv, pip, pyodide, npx) are invoked through a [Runner],
// so callers can substitute a fake in tests. A non-zero exit from the child
// is not an error: the [Result] carries the exit code and captured output and
// the caller decides what a failure means. Errors are reserved for processes
// that could not be started at all, most notably a missing executable
// (COMMAND_NOT_FOUND).
package proc

import (
	"bytes"
	"context"
	stderrors "errors"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/workers-py/pywrangler/pkg/errors"
)

// Command describes a single external process invocation.
type Command struct {
	// Argv is the executable followed by its arguments. Must not be empty.
	Argv []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env holds extra KEY=VALUE entries appended to the parent environment.
	Env []string

	// Capture controls output handling. When true, stdout and stderr are
	// collected into the Result. When false, the child inherits the parent's
	// stdio (used for the wrangler proxy).
	Capture bool
}

// Result reports the outcome of a completed process.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Diagnostic returns the most useful error text from a failed process:
// stderr if the tool wrote any, otherwise stdout. Both uv and pip report
// resolution failures on stderr.
func (r Result) Diagnostic() string {
	if s := strings.TrimSpace(r.Stderr); s != "" {
		return s
	}
	return strings.TrimSpace(r.Stdout)
}

// Runner runs external processes to completion.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner is the os/exec-backed Runner used outside of tests.
type ExecRunner struct {
	logger *log.Logger
}

// NewExecRunner creates a runner that logs each invocation at debug level.
// If logger is nil, the default logger is used.
func NewExecRunner(logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ExecRunner{logger: logger}
}

// Run executes cmd and waits for it to finish, including all captured
// output. The child is killed when ctx is cancelled.
//
// A non-zero exit code is reported through the Result, not the error.
// The error is non-nil only when the process could not run: an empty argv,
// a missing executable (ErrCodeCommandNotFound), or a start failure.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if len(cmd.Argv) == 0 {
		return Result{}, errors.New(errors.ErrCodeInternal, "empty command")
	}

	r.logger.Debug("running command", "argv", strings.Join(cmd.Argv, " "))

	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	c.Env = os.Environ()
	if len(cmd.Env) > 0 {
		c.Env = append(c.Env, cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	if cmd.Capture {
		c.Stdout = &stdout
		c.Stderr = &stderr
	} else {
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
	}

	err := c.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err == nil {
		if out := strings.TrimSpace(res.Stdout); out != "" {
			r.logger.Debug("command output", "stdout", out)
		}
		return res, nil
	}

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	if stderrors.Is(err, exec.ErrNotFound) {
		return Result{}, errors.New(errors.ErrCodeCommandNotFound,
			"command not found: %s (is it installed and in PATH?)", cmd.Argv[0])
	}

	return Result{}, errors.Wrap(errors.ErrCodeInternal, err, "failed to run %s", cmd.Argv[0])
}

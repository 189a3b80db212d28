package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/workers-py/pywrangler/pkg/errors"
	"github.com/workers-py/pywrangler/pkg/proc"
)

// syncFirst names the wrangler commands that consume the vendored packages
// and therefore get an implicit sync before they run.
var syncFirst = map[string]bool{
	"dev":     true,
	"deploy":  true,
	"publish": true,
}

// isVerboseFlag reports whether arg is pywrangler's own logging flag, which
// may precede a proxied command (pywrangler --verbose dev).
func isVerboseFlag(arg string) bool {
	return arg == "-v" || arg == "--verbose"
}

// ShouldProxy reports whether args name a command pywrangler does not
// implement itself and should forward to wrangler. Leading verbose flags are
// skipped before the first positional argument is examined.
func ShouldProxy(root *cobra.Command, args []string) bool {
	for len(args) > 0 && isVerboseFlag(args[0]) {
		args = args[1:]
	}
	if len(args) == 0 {
		return false
	}
	first := args[0]
	if strings.HasPrefix(first, "-") {
		return false
	}
	switch first {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return false
	}
	for _, cmd := range root.Commands() {
		if cmd.Name() == first || cmd.HasAlias(first) {
			return false
		}
	}
	return true
}

// Proxy forwards args to wrangler via npx with inherited stdio and returns
// wrangler's exit code. Commands that deploy or serve the Worker sync
// dependencies first; a project without pyproject.toml is forwarded as-is.
func (c *CLI) Proxy(ctx context.Context, args []string) (int, error) {
	for len(args) > 0 && isVerboseFlag(args[0]) {
		c.SetLogLevel(LogDebug)
		args = args[1:]
	}
	if len(args) == 0 {
		return 0, nil
	}

	if syncFirst[args[0]] {
		if err := c.runSync(ctx, false); err != nil {
			if errors.GetCode(err) != errors.ErrCodeManifestNotFound {
				return 1, err
			}
			c.Logger.Debug("No pyproject.toml found, skipping dependency sync")
		}
	}

	runner := c.runner
	if runner == nil {
		runner = proc.NewExecRunner(c.Logger)
	}

	argv := append([]string{"npx", "wrangler"}, args...)
	c.Logger.Debugf("Forwarding to wrangler: %s", strings.Join(args, " "))

	res, err := runner.Run(ctx, proc.Command{Argv: argv})
	if err != nil {
		return 1, err
	}
	if res.ExitCode < 0 {
		// A negative code means wrangler was killed by a signal, typically
		// the user's Ctrl-C; it must not reach os.Exit.
		return 130, nil
	}
	return res.ExitCode, nil
}

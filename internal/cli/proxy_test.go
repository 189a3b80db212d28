package cli

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/workers-py/pywrangler/pkg/proc"
)

func TestShouldProxy(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", nil, false},
		{"own sync command", []string{"sync"}, false},
		{"own sync command with flag", []string{"sync", "--force"}, false},
		{"completion", []string{"completion", "bash"}, false},
		{"help", []string{"help"}, false},
		{"version flag", []string{"--version"}, false},
		{"verbose flag", []string{"-v"}, false},
		{"shell completion request", []string{"__complete", "sy"}, false},
		{"verbose flag only", []string{"--verbose"}, false},
		{"verbose flag before own command", []string{"-v", "sync"}, false},
		{"verbose flag before wrangler command", []string{"--verbose", "dev"}, true},
		{"wrangler dev", []string{"dev"}, true},
		{"wrangler deploy with flag", []string{"deploy", "--dry-run"}, true},
		{"wrangler tail", []string{"tail"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldProxy(root, tt.args); got != tt.want {
				t.Errorf("ShouldProxy(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

func TestProxyReturnsWranglerExitCode(t *testing.T) {
	c, runner := newTestCLI(t)
	runner.result = proc.Result{ExitCode: 7}

	code, err := c.Proxy(context.Background(), []string{"tail", "my-worker"})
	if err != nil {
		t.Fatalf("Proxy: %v", err)
	}
	if code != 7 {
		t.Errorf("exit code = %d, want 7", code)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("got %d commands, want 1", len(runner.calls))
	}
	cmd := runner.calls[0]
	if got := strings.Join(cmd.Argv, " "); got != "npx wrangler tail my-worker" {
		t.Errorf("argv = %q, want %q", got, "npx wrangler tail my-worker")
	}
	if cmd.Capture {
		t.Error("proxied commands must inherit stdio, not capture it")
	}
}

func TestProxyStripsLeadingVerboseFlag(t *testing.T) {
	c, runner := newTestCLI(t)

	code, err := c.Proxy(context.Background(), []string{"--verbose", "tail"})
	if err != nil {
		t.Fatalf("Proxy: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("got %d commands, want 1", len(runner.calls))
	}
	if got := strings.Join(runner.calls[0].Argv, " "); got != "npx wrangler tail" {
		t.Errorf("argv = %q, want %q", got, "npx wrangler tail")
	}
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("log level = %v, want debug", got)
	}
}

func TestProxyMapsSignalExitToInterrupt(t *testing.T) {
	c, runner := newTestCLI(t)
	runner.result = proc.Result{ExitCode: -1}

	code, err := c.Proxy(context.Background(), []string{"tail"})
	if err != nil {
		t.Fatalf("Proxy: %v", err)
	}
	if code != 130 {
		t.Errorf("exit code = %d, want 130", code)
	}
}

func TestProxyDeploySyncsFirst(t *testing.T) {
	dir := writeProject(t)
	chdir(t, dir)

	c, runner := newTestCLI(t)
	code, err := c.Proxy(context.Background(), []string{"deploy"})
	if err != nil {
		t.Fatalf("Proxy: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	if len(runner.calls) < 2 {
		t.Fatalf("got %d commands, want sync commands followed by wrangler", len(runner.calls))
	}
	last := strings.Join(runner.calls[len(runner.calls)-1].Argv, " ")
	if last != "npx wrangler deploy" {
		t.Errorf("last command = %q, want %q", last, "npx wrangler deploy")
	}

	var sawInstall bool
	for _, cmd := range runner.calls[:len(runner.calls)-1] {
		if strings.Contains(strings.Join(cmd.Argv, " "), "uv pip install") {
			sawInstall = true
		}
	}
	if !sawInstall {
		t.Error("deploy did not sync dependencies before forwarding")
	}
}

func TestProxySkipsSyncWithoutManifest(t *testing.T) {
	chdir(t, t.TempDir())

	c, runner := newTestCLI(t)
	code, err := c.Proxy(context.Background(), []string{"dev"})
	if err != nil {
		t.Fatalf("Proxy: %v", err)
	}
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("got %d commands, want only the forwarded one", len(runner.calls))
	}
	if got := strings.Join(runner.calls[0].Argv, " "); got != "npx wrangler dev" {
		t.Errorf("argv = %q, want %q", got, "npx wrangler dev")
	}
}

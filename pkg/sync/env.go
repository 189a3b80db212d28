package sync

import (
	"context"
	"os"
	"path/filepath"
)

// basePackages are always installed into the development venv so editors get
// type stubs for the Workers JavaScript APIs and the Pyodide FFI, even when
// the project declares no dependencies of its own.
var basePackages = []string{"webtypy", "pyodide-py"}

// EnsureEnvironments creates the workers venv, the pyodide cross-compilation
// venv, and their tooling if any of them are missing. Every step checks for
// its artifact first, so re-running after an interrupted sync converges.
func (s *Syncer) EnsureEnvironments(ctx context.Context) error {
	if err := s.ensureWorkersVenv(ctx); err != nil {
		return err
	}
	if err := s.ensurePyodideBuild(ctx); err != nil {
		return err
	}
	if err := s.ensurePyodideVenv(ctx); err != nil {
		return err
	}
	return s.ensureBasePackages(ctx)
}

// ensureWorkersVenv creates the development venv pinned to the resolved
// interpreter release.
func (s *Syncer) ensureWorkersVenv(ctx context.Context) error {
	dir := s.layout.WorkersVenv()
	if isDir(dir) {
		s.logger.Debug("workers venv already exists", "path", dir)
		return nil
	}

	s.logger.Info("creating virtual environment", "path", dir, "python", s.runtime.Patch)
	return s.runSetup(ctx, "uv", "venv", dir, "--python", s.runtime.Patch)
}

// ensurePyodideBuild installs pip and pyodide-build into the workers venv.
// The pyodide CLI is the artifact checked for idempotence.
func (s *Syncer) ensurePyodideBuild(ctx context.Context) error {
	cli := s.layout.PyodideCLI()
	if isFile(cli) {
		s.logger.Debug("pyodide-build already installed", "path", cli)
		return nil
	}

	python := s.layout.VenvPython()
	s.logger.Info("installing pyodide-build", "venv", s.layout.WorkersVenv())

	// pyodide venv needs a real pip inside the target environment; uv venvs
	// do not ship one by default.
	if err := s.runSetup(ctx, "uv", "pip", "install", "-p", python, "pip"); err != nil {
		return err
	}
	return s.runSetup(ctx, "uv", "pip", "install", "-p", python, "pyodide-build")
}

// ensurePyodideVenv creates the cross-compilation venv using the pyodide CLI.
func (s *Syncer) ensurePyodideVenv(ctx context.Context) error {
	dir := s.layout.PyodideVenv()
	if isDir(dir) {
		s.logger.Debug("pyodide venv already exists", "path", dir)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dir), 0755); err != nil {
		return wrapSetup(err, "failed to create %s", filepath.Dir(dir))
	}

	s.logger.Info("creating Pyodide virtual environment", "path", dir)
	return s.runSetup(ctx, s.layout.PyodideCLI(), "venv", dir)
}

// ensureBasePackages installs the editor-support packages into the
// development venv. uv resolves these as no-ops when already present.
func (s *Syncer) ensureBasePackages(ctx context.Context) error {
	argv := append([]string{"uv", "pip", "install", "-p", s.layout.VenvPython()}, basePackages...)
	return s.runSetup(ctx, argv...)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Package sync keeps the two Python installation targets of a Workers
// project in lockstep: the vendor directory bundled with the deployed Worker
// (packages built for the Pyodide runtime) and the local development virtual
// environment (native packages for IDEs and tests).
//
// The pipeline is strictly sequential. Each step shells out to an external
// tool through a proc.Runner and waits for it to finish. Installer failures
// are captured as [Outcome] values rather than errors so the orchestrator can
// apply its precedence policy and emit one coherent diagnostic; hard errors
// are reserved for broken environments and missing executables.
package sync

import (
	"os"
	"path/filepath"
	"runtime"
)

// markerName is the completion-marker filename written into each target after
// a successful install. Its mtime is compared against the manifest to decide
// whether a sync is needed.
const markerName = ".synced"

// Layout derives every path the sync pipeline touches from the project root.
//
// On disk:
//
//	<root>/.venv-workers/              native development venv
//	<root>/.venv-workers/pyodide-venv/ cross-compilation venv
//	<root>/python_modules/             vendor directory, bundled on deploy
type Layout struct {
	Root string
}

// NewLayout creates a layout rooted at the directory containing
// pyproject.toml.
func NewLayout(root string) Layout {
	return Layout{Root: root}
}

// WorkersVenv is the native development virtual environment directory.
func (l Layout) WorkersVenv() string {
	return filepath.Join(l.Root, ".venv-workers")
}

// PyodideVenv is the cross-compilation virtual environment, nested inside the
// workers venv so a single directory holds all tool state.
func (l Layout) PyodideVenv() string {
	return filepath.Join(l.WorkersVenv(), "pyodide-venv")
}

// Vendor is the directory the deployed Worker bundles its packages from.
func (l Layout) Vendor() string {
	return filepath.Join(l.Root, "python_modules")
}

// VenvMarker is the completion marker for the native venv.
func (l Layout) VenvMarker() string {
	return filepath.Join(l.WorkersVenv(), markerName)
}

// VendorMarker is the completion marker for the vendor directory.
func (l Layout) VendorMarker() string {
	return filepath.Join(l.Vendor(), markerName)
}

// VenvPython is the interpreter inside the workers venv.
func (l Layout) VenvPython() string {
	return filepath.Join(l.WorkersVenv(), binDir(), exe("python"))
}

// PyodideCLI is the pyodide build tool installed into the workers venv.
func (l Layout) PyodideCLI() string {
	return filepath.Join(l.WorkersVenv(), binDir(), exe("pyodide"))
}

// PyodidePip is the pip of the cross-compilation venv. Packages it installs
// are built for the Pyodide runtime, not the host.
func (l Layout) PyodidePip() string {
	return filepath.Join(l.PyodideVenv(), binDir(), exe("pip"))
}

func binDir() string {
	if runtime.GOOS == "windows" {
		return "Scripts"
	}
	return "bin"
}

func exe(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

// writeMarker creates or refreshes a completion marker, creating the parent
// directory if needed.
func writeMarker(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, nil, 0644)
}

// IsSyncNeeded reports whether the manifest changed since the last completed
// sync of either target. It is deliberately coarse: a missing marker, an
// unreadable manifest, or a manifest newer than either marker all mean "sync".
func IsSyncNeeded(manifestPath string, layout Layout) bool {
	manifest, err := os.Stat(manifestPath)
	if err != nil {
		return true
	}

	for _, marker := range []string{layout.VenvMarker(), layout.VendorMarker()} {
		info, err := os.Stat(marker)
		if err != nil || manifest.ModTime().After(info.ModTime()) {
			return true
		}
	}

	return false
}

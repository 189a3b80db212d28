package sync

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// indexURLEnv overrides the package index used for vendor installs, e.g. to
// point at a private mirror. Usually set through the project's .env file.
const indexURLEnv = "PYWRANGLER_INDEX_URL"

// installVenv installs the given requirement strings (loose constraints or
// exact pins) into the native development venv and writes its completion
// marker on success.
//
// A non-zero installer exit becomes a failure Outcome carrying the
// diagnostic. The error is non-nil only for hard problems: uv missing from
// PATH or an unwritable marker.
func (s *Syncer) installVenv(ctx context.Context, requirements []string) (Outcome, error) {
	if len(requirements) == 0 {
		s.logger.Debug("no requirements for the development venv")
		if err := writeMarker(s.layout.VenvMarker()); err != nil {
			return Outcome{}, wrapSetup(err, "failed to write %s", s.layout.VenvMarker())
		}
		return success(), nil
	}

	s.logger.Info("installing packages into the development venv", "count", len(requirements))

	argv := append([]string{"uv", "pip", "install", "-p", s.layout.VenvPython()}, requirements...)
	res, err := s.run(ctx, argv...)
	if err != nil {
		return Outcome{}, err
	}
	if res.ExitCode != 0 {
		return failure(res.Diagnostic()), nil
	}

	if err := writeMarker(s.layout.VenvMarker()); err != nil {
		return Outcome{}, wrapSetup(err, "failed to write %s", s.layout.VenvMarker())
	}
	return success(), nil
}

// installVendor installs the requirements into the vendor directory using the
// cross-compilation venv's pip and the resolved runtime's package index, and
// writes the vendor completion marker on success.
//
// An empty requirement list is a no-op success: the marker is still written
// so the staleness check converges, but nothing is installed. The same
// capture-not-raise contract as installVenv applies.
func (s *Syncer) installVendor(ctx context.Context, requirements []string) (Outcome, error) {
	if len(requirements) == 0 {
		s.logger.Debug("no requirements for the vendor directory")
		if err := writeMarker(s.layout.VendorMarker()); err != nil {
			return Outcome{}, wrapSetup(err, "failed to write %s", s.layout.VendorMarker())
		}
		return success(), nil
	}

	vendor := s.layout.Vendor()
	if err := os.MkdirAll(vendor, 0755); err != nil {
		return Outcome{}, wrapSetup(err, "failed to create %s", vendor)
	}

	// pip wants a requirements file; a unique name avoids collisions with a
	// concurrently aborted run's leftovers.
	reqFile := filepath.Join(s.layout.PyodideVenv(), fmt.Sprintf("requirements-%s.txt", uuid.NewString()))
	if err := os.WriteFile(reqFile, []byte(strings.Join(requirements, "\n")+"\n"), 0644); err != nil {
		return Outcome{}, wrapSetup(err, "failed to write %s", reqFile)
	}
	defer os.Remove(reqFile)

	s.logger.Info("installing packages into the vendor directory",
		"count", len(requirements), "target", vendor, "pyodide", s.runtime.PyodideRelease)

	res, err := s.run(ctx,
		s.layout.PyodidePip(), "install",
		"-t", vendor,
		"--index-url", s.indexURL(),
		"-r", reqFile,
	)
	if err != nil {
		return Outcome{}, err
	}
	if res.ExitCode != 0 {
		return failure(res.Diagnostic()), nil
	}

	if err := writeMarker(s.layout.VendorMarker()); err != nil {
		return Outcome{}, wrapSetup(err, "failed to write %s", s.layout.VendorMarker())
	}
	return success(), nil
}

// vendorVersions reports the exact package versions pip resolved into the
// vendor directory as name==version pins, in freeze output order.
//
// It never fails: a listing error or non-zero exit yields nil, which the
// orchestrator treats as "nothing to reconcile".
func (s *Syncer) vendorVersions(ctx context.Context) []string {
	res, err := s.run(ctx, s.layout.PyodidePip(), "freeze", "--path", s.layout.Vendor())
	if err != nil || res.ExitCode != 0 {
		s.logger.Debug("could not list vendor package versions", "err", err, "exit", res.ExitCode)
		return nil
	}
	return parseFreeze(res.Stdout)
}

// parseFreeze extracts exact pins from pip freeze output.
//
// Blank lines and comment lines are dropped, as is any line without the ==
// separator: editable installs and packages freeze cannot express as a pin
// must not be fed back into the reconciliation install. Line order is
// preserved.
func parseFreeze(output string) []string {
	var pins []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, "==") {
			continue
		}
		pins = append(pins, line)
	}
	return pins
}

// indexURL returns the package index for vendor installs, honoring the
// environment override.
func (s *Syncer) indexURL() string {
	if url := os.Getenv(indexURLEnv); url != "" {
		return url
	}
	return s.runtime.IndexURL
}

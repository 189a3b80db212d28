package sync

import (
	"context"

	"github.com/workers-py/pywrangler/pkg/errors"
)

// InstallRequirements runs the full synchronization pipeline for the
// project's declared requirements:
//
//  1. install the requirements into the development venv (loose pass)
//  2. install the requirements into the vendor directory
//  3. read back the versions pip actually resolved for the vendor directory
//  4. reinstall those exact pins into the development venv, so local testing
//     runs the same versions the deployed Worker will
//
// The vendor resolver is authoritative: only it knows which versions exist
// for the Pyodide runtime. The venv is installed first anyway because native
// failures are the more fundamental signal and should be caught early.
//
// Error precedence when the vendor install fails: if the venv install also
// failed, only the venv diagnostic is surfaced (the vendor diagnostic would
// obscure it); if the venv install succeeded, the vendor diagnostic is
// surfaced along with a hint when it matches a known failure signature, and
// the version read-back is skipped entirely.
func (s *Syncer) InstallRequirements(ctx context.Context, requirements []string) error {
	venvOut, err := s.installVenv(ctx, requirements)
	if err != nil {
		return err
	}

	vendorOut, err := s.installVendor(ctx, requirements)
	if err != nil {
		return err
	}

	if !vendorOut.OK {
		if !venvOut.OK {
			s.logger.Error(venvOut.Diagnostic)
			return errors.New(errors.ErrCodeInstallFailed, "failed to install requirements")
		}

		s.logger.Error(vendorOut.Diagnostic)
		msg := "some of the requested packages are not supported in Python Workers"
		if hint, ok := matchHint(vendorOut.Diagnostic); ok {
			msg += ": " + hint
		}
		return errors.New(errors.ErrCodeInstallFailed, "%s", msg)
	}

	pins := s.vendorVersions(ctx)
	if len(pins) == 0 {
		s.logger.Debug("no resolved versions to reconcile")
		return nil
	}

	s.logger.Debug("pinning development venv to vendor-resolved versions", "pins", len(pins))
	pinnedOut, err := s.installVenv(ctx, pins)
	if err != nil {
		return err
	}
	if !pinnedOut.OK {
		s.logger.Error(pinnedOut.Diagnostic)
		return errors.New(errors.ErrCodeInstallFailed,
			"failed to install the requirements in your pyproject.toml, see above for details")
	}

	return nil
}

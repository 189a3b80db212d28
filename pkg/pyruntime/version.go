// Package pyruntime maps wrangler compatibility settings to a concrete
// Python runtime for the Workers platform.
//
// Each supported minor version pins the exact interpreter patch release, the
// Pyodide release the platform runs, and the package index holding wheels
// cross-compiled for that release. The selection is made once per invocation
// from the compatibility date and flags, and the resolved [Version] is passed
// explicitly to everything that needs it.
package pyruntime

import (
	"slices"
	"time"

	"github.com/workers-py/pywrangler/pkg/errors"
)

// BaseFlag is the compatibility flag that enables Python Workers at all.
// Resolution fails without it regardless of the compatibility date.
const BaseFlag = "python_workers"

// Version describes one supported Python runtime.
type Version struct {
	// Minor is the Python minor version, e.g. "3.12".
	Minor string

	// Patch is the exact interpreter release installed into the local
	// development environment, e.g. "3.12.7".
	Patch string

	// PyodideRelease is the Pyodide distribution the platform runs for this
	// Python version.
	PyodideRelease string

	// IndexURL is the package index serving wheels built for this Pyodide
	// release.
	IndexURL string

	// enableFlag explicitly opts a Worker into this runtime.
	enableFlag string

	// enabledAfter is the compatibility date (YYYY-MM-DD) from which this
	// runtime is the default. Empty means flag-only selection.
	enabledAfter string
}

// supported lists the runtimes newest-first. Resolution checks them in order,
// so an explicit flag for a newer runtime always beats an older runtime's
// date-based default.
var supported = []Version{
	{
		Minor:          "3.13",
		Patch:          "3.13.2",
		PyodideRelease: "0.28.2",
		IndexURL:       "https://package-index.pyodide.org/v0.28.2/simple/",
		enableFlag:     "python_workers_20250116",
		enabledAfter:   "2025-09-01",
	},
	{
		Minor:          "3.12",
		Patch:          "3.12.7",
		PyodideRelease: "0.26.0a2",
		IndexURL:       "https://package-index.pyodide.org/v0.26.0a2/simple/",
		enableFlag:     BaseFlag,
	},
}

// Supported returns the supported runtimes, newest first.
func Supported() []Version {
	return slices.Clone(supported)
}

// Resolve selects the Python runtime for the given compatibility date and
// flags.
//
// A runtime is selected if its enable flag is present, or if it has a
// default date and the compatibility date is on or after it. Runtimes are
// checked newest-first, so setting a newer runtime's flag selects it even
// when the compatibility date predates that runtime's default date.
//
// Resolve fails with a CONFIG error when the base python_workers flag is
// missing, the compatibility date is absent or malformed, or no runtime
// matches.
func Resolve(compatibilityDate string, compatibilityFlags []string) (Version, error) {
	if !slices.Contains(compatibilityFlags, BaseFlag) {
		return Version{}, errors.New(errors.ErrCodeConfigInvalid,
			"the %q compatibility flag is required to use Python Workers", BaseFlag)
	}

	if compatibilityDate == "" {
		return Version{}, errors.New(errors.ErrCodeConfigInvalid,
			"compatibility_date is not set in the wrangler configuration")
	}
	date, err := time.Parse(time.DateOnly, compatibilityDate)
	if err != nil {
		return Version{}, errors.Wrap(errors.ErrCodeConfigInvalid, err,
			"invalid compatibility_date %q", compatibilityDate)
	}

	for _, v := range supported {
		if slices.Contains(compatibilityFlags, v.enableFlag) {
			return v, nil
		}
		if v.enabledAfter != "" {
			after, err := time.Parse(time.DateOnly, v.enabledAfter)
			if err != nil {
				return Version{}, errors.Wrap(errors.ErrCodeInternal, err,
					"bad default date for Python %s", v.Minor)
			}
			if !date.Before(after) {
				return v, nil
			}
		}
	}

	return Version{}, errors.New(errors.ErrCodeConfigInvalid,
		"no supported Python runtime for compatibility date %s and flags %v",
		compatibilityDate, compatibilityFlags)
}

// Package manifest locates and reads the project's pyproject.toml.
//
// The manifest is found by walking up from the working directory, so
// pywrangler can be invoked from anywhere inside the project tree. Only the
// [project].dependencies list is consumed; declaration order is preserved and
// duplicates are kept, since the installers treat the list as opaque
// requirement strings.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/workers-py/pywrangler/pkg/errors"
)

// Filename is the manifest filename searched for in ancestor directories.
const Filename = "pyproject.toml"

// Find walks up from start looking for a pyproject.toml and returns its
// absolute path. It returns ErrCodeManifestNotFound when no ancestor
// directory contains one.
func Find(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "failed to resolve %s", start)
	}

	for {
		path := filepath.Join(dir, Filename)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New(errors.ErrCodeManifestNotFound,
				"no %s found in %s or any parent directory", Filename, start)
		}
		dir = parent
	}
}

// Root returns the project root for a manifest path: the directory that
// contains pyproject.toml. Environment directories and the vendor directory
// are created relative to it.
func Root(manifestPath string) string {
	return filepath.Dir(manifestPath)
}

// pyproject mirrors the parts of pyproject.toml we read.
type pyproject struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// Dependencies reads the [project].dependencies list from the manifest.
//
// The returned slice preserves declaration order. An empty or absent list is
// not an error: a Worker without Python dependencies is valid. Each entry is
// validated against installer-option injection before being returned.
func Dependencies(manifestPath string) ([]string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestNotFound, err, "failed to read %s", manifestPath)
	}

	var p pyproject
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrap(errors.ErrCodeManifestInvalid, err, "failed to parse %s", manifestPath)
	}

	for _, dep := range p.Project.Dependencies {
		if err := errors.ValidateRequirement(dep); err != nil {
			return nil, errors.Wrap(errors.ErrCodeManifestInvalid, err, "invalid dependency in %s", manifestPath)
		}
	}

	return p.Project.Dependencies, nil
}

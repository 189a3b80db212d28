// Package config reads the wrangler configuration file that describes the
// Worker this project deploys.
//
// Wrangler accepts three file formats at the project root, checked in order:
// wrangler.jsonc, wrangler.json, wrangler.toml. JSONC is standard JSON with
// comments and trailing commas, which hujson normalizes before decoding.
//
// A .env file at the project root is loaded (without overriding variables
// already present in the environment) so that settings like a private package
// index mirror can be configured per project.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"

	"github.com/workers-py/pywrangler/pkg/errors"
)

// configNames are the recognized wrangler config filenames, in lookup order.
// The order matches wrangler's own precedence: JSONC beats JSON beats TOML.
var configNames = []string{"wrangler.jsonc", "wrangler.json", "wrangler.toml"}

// Wrangler holds the subset of the wrangler configuration that the sync
// pipeline needs.
type Wrangler struct {
	// Name is the Worker name.
	Name string `json:"name" toml:"name"`

	// Main is the entry-point script path.
	Main string `json:"main" toml:"main"`

	// CompatibilityDate selects runtime behavior by date (YYYY-MM-DD).
	CompatibilityDate string `json:"compatibility_date" toml:"compatibility_date"`

	// CompatibilityFlags opt into runtime features by name.
	CompatibilityFlags []string `json:"compatibility_flags" toml:"compatibility_flags"`
}

// HasFlag reports whether the named compatibility flag is set.
func (w *Wrangler) HasFlag(name string) bool {
	return slices.Contains(w.CompatibilityFlags, name)
}

// Load reads the wrangler configuration from the project root.
//
// It returns ErrCodeConfigNotFound when no recognized config file exists and
// ErrCodeConfigInvalid when a file exists but cannot be parsed.
func Load(root string) (*Wrangler, error) {
	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load(filepath.Join(root, ".env"))

	for _, name := range configNames {
		path := filepath.Join(root, name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "failed to read %s", path)
		}
		return parse(path, data)
	}

	return nil, errors.New(errors.ErrCodeConfigNotFound,
		"no wrangler configuration (wrangler.jsonc, wrangler.json, or wrangler.toml) found in %s", root)
}

func parse(path string, data []byte) (*Wrangler, error) {
	var cfg Wrangler
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "failed to parse %s", path)
		}
	default:
		// .jsonc and .json both go through hujson: plain JSON is valid JWCC.
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "failed to parse %s", path)
		}
		if err := json.Unmarshal(std, &cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "failed to parse %s", path)
		}
	}
	return &cfg, nil
}

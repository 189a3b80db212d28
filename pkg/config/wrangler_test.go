package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/workers-py/pywrangler/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadJSONC(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrangler.jsonc", `
	/**
	 * Test worker configuration.
	 */
	{
		// Name of the worker
		"name": "test-worker",
		"main": "src/worker.py",
		"compatibility_date": "2025-01-10",
		"compatibility_flags": ["python_workers"], // trailing comma next
	}
	`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "test-worker" {
		t.Errorf("Name = %q, want %q", cfg.Name, "test-worker")
	}
	if cfg.Main != "src/worker.py" {
		t.Errorf("Main = %q, want %q", cfg.Main, "src/worker.py")
	}
	if cfg.CompatibilityDate != "2025-01-10" {
		t.Errorf("CompatibilityDate = %q, want %q", cfg.CompatibilityDate, "2025-01-10")
	}
	if !cfg.HasFlag("python_workers") {
		t.Error("HasFlag(python_workers) = false, want true")
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrangler.toml", `
# Test worker
name = "toml-worker"
main = "src/worker.py"
compatibility_date = "2024-12-01"
compatibility_flags = ["python_workers", "python_workers_20250116"]
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "toml-worker" {
		t.Errorf("Name = %q, want %q", cfg.Name, "toml-worker")
	}
	if len(cfg.CompatibilityFlags) != 2 {
		t.Errorf("CompatibilityFlags = %v, want 2 entries", cfg.CompatibilityFlags)
	}
}

func TestLoadPrefersJSONCOverTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrangler.jsonc", `{"name": "from-jsonc", "compatibility_date": "2025-01-01"}`)
	writeFile(t, dir, "wrangler.toml", `name = "from-toml"`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Name != "from-jsonc" {
		t.Errorf("Name = %q, want %q (jsonc takes precedence)", cfg.Name, "from-jsonc")
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	if !errors.Is(err, errors.ErrCodeConfigNotFound) {
		t.Errorf("error code = %v, want CONFIG_NOT_FOUND", errors.GetCode(err))
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"bad jsonc", "wrangler.jsonc", `{"name": `},
		{"bad toml", "wrangler.toml", `name = [unclosed`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, tt.filename, tt.content)

			_, err := Load(dir)
			if !errors.Is(err, errors.ErrCodeConfigInvalid) {
				t.Errorf("error code = %v, want CONFIG_INVALID", errors.GetCode(err))
			}
		})
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wrangler.jsonc", `{"name": "w", "compatibility_date": "2025-01-01"}`)
	writeFile(t, dir, ".env", "PYWRANGLER_TEST_SENTINEL=from-dotenv\n")
	t.Setenv("PYWRANGLER_TEST_SENTINEL", "") // register cleanup
	os.Unsetenv("PYWRANGLER_TEST_SENTINEL")

	if _, err := Load(dir); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := os.Getenv("PYWRANGLER_TEST_SENTINEL"); got != "from-dotenv" {
		t.Errorf("PYWRANGLER_TEST_SENTINEL = %q, want %q", got, "from-dotenv")
	}
}

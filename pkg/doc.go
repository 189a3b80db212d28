// Package pkg provides the core libraries for pywrangler, a wrangler wrapper
// for Cloudflare Python Workers.
//
// # Overview
//
// Pywrangler keeps a project's Python dependencies synchronized across the
// two places they live: the local development virtual environment and the
// vendored package directory bundled with the deployed Worker. The pkg
// directory is organized by concern:
//
//   - [manifest] - pyproject.toml discovery and dependency extraction
//   - [config] - wrangler configuration (jsonc/json/toml) loading
//   - [pyruntime] - compatibility date/flag to Python runtime resolution
//   - [sync] - the synchronization pipeline (bootstrap, installs, reconcile)
//   - [proc] - external process execution
//   - [errors] - error codes and input validation
//   - [buildinfo] - version metadata injected at build time
//
// # Architecture
//
// The typical flow of a sync:
//
//	pyproject.toml + wrangler.jsonc
//	         ↓
//	    [pyruntime] (resolve Python/Pyodide version)
//	         ↓
//	    [sync] bootstrap (uv venv, pyodide-build, pyodide venv)
//	         ↓
//	    [sync] install (native venv + cross-compiled vendor dir)
//	         ↓
//	    .venv-workers/ and python_modules/
//
// [manifest]: https://pkg.go.dev/github.com/workers-py/pywrangler/pkg/manifest
// [config]: https://pkg.go.dev/github.com/workers-py/pywrangler/pkg/config
// [pyruntime]: https://pkg.go.dev/github.com/workers-py/pywrangler/pkg/pyruntime
// [sync]: https://pkg.go.dev/github.com/workers-py/pywrangler/pkg/sync
// [proc]: https://pkg.go.dev/github.com/workers-py/pywrangler/pkg/proc
// [errors]: https://pkg.go.dev/github.com/workers-py/pywrangler/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/workers-py/pywrangler/pkg/buildinfo
package pkg

package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateRequirement validates a requirement string read from pyproject.toml
// before it is handed to the installers. It rejects strings that could be used
// for argument or requirements-file injection.
//
// The validation rules are intentionally conservative:
//   - No empty requirements
//   - No control characters or null bytes
//   - No newlines (one requirement per pip requirements line)
//   - No leading dash (would be parsed as an installer option)
//   - Maximum length of 256 characters
//
// PEP 508 grammar checking beyond this is left to the installers, which report
// their own diagnostics for malformed specifiers.
func ValidateRequirement(req string) error {
	if req == "" {
		return New(ErrCodeInvalidRequirement, "requirement cannot be empty")
	}

	if len(req) > 256 {
		return New(ErrCodeInvalidRequirement, "requirement too long (max 256 characters): %q", req[:40]+"...")
	}

	// Check for control characters and null bytes
	for _, r := range req {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRequirement, "requirement contains invalid control characters")
		}
	}

	// A leading dash would be interpreted as a pip option, both on the
	// command line and inside a requirements file.
	if strings.HasPrefix(req, "-") {
		return New(ErrCodeInvalidRequirement, "requirement cannot start with a dash: %q", req)
	}

	return nil
}

// pythonPackageNameRegex matches valid Python package names (PEP 508).
var pythonPackageNameRegex = regexp.MustCompile(`^([A-Za-z0-9]|[A-Za-z0-9][A-Za-z0-9._-]*[A-Za-z0-9])$`)

// ValidatePythonPackageName validates a bare Python package name per PEP 508.
// Unlike ValidateRequirement it rejects version specifiers and extras.
func ValidatePythonPackageName(name string) error {
	if err := ValidateRequirement(name); err != nil {
		return err
	}

	if !pythonPackageNameRegex.MatchString(name) {
		return New(ErrCodeInvalidRequirement, "invalid Python package name: %q", name)
	}

	return nil
}

package sync

import "strings"

// signature pairs a known substring of an installer diagnostic with an
// actionable hint for the user.
type signature struct {
	pattern string
	hint    string
}

// knownFailures is checked in order against vendor-install diagnostics; the
// first match wins, so more specific patterns come first.
var knownFailures = []signature{
	{
		pattern: "invalid peer certificate",
		hint:    "check your system certificates, or whether a VPN or proxy is intercepting TLS connections",
	},
	{
		pattern: "failed to fetch",
		hint:    "check your network connectivity",
	},
	{
		pattern: "no solution found when resolving dependencies",
		hint:    "the requested packages are not supported by the Workers Python runtime",
	},
}

// matchHint returns the hint for the first known failure signature found in
// the diagnostic, if any.
func matchHint(diagnostic string) (string, bool) {
	for _, sig := range knownFailures {
		if strings.Contains(diagnostic, sig.pattern) {
			return sig.hint, true
		}
	}
	return "", false
}

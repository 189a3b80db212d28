package sync

// Outcome reports the result of a single installer invocation. Installer
// failures are ordinary data, not errors: the orchestrator inspects outcomes
// from both targets before deciding what to surface.
type Outcome struct {
	// OK is true when the installer exited zero.
	OK bool

	// Diagnostic is the installer's raw error output when OK is false.
	Diagnostic string
}

func success() Outcome {
	return Outcome{OK: true}
}

func failure(diagnostic string) Outcome {
	return Outcome{Diagnostic: diagnostic}
}

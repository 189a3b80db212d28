package sync

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workers-py/pywrangler/pkg/proc"
)

func TestInstallVenvEmptyRequirementsIsNoOp(t *testing.T) {
	s, runner, _ := newTestSyncer(t, nil)

	out, err := s.installVenv(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Empty(t, runner.calls, "no installer should run for an empty requirement list")

	_, statErr := os.Stat(s.layout.VenvMarker())
	assert.NoError(t, statErr, "marker must still be written")
}

func TestInstallVendorEmptyRequirementsIsNoOp(t *testing.T) {
	s, runner, _ := newTestSyncer(t, nil)

	out, err := s.installVendor(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Empty(t, runner.calls)

	_, statErr := os.Stat(s.layout.VendorMarker())
	assert.NoError(t, statErr, "marker must still be written")
}

func TestInstallVendorCleansUpRequirementsFile(t *testing.T) {
	s, _, _ := newTestSyncer(t, nil)

	out, err := s.installVendor(context.Background(), []string{"click"})
	require.NoError(t, err)
	assert.True(t, out.OK)

	entries, err := os.ReadDir(s.layout.PyodideVenv())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), "requirements-", "temp requirements file should be removed")
	}
}

func TestInstallVendorUsesRuntimeIndexURL(t *testing.T) {
	t.Setenv(indexURLEnv, "")

	s, runner, _ := newTestSyncer(t, nil)

	_, err := s.installVendor(context.Background(), []string{"click"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "--index-url "+s.runtime.IndexURL)
}

func TestInstallVendorIndexURLOverride(t *testing.T) {
	t.Setenv(indexURLEnv, "https://mirror.internal/simple/")

	s, runner, _ := newTestSyncer(t, nil)

	_, err := s.installVendor(context.Background(), []string{"click"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0], "--index-url https://mirror.internal/simple/")
}

func TestInstallVenvFailureCarriesDiagnostic(t *testing.T) {
	s, _, _ := newTestSyncer(t, []rule{
		{contains: "uv pip install", result: proc.Result{ExitCode: 1, Stderr: "resolution error"}},
	})

	out, err := s.installVenv(context.Background(), []string{"click"})
	require.NoError(t, err, "a non-zero installer exit is not an error")
	assert.False(t, out.OK)
	assert.Equal(t, "resolution error", out.Diagnostic)

	_, statErr := os.Stat(s.layout.VenvMarker())
	assert.True(t, os.IsNotExist(statErr), "no marker after a failed install")
}

func TestVendorVersions(t *testing.T) {
	t.Run("parses freeze output", func(t *testing.T) {
		s, _, _ := newTestSyncer(t, []rule{
			{contains: "freeze", result: proc.Result{Stdout: "a==1\nb==2\n"}},
		})
		assert.Equal(t, []string{"a==1", "b==2"}, s.vendorVersions(context.Background()))
	})

	t.Run("empty on non-zero exit regardless of stdout", func(t *testing.T) {
		s, _, _ := newTestSyncer(t, []rule{
			{contains: "freeze", result: proc.Result{ExitCode: 1, Stdout: "a==1\nb==2\n"}},
		})
		assert.Empty(t, s.vendorVersions(context.Background()))
	})

	t.Run("empty on runner error", func(t *testing.T) {
		s, _, _ := newTestSyncer(t, []rule{
			{contains: "freeze", err: os.ErrNotExist},
		})
		assert.Empty(t, s.vendorVersions(context.Background()))
	})
}

func TestMatchHintFirstMatchWins(t *testing.T) {
	// A diagnostic containing two signatures resolves to the earlier,
	// more specific entry.
	diag := "invalid peer certificate while trying: failed to fetch"
	hint, ok := matchHint(diag)
	require.True(t, ok)
	assert.Contains(t, hint, "certificates")
}

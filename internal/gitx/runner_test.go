package gitx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRunMissingBinary(t *testing.T) {
	r := NewRunner("/nonexistent/git-binary", t.TempDir(), 5*time.Second, zap.NewNop())

	_, err := r.Run("status")
	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, -1, cerr.ExitCode)
}

func TestExecuteSuccess(t *testing.T) {
	r := NewRunner("git", t.TempDir(), 5*time.Second, zap.NewNop())

	result, err := r.Execute("echo hello")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello", result.Stdout)
}

func TestExecuteFailureIsData(t *testing.T) {
	r := NewRunner("git", t.TempDir(), 5*time.Second, zap.NewNop())

	// Quotes route the command through the shell; the non-zero exit comes
	// back as a result, not an error.
	result, err := r.Execute(`sh -c 'echo oops >&2; exit 3'`)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "oops", result.Stderr)
}

func TestExecuteEmptyCommand(t *testing.T) {
	r := NewRunner("git", t.TempDir(), 5*time.Second, zap.NewNop())

	_, err := r.Execute("   ")
	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
}

func TestExecuteTimeout(t *testing.T) {
	r := NewRunner("git", t.TempDir(), 50*time.Millisecond, zap.NewNop())

	_, err := r.Execute("sleep 2")
	var cerr *CommandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, -1, cerr.ExitCode)
	assert.Equal(t, "Command timed out", cerr.Stderr)
}

package playerctl

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLaunchErrorUnwrap(t *testing.T) {
	underlying := errors.New("executable file not found in $PATH")
	err := &LaunchError{Err: underlying}

	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "failed to launch")
}

func TestExecutionErrorMessage(t *testing.T) {
	withStderr := &ExecutionError{ExitCode: 1, Stderr: "No players found"}
	assert.Equal(t, "playerctl: exited with status 1: No players found", withStderr.Error())

	withoutStderr := &ExecutionError{ExitCode: 2}
	assert.Equal(t, "playerctl: exited with status 2", withoutStderr.Error())
}

func TestMetadataParseErrorMessage(t *testing.T) {
	err := &MetadataParseError{Line: "mpv\x1fabc", Reason: "mpris:length is not an integer: \"abc\""}
	assert.Contains(t, err.Error(), "malformed output")
	assert.Contains(t, err.Error(), "mpv")
}

func TestIsNoPlayerRunning(t *testing.T) {
	noPlayers := &ExecutionError{ExitCode: 1, Stderr: "No players found"}
	assert.True(t, IsNoPlayerRunning(noPlayers))

	// Also matches when wrapped further up the call chain.
	wrapped := fmt.Errorf("fetch: %w", noPlayers)
	assert.True(t, IsNoPlayerRunning(wrapped))

	assert.False(t, IsNoPlayerRunning(&ExecutionError{ExitCode: 1, Stderr: "timeout"}))
	assert.False(t, IsNoPlayerRunning(&LaunchError{Err: errors.New("nope")}))
	assert.False(t, IsNoPlayerRunning(nil))
}

func TestErrorVariantsAreDistinct(t *testing.T) {
	var launchErr *LaunchError
	var execErr *ExecutionError
	var parseErr *MetadataParseError

	err := error(&ExecutionError{ExitCode: 1})
	require.ErrorAs(t, err, &execErr)
	assert.False(t, errors.As(err, &launchErr))
	assert.False(t, errors.As(err, &parseErr))
}

package playerctl

import (
	"errors"
	"fmt"
	"strings"
)

// LaunchError reports that the playerctl binary could not be found or
// started. It wraps the underlying exec error.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("playerctl: failed to launch: %v", e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// ExecutionError reports that the playerctl process started but exited
// with a non-zero status. Stderr holds whatever diagnostic text the
// process wrote, trimmed of surrounding whitespace.
type ExecutionError struct {
	ExitCode int
	Stderr   string
}

func (e *ExecutionError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("playerctl: exited with status %d", e.ExitCode)
	}
	return fmt.Sprintf("playerctl: exited with status %d: %s", e.ExitCode, e.Stderr)
}

// noPlayers reports whether the failure is playerctl's way of saying no
// MPRIS player is currently on the bus.
func (e *ExecutionError) noPlayers() bool {
	return strings.Contains(e.Stderr, "No players found")
}

// MetadataParseError reports that a playerctl invocation succeeded but
// its output did not match the expected shape. Line holds the offending
// output, Reason says what was wrong with it.
type MetadataParseError struct {
	Line   string
	Reason string
}

func (e *MetadataParseError) Error() string {
	return fmt.Sprintf("playerctl: malformed output: %s (in %q)", e.Reason, e.Line)
}

// IsNoPlayerRunning reports whether err is playerctl complaining that no
// player is active. Callers can use this to show a "nothing playing"
// state instead of an error.
func IsNoPlayerRunning(err error) bool {
	var execErr *ExecutionError
	return errors.As(err, &execErr) && execErr.noPlayers()
}

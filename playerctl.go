// Package playerctl controls MPRIS media players through the playerctl
// command-line utility. Every operation spawns one playerctl process,
// waits for it to finish and reports the outcome; there is no shared
// state between calls and no retry logic.
//
// See https://github.com/altdesktop/playerctl for the underlying tool.
package playerctl

import (
	"bytes"
	"errors"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBinary is the playerctl executable name resolved via PATH.
const DefaultBinary = "playerctl"

// TrackStatus is the playback state reported by the player.
type TrackStatus string

const (
	StatusPlaying TrackStatus = "Playing"
	StatusPaused  TrackStatus = "Paused"
	StatusStopped TrackStatus = "Stopped"
)

// runFunc executes the binary with the given arguments and returns its
// standard output. Tests substitute this to avoid spawning processes.
type runFunc func(binary string, args ...string) (string, error)

// Client invokes playerctl. The zero value is not usable; construct one
// with New.
type Client struct {
	binary string
	run    runFunc
}

// Option configures a Client.
type Option func(*Client)

// WithBinary points the client at an alternate playerctl executable,
// either a bare name resolved via PATH or an absolute path.
func WithBinary(name string) Option {
	return func(c *Client) { c.binary = name }
}

// New returns a client for the playerctl binary.
func New(opts ...Option) *Client {
	c := &Client{
		binary: DefaultBinary,
		run:    runCommand,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Play commands the active player to start playback.
func (c *Client) Play() error {
	_, err := c.run(c.binary, "play")
	return err
}

// Pause commands the active player to pause playback.
func (c *Client) Pause() error {
	_, err := c.run(c.binary, "pause")
	return err
}

// PlayPause toggles the active player between playing and paused.
func (c *Client) PlayPause() error {
	_, err := c.run(c.binary, "play-pause")
	return err
}

// Stop commands the active player to stop playback.
func (c *Client) Stop() error {
	_, err := c.run(c.binary, "stop")
	return err
}

// Next skips to the next track.
func (c *Client) Next() error {
	_, err := c.run(c.binary, "next")
	return err
}

// Previous skips to the previous track.
func (c *Client) Previous() error {
	_, err := c.run(c.binary, "previous")
	return err
}

// Position seeks by offsetSeconds relative to the current position.
// Positive offsets seek forward, negative ones backward. A zero offset
// is issued like any other.
func (c *Client) Position(offsetSeconds float64) error {
	_, err := c.run(c.binary, "position", formatOffset(offsetSeconds))
	return err
}

// Volume adjusts the player volume by delta, on playerctl's 0.0-1.0
// scale. Positive values raise the volume, negative values lower it.
func (c *Client) Volume(delta float64) error {
	_, err := c.run(c.binary, "volume", formatOffset(delta))
	return err
}

// Status returns the playback state of the active player. Anything the
// tool reports other than Playing or Paused counts as Stopped.
func (c *Client) Status() (TrackStatus, error) {
	out, err := c.run(c.binary, "status")
	if err != nil {
		return "", err
	}
	switch strings.TrimSpace(out) {
	case "Playing":
		return StatusPlaying, nil
	case "Paused":
		return StatusPaused, nil
	default:
		return StatusStopped, nil
	}
}

// CurrentPosition returns the active player's playback position in
// seconds.
func (c *Client) CurrentPosition() (float64, error) {
	out, err := c.run(c.binary, "position")
	if err != nil {
		return 0, err
	}
	trimmed := strings.TrimSpace(out)
	pos, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, &MetadataParseError{Line: trimmed, Reason: "position is not a number"}
	}
	return pos, nil
}

// formatOffset renders a signed offset the way playerctl expects
// relative values: "5-" seeks backward, "5+" forward.
func formatOffset(v float64) string {
	if v < 0 {
		return strconv.FormatFloat(-v, 'f', -1, 64) + "-"
	}
	return strconv.FormatFloat(v, 'f', -1, 64) + "+"
}

// runCommand runs the binary synchronously, capturing stdout and
// stderr. A process that cannot be started maps to LaunchError, a
// non-zero exit to ExecutionError.
func runCommand(binary string, args ...string) (string, error) {
	cmd := exec.Command(binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &ExecutionError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
		}
		return "", &LaunchError{Err: err}
	}
	return stdout.String(), nil
}

// Default client used by the package-level convenience functions.
var defaultClient = New()

// Play commands the active player to start playback.
func Play() error { return defaultClient.Play() }

// Pause commands the active player to pause playback.
func Pause() error { return defaultClient.Pause() }

// PlayPause toggles the active player between playing and paused.
func PlayPause() error { return defaultClient.PlayPause() }

// Stop commands the active player to stop playback.
func Stop() error { return defaultClient.Stop() }

// Next skips to the next track.
func Next() error { return defaultClient.Next() }

// Previous skips to the previous track.
func Previous() error { return defaultClient.Previous() }

// Position seeks by offsetSeconds relative to the current position.
func Position(offsetSeconds float64) error { return defaultClient.Position(offsetSeconds) }

// Volume adjusts the player volume by delta.
func Volume(delta float64) error { return defaultClient.Volume(delta) }

// Status returns the playback state of the active player.
func Status() (TrackStatus, error) { return defaultClient.Status() }

// CurrentPosition returns the playback position in seconds.
func CurrentPosition() (float64, error) { return defaultClient.CurrentPosition() }

// Metadata queries metadata for all active players.
func Metadata() (map[string]PlayerMetadata, error) { return defaultClient.Metadata() }

package playerctl

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// metadataLine joins a player name and one value per requested field
// with the wire separator.
func metadataLine(player string, values ...string) string {
	return strings.Join(append([]string{player}, values...), fieldSeparator)
}

func TestMetadataFormat(t *testing.T) {
	format := metadataFormat()

	assert.True(t, strings.HasPrefix(format, "{{playerName}}"+fieldSeparator))
	assert.Equal(t, len(metadataKeys), strings.Count(format, fieldSeparator))
	for _, key := range metadataKeys {
		assert.Contains(t, format, fmt.Sprintf("{{default(%s, %q)}}", key, emptySentinel))
	}
}

func TestMetadataRequestsAllPlayers(t *testing.T) {
	runner := &fakeRunner{out: ""}
	client := newTestClient(runner)

	_, err := client.Metadata()
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"playerctl", "metadata", "--all-players", "--format", metadataFormat()}, runner.calls[0])
}

func TestParseMetadataFullyPopulated(t *testing.T) {
	out := metadataLine("mpv",
		"'/69'", "file:///cover.jpg", "160680000",
		"Bohemian Rhapsody", "A Night at the Opera", "Queen", "Queen", "1975-10-31") + "\n" +
		metadataLine("spotify",
			"/com/spotify/track/1", "https://i.scdn.co/image/x", "213000000",
			"Yellow", "Parachutes", "Coldplay", "Coldplay", "2000-06-26") + "\n"

	players, err := parseMetadata(out)
	require.NoError(t, err)
	require.Len(t, players, 2)

	mpv, ok := players["mpv"]
	require.True(t, ok)
	require.NotNil(t, mpv.TrackID)
	assert.Equal(t, "'/69'", *mpv.TrackID)
	require.NotNil(t, mpv.ArtURL)
	assert.Equal(t, "file:///cover.jpg", *mpv.ArtURL)
	require.NotNil(t, mpv.Length)
	assert.Equal(t, int64(160680000), *mpv.Length)
	require.NotNil(t, mpv.Title)
	assert.Equal(t, "Bohemian Rhapsody", *mpv.Title)
	require.NotNil(t, mpv.AlbumArtist)
	assert.Equal(t, "Queen", *mpv.AlbumArtist)
	require.NotNil(t, mpv.ContentCreated)
	assert.Equal(t, "1975-10-31", *mpv.ContentCreated)

	// Every requested field must appear in the raw mapping.
	for _, player := range players {
		for _, key := range metadataKeys {
			assert.Contains(t, player.Raw, key)
		}
	}

	spotify := players["spotify"]
	require.NotNil(t, spotify.Album)
	assert.Equal(t, "Parachutes", *spotify.Album)
}

func TestParseMetadataSentinelMeansAbsent(t *testing.T) {
	out := metadataLine("mpv",
		"'/69'", "file:///cover.jpg", "160680000",
		"(none)", "(none)", "", "(none)", "(none)")

	players, err := parseMetadata(out)
	require.NoError(t, err)
	meta := players["mpv"]

	assert.Nil(t, meta.Title)
	assert.Nil(t, meta.Album)
	assert.Nil(t, meta.Artist)
	assert.Nil(t, meta.AlbumArtist)
	assert.Nil(t, meta.ContentCreated)
	require.NotNil(t, meta.TrackID)
	assert.Equal(t, "'/69'", *meta.TrackID)
	require.NotNil(t, meta.Length)
	assert.Equal(t, int64(160680000), *meta.Length)

	// The raw mapping keeps whatever the tool actually emitted, the
	// sentinel and empty string included.
	assert.Equal(t, "(none)", meta.Raw["xesam:title"])
	assert.Equal(t, "", meta.Raw["xesam:artist"])
}

func TestParseMetadataSentinelLength(t *testing.T) {
	out := metadataLine("mpv",
		"(none)", "(none)", "(none)",
		"stream", "(none)", "(none)", "(none)", "(none)")

	players, err := parseMetadata(out)
	require.NoError(t, err)
	meta := players["mpv"]

	assert.Nil(t, meta.Length)
	_, ok := meta.LengthSeconds()
	assert.False(t, ok)
}

func TestParseMetadataBadLength(t *testing.T) {
	out := metadataLine("mpv",
		"(none)", "(none)", "abc",
		"(none)", "(none)", "(none)", "(none)", "(none)")

	_, err := parseMetadata(out)
	var parseErr *MetadataParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "mpris:length")
}

func TestParseMetadataWrongFieldCount(t *testing.T) {
	out := metadataLine("mpv", "only", "three", "values")

	_, err := parseMetadata(out)
	var parseErr *MetadataParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "expected 9 fields")
}

func TestParseMetadataEmptyPlayerName(t *testing.T) {
	out := metadataLine("",
		"(none)", "(none)", "(none)",
		"(none)", "(none)", "(none)", "(none)", "(none)")

	_, err := parseMetadata(out)
	var parseErr *MetadataParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "player name")
}

func TestMetadataNoPlayersIsEmptyMap(t *testing.T) {
	runner := &fakeRunner{err: &ExecutionError{ExitCode: 1, Stderr: "No players found"}}
	client := newTestClient(runner)

	players, err := client.Metadata()
	require.NoError(t, err)
	assert.Empty(t, players)
	assert.NotNil(t, players)
}

func TestMetadataEmptyOutputIsEmptyMap(t *testing.T) {
	runner := &fakeRunner{out: "\n"}
	client := newTestClient(runner)

	players, err := client.Metadata()
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestMetadataPropagatesOtherErrors(t *testing.T) {
	runner := &fakeRunner{err: &ExecutionError{ExitCode: 1, Stderr: "something broke"}}
	client := newTestClient(runner)

	_, err := client.Metadata()
	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "something broke", execErr.Stderr)

	runner.err = &LaunchError{Err: fmt.Errorf("executable file not found")}
	_, err = client.Metadata()
	var launchErr *LaunchError
	require.ErrorAs(t, err, &launchErr)
}

func TestLengthSeconds(t *testing.T) {
	length := int64(160680000)
	meta := PlayerMetadata{Length: &length}

	secs, ok := meta.LengthSeconds()
	require.True(t, ok)
	assert.Equal(t, int64(160), secs)
}

package playerctl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// fieldSeparator joins the values of one player line. The ASCII unit
// separator cannot appear in titles or URLs, unlike tabs or pipes which
// do show up in metadata (e.g. album names like "Artist | Sessions").
const fieldSeparator = "\x1f"

// emptySentinel is the value playerctl is told to emit for fields the
// player did not populate. It is normalized to an absent typed field
// and kept verbatim in the raw mapping.
const emptySentinel = "(none)"

// metadataKeys is the fixed field set requested from every player, in
// wire order. The player name is always prepended.
var metadataKeys = []string{
	"mpris:trackid",
	"mpris:artUrl",
	"mpris:length",
	"xesam:title",
	"xesam:album",
	"xesam:artist",
	"xesam:albumArtist",
	"xesam:contentCreated",
}

// PlayerMetadata holds one player's track metadata. Typed fields are
// nil when the player did not report the value; Raw always contains
// every requested key with the string playerctl actually returned, so
// fields without a typed accessor stay reachable.
type PlayerMetadata struct {
	// TrackID is the mpris:trackid D-Bus object path.
	TrackID *string
	// ArtURL points at the cover art (file:// or http(s):// URL).
	ArtURL *string
	// Length is the track length in microseconds.
	Length *int64
	Title  *string
	Album  *string
	Artist *string
	// AlbumArtist is the xesam:albumArtist value.
	AlbumArtist *string
	// ContentCreated is the xesam:contentCreated timestamp, kept as the
	// string the player reported.
	ContentCreated *string
	// Raw maps each requested field name to its unprocessed value.
	Raw map[string]string
}

// LengthSeconds returns the track length in whole seconds, or false if
// the player did not report one.
func (m PlayerMetadata) LengthSeconds() (int64, bool) {
	if m.Length == nil {
		return 0, false
	}
	return *m.Length / 1e6, true
}

// metadataFormat builds the --format template: the player name followed
// by every requested field, each defaulted to the sentinel so absent
// values still occupy their position on the line.
func metadataFormat() string {
	parts := make([]string, 0, len(metadataKeys)+1)
	parts = append(parts, "{{playerName}}")
	for _, key := range metadataKeys {
		parts = append(parts, fmt.Sprintf("{{default(%s, %q)}}", key, emptySentinel))
	}
	return strings.Join(parts, fieldSeparator)
}

// Metadata queries metadata for all active players and returns a map
// keyed by player name. No active players yields an empty map, not an
// error; playerctl reports that case as a failed exit, which is
// normalized here.
func (c *Client) Metadata() (map[string]PlayerMetadata, error) {
	out, err := c.run(c.binary, "metadata", "--all-players", "--format", metadataFormat())
	if err != nil {
		var execErr *ExecutionError
		if errors.As(err, &execErr) && execErr.noPlayers() {
			return map[string]PlayerMetadata{}, nil
		}
		return nil, err
	}
	return parseMetadata(out)
}

// parseMetadata splits playerctl output into one PlayerMetadata per
// line. Blank lines are skipped; any malformed line aborts the whole
// parse.
func parseMetadata(out string) (map[string]PlayerMetadata, error) {
	players := make(map[string]PlayerMetadata)
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, meta, err := parseMetadataLine(line)
		if err != nil {
			return nil, err
		}
		players[name] = meta
	}
	return players, nil
}

// parseMetadataLine decodes a single player line: the player name, then
// one value per requested field.
func parseMetadataLine(line string) (string, PlayerMetadata, error) {
	tokens := strings.Split(line, fieldSeparator)
	if len(tokens) != len(metadataKeys)+1 {
		return "", PlayerMetadata{}, &MetadataParseError{
			Line:   line,
			Reason: fmt.Sprintf("expected %d fields, got %d", len(metadataKeys)+1, len(tokens)),
		}
	}

	name := tokens[0]
	if name == "" {
		return "", PlayerMetadata{}, &MetadataParseError{Line: line, Reason: "empty player name"}
	}

	meta := PlayerMetadata{Raw: make(map[string]string, len(metadataKeys))}
	for i, key := range metadataKeys {
		value := tokens[i+1]
		meta.Raw[key] = value

		// Empty and the sentinel both mean the player did not report
		// the field. The raw mapping above keeps the original text.
		if value == "" || value == emptySentinel {
			continue
		}

		switch key {
		case "mpris:trackid":
			meta.TrackID = &value
		case "mpris:artUrl":
			meta.ArtURL = &value
		case "mpris:length":
			length, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return "", PlayerMetadata{}, &MetadataParseError{
					Line:   line,
					Reason: fmt.Sprintf("%s is not an integer: %q", key, value),
				}
			}
			meta.Length = &length
		case "xesam:title":
			meta.Title = &value
		case "xesam:album":
			meta.Album = &value
		case "xesam:artist":
			meta.Artist = &value
		case "xesam:albumArtist":
			meta.AlbumArtist = &value
		case "xesam:contentCreated":
			meta.ContentCreated = &value
		}
	}
	return name, meta, nil
}

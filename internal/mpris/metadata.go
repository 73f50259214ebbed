// Package mpris reads the playing track from an MPRIS media player on the
// D-Bus session bus.
package mpris

import (
	"net/url"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/mpressed/internal/track"
)

const (
	busPrefix       = "org.mpris.MediaPlayer2."
	objectPath      = "/org/mpris/MediaPlayer2"
	rootInterface   = "org.mpris.MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
)

// decodeMetadata extracts the fields we track from a Metadata property value.
// The second return value is the local file path from xesam:url, if any.
func decodeMetadata(m map[string]dbus.Variant) (types.Metadata, string) {
	var meta types.Metadata

	if v, ok := m["xesam:title"]; ok {
		meta.Title, _ = v.Value().(string)
	}
	if v, ok := m["xesam:album"]; ok {
		meta.Album, _ = v.Value().(string)
	}
	if v, ok := m["xesam:artist"]; ok {
		switch a := v.Value().(type) {
		case []string:
			meta.Artist = a
		case string:
			// Some players send a plain string instead of a list.
			meta.Artist = []string{a}
		}
	}

	var path string
	if v, ok := m["xesam:url"]; ok {
		if raw, _ := v.Value().(string); raw != "" {
			path = localPath(raw)
		}
	}
	return meta, path
}

// localPath returns the filesystem path of a file:// URL, or "".
func localPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return u.Path
}

// parseStatus maps a PlaybackStatus property value to a track.Status.
func parseStatus(s string) track.Status {
	switch types.PlaybackStatus(strings.TrimSpace(s)) {
	case types.PlaybackStatusPlaying:
		return track.Playing
	case types.PlaybackStatusPaused:
		return track.Paused
	default:
		return track.Stopped
	}
}

// identity builds the track identity from metadata, filling blanks from the
// file tags when fallback is set.
func identity(meta types.Metadata, path, sep string, fallback func(string) (fileTags, bool)) track.Identity {
	id := track.NewIdentity(meta.Artist, meta.Album, meta.Title, sep)
	if id.Valid() || path == "" || fallback == nil {
		return id
	}

	tags, ok := fallback(path)
	if !ok {
		return id
	}
	if id.Artist == "" {
		id.Artist = strings.TrimSpace(tags.Artist)
	}
	if id.Album == "" {
		id.Album = strings.TrimSpace(tags.Album)
	}
	if id.Title == "" {
		id.Title = strings.TrimSpace(tags.Title)
	}
	return id
}

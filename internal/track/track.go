// Package track defines the identity of a listened track and the playback
// samples produced by media session sources.
package track

import (
	"strings"
	"time"
)

// DefaultArtistSeparator joins multiple performers into a single artist field.
const DefaultArtistSeparator = " / "

// Identity is the (artist, album, title) triple that identifies a song.
type Identity struct {
	Artist string
	Album  string
	Title  string
}

// NewIdentity builds an identity from a performer list, joining the artists
// with sep. Surrounding whitespace is trimmed from every field.
func NewIdentity(artists []string, album, title, sep string) Identity {
	names := make([]string, 0, len(artists))
	for _, a := range artists {
		if a = strings.TrimSpace(a); a != "" {
			names = append(names, a)
		}
	}
	return Identity{
		Artist: strings.Join(names, sep),
		Album:  strings.TrimSpace(album),
		Title:  strings.TrimSpace(title),
	}
}

// Valid reports whether every field is non-empty. Invalid identities are never
// committed.
func (id Identity) Valid() bool {
	return id.Artist != "" && id.Album != "" && id.Title != ""
}

func (id Identity) String() string {
	return id.Artist + " - " + id.Album + " - " + id.Title
}

// Status is the playback state reported by a source.
type Status int

const (
	Stopped Status = iota
	Paused
	Playing
)

func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// Sample is one observation of the media session.
type Sample struct {
	Identity  Identity
	Status    Status
	Timestamp time.Time
}

// Date returns the local calendar date of t in ISO format (YYYY-MM-DD).
func Date(t time.Time) string {
	return t.Format(time.DateOnly)
}

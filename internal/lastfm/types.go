package lastfm

import (
	"time"

	"github.com/llehouerou/mpressed/internal/track"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Album     string
	Timestamp time.Time // When the listen started
}

// FromIdentity builds a scrobble for a play of id that started at playedAt.
func FromIdentity(id track.Identity, playedAt time.Time) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:    id.Artist,
		Track:     id.Title,
		Album:     id.Album,
		Timestamp: playedAt,
	}
}
